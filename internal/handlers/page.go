package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	pageText     = "text.html"
	pageNotFound = "notfound.html"
	htmlType     = "text/html; charset=utf-8"
)

func renderPage(status int, name string, data any) (*PageResponse, error) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}

	return &PageResponse{
		Status:       status,
		ContentType:  htmlType,
		CacheControl: "no-store",
		Body:         buf.Bytes(),
	}, nil
}
