package objectstore

import "errors"

var (
	ErrNotFound      = errors.New("object not found")
	ErrNotConfigured = errors.New("object storage not configured")
	ErrTooLarge      = errors.New("object exceeds upload size limit")
)
