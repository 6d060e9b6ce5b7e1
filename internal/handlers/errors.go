package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"
)

const (
	msgInvalidParameters = "Invalid parameters"
	msgUnauthorized      = "Unauthorized: Invalid Password"
	msgInternal          = "Internal server error"
	msgShortLinkNotFound = "Short link not found"
	msgFileNotFound      = "File not found"
	msgMethodNotAllowed  = "Method not allowed"
)

// APIError is the JSON error body returned by every endpoint.
type APIError struct {
	status  int
	Message string   `json:"message"         doc:"Human readable error"`
	Errors  []string `json:"errors,omitempty" doc:"Validation failures, if any"`
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) GetStatus() int {
	return e.status
}

var installErrorModel sync.Once

// InstallErrorModel replaces huma's RFC 9457 errors with APIError. Validation
// failures (422, or 400 with field details) become 400 "Invalid parameters"
// and 5xx details are never exposed.
func InstallErrorModel() {
	installErrorModel.Do(func() {
		huma.NewError = newAPIError
	})
}

func newAPIError(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	validation := status == http.StatusUnprocessableEntity

	for _, err := range errs {
		if err == nil {
			continue
		}

		var detailer huma.ErrorDetailer
		if errors.As(err, &detailer) {
			validation = true
			details = append(details, detailer.ErrorDetail().Error())

			continue
		}

		details = append(details, err.Error())
	}

	switch {
	case status >= http.StatusInternalServerError:
		return &APIError{status: status, Message: msgInternal}
	case validation && (status == http.StatusBadRequest || status == http.StatusUnprocessableEntity):
		return &APIError{status: http.StatusBadRequest, Message: msgInvalidParameters, Errors: details}
	case status == http.StatusMethodNotAllowed:
		return &APIError{status: status, Message: msgMethodNotAllowed}
	}

	return &APIError{status: status, Message: msg, Errors: details}
}

// MethodNotAllowed is a router fallback answering 405 in the API error format.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_, _ = w.Write([]byte(`{"message":"` + msgMethodNotAllowed + `"}`))
}
