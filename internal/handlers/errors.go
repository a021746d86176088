package handlers

import (
	"net/http"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
)

// APIError is the JSON error body returned by every operation.
type APIError struct {
	status int

	Message string              `doc:"Human readable error"  example:"URL not found" json:"error"`
	Details map[string][]string `doc:"Problems by field name"                        json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) GetStatus() int {
	return e.status
}

// NewAPIError builds an APIError. Schema validation failures are reported
// as 400 and their locations become detail keys ("body.url" -> "url").
func NewAPIError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	apiErr := &APIError{status: status, Message: msg}

	for _, err := range errs {
		detailer, ok := err.(huma.ErrorDetailer)
		if !ok {
			continue
		}

		detail := detailer.ErrorDetail()
		field := strings.TrimPrefix(detail.Location, "body.")

		if apiErr.Details == nil {
			apiErr.Details = make(map[string][]string)
		}

		apiErr.Details[field] = append(apiErr.Details[field], detail.Message)
	}

	return apiErr
}

var useErrorModel sync.Once

// UseErrorModel installs NewAPIError as huma's error constructor.
func UseErrorModel() {
	useErrorModel.Do(func() {
		huma.NewError = NewAPIError
	})
}

// NewConfig returns the huma configuration used by the service: the
// APIError model and bodies without a "$schema" link.
func NewConfig(title, version string) huma.Config {
	UseErrorModel()

	config := huma.DefaultConfig(title, version)
	config.CreateHooks = nil

	return config
}
