package client

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/de-tools/boutique-reports/pkg/models/api"
)

const unknownErrorMessage = "Error desconocido"

// RequestError is returned for every non-2xx answer. Status codes are not
// classified further.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

func newRequestError(status int, body []byte) *RequestError {
	var payload api.ErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return &RequestError{
			StatusCode: status,
			Message:    fmt.Sprintf("%s (HTTP Error: %d)", unknownErrorMessage, status),
		}
	}
	if payload.Error == "" {
		return &RequestError{StatusCode: status, Message: fmt.Sprintf("HTTP Error: %d", status)}
	}
	return &RequestError{StatusCode: status, Message: payload.Error}
}
