package datastore

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// MsgNotAuthenticated is the text shown for ErrNotAuthenticated.
const MsgNotAuthenticated = "Not authenticated"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrMissingID        = errors.New("expense id is required")
)

// APIError is a non-2xx answer from the data store.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("datastore: status %d", e.StatusCode)
	}
	return fmt.Sprintf("datastore: status %d: %s", e.StatusCode, e.Message)
}

// Is makes rejected tokens match ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

func parseAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error string `json:"error"`
	}
	e := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Message = payload.Error
	}
	return e
}
