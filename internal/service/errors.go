package service

import (
	"errors"
	"fmt"
	"net/http"
)

// RemoteError is any non-success response or transport failure from the
// task API. StatusCode is 0 when the request never got a response.
type RemoteError struct {
	StatusCode int
	Msg        string
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("request failed: %v", e.Err)
	case e.Msg != "":
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Msg)
	default:
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }

// IsAuth reports whether the failure is a 401/403-class rejection,
// typically a missing or expired token.
func (e *RemoteError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// AsRemote extracts a RemoteError from an error chain.
func AsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
