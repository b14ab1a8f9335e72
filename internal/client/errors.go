package client

import (
	"errors"
	"fmt"
)

// ErrAuthExpired is returned when the backend answers 401. The wrapper has
// already dropped the stored credentials by the time callers see it; the
// only recovery is a fresh login.
var ErrAuthExpired = errors.New("authentication expired")

// ErrPermissionDenied is returned when an operation is rejected locally
// because the caller's scope does not cover the requested team. No request
// leaves the device in that case.
var ErrPermissionDenied = errors.New("permission denied")

// RemoteError is a non-2xx answer the backend explained. Message is the
// server's own wording and is safe to show the user verbatim.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server rejected request (%d)", e.Status)
}

// NetworkError wraps transport failures: timeouts, refused connections, DNS.
// The request may or may not have reached the server.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsRemoteStatus reports whether err is a RemoteError with the given status.
func IsRemoteStatus(err error, status int) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Status == status
}
