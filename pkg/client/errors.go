package client

import "errors"

var (
	// ErrServerNotRunning is returned when nothing is listening on the server address
	ErrServerNotRunning = errors.New("server not running")

	// ErrPermissionDenied is returned when the user does not have permission to open the server socket
	ErrPermissionDenied = errors.New("permission denied")

	// ErrBadRequest is returned when the server rejects the parameters
	ErrBadRequest = errors.New("bad request")

	// ErrNotFound is returned when 404 is returned from the server
	ErrNotFound = errors.New("404 not found")
)
