package logtail

import (
	"errors"
	"fmt"
)

var (
	// ErrFileRemoved ends a follow session: the path no longer exists.
	ErrFileRemoved = errors.New("file removed")
	// ErrClosed is returned by Poll after Close.
	ErrClosed = errors.New("session closed")
)

// OpenError reports that the file to tail could not be opened at startup.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open log %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// ReadError is a failure while following that is expected to clear up on
// its own, such as a permission hiccup mid-rotation.
type ReadError struct {
	Path string
	Op   string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s log %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
