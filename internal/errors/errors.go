// Package errors provides structured error types for the Quip application.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindForbidden
	KindIO
	KindNetwork
	KindRemote
	KindConfig
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "invalid input"
	case KindForbidden:
		return "forbidden"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindRemote:
		return "server error"
	case KindConfig:
		return "configuration error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for Quip.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Status  int    // HTTP status for remote errors, 0 otherwise
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - int: the HTTP status of a remote failure
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case int:
			e.Status = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// GetStatus returns the HTTP status carried by a remote error, or 0.
func GetStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// UserMessage returns a message suitable for display in the UI.
// Validation and forbidden errors surface their context directly; remote
// errors include the server's message when one was decoded.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch e.Kind {
	case KindValidation:
		if e.Context != "" {
			return e.Context
		}
		return e.Err.Error()
	case KindForbidden:
		return "This action requires a premium API key. Add one in Settings."
	case KindNetwork:
		return "Could not reach the server. Check your connection and try again."
	case KindNotFound:
		return e.Err.Error()
	case KindRemote:
		if e.Status != 0 {
			return fmt.Sprintf("Server error (%d): %s", e.Status, e.Err)
		}
		return fmt.Sprintf("Server error: %s", e.Err)
	default:
		return e.Error()
	}
}

// Gateway errors

func SearchFailed(query string, err error) error {
	return E(Op("api.Search"), KindRemote, fmt.Sprintf("search for %q failed", query), err)
}

func SubtitleNotFound(id int) error {
	return E(Op("api.GetSubtitle"), KindNotFound, fmt.Sprintf("subtitle %d not found", id))
}

func EpisodeNotFound(id string) error {
	return E(Op("api.GetEpisode"), KindNotFound, fmt.Sprintf("episode %s not found", id))
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}
