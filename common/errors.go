// Package common provides shared constants, types, and utilities
// used across ChatDock.
package common

import "errors"

// Sentinel errors. Check them with errors.Is.
var (
	// Window lifecycle errors.
	ErrWindowExists = errors.New("main window already exists")
	ErrNoWindow     = errors.New("no main window")

	// Bridge errors.
	ErrUnknownMessage = errors.New("unknown bridge message")

	// Shortcut errors.
	ErrInvalidShortcut     = errors.New("invalid shortcut")
	ErrShortcutUnavailable = errors.New("shortcut is held by another application")

	// Preference errors.
	ErrInvalidPreference = errors.New("invalid preference")
	ErrUnknownPreference = errors.New("unknown preference key")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
