package nav

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrorKind classifies navigation failures
type ErrorKind int

const (
	Unknown ErrorKind = iota
	NotFound
	NotADirectory
	PermissionDenied
	AlreadyExists
	UnknownCommand
	InvalidArgument
	PartialBatchFailure
)

var kindNames = map[ErrorKind]string{
	Unknown:             "unknown error",
	NotFound:            "not found",
	NotADirectory:       "not a directory",
	PermissionDenied:    "permission denied",
	AlreadyExists:       "already exists",
	UnknownCommand:      "unknown command",
	InvalidArgument:     "invalid argument",
	PartialBatchFailure: "partial batch failure",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[Unknown]
}

// Sentinels for errors.Is checks
var (
	ErrNotFound            = &Error{Kind: NotFound}
	ErrNotADirectory       = &Error{Kind: NotADirectory}
	ErrPermissionDenied    = &Error{Kind: PermissionDenied}
	ErrAlreadyExists       = &Error{Kind: AlreadyExists}
	ErrUnknownCommand      = &Error{Kind: UnknownCommand}
	ErrInvalidArgument     = &Error{Kind: InvalidArgument}
	ErrPartialBatchFailure = &Error{Kind: PartialBatchFailure}
)

// Error is the error type returned by navigation operations
type Error struct {
	Kind ErrorKind
	// Path is the file path, command name or argument the error refers to
	Path string
	// Failed lists the paths left behind by a PartialBatchFailure
	Failed []string
	Err    error
}

// Error returns the error message
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
	}
	if len(e.Failed) > 0 {
		fmt.Fprintf(&b, ": %d failed (%s)", len(e.Failed), strings.Join(e.Failed, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Path == "" || t.Path == e.Path)
}

// NewError creates an error of the given kind
func NewError(kind ErrorKind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// BatchError reports the paths a batch operation could not process.
// The first underlying failure is kept as the wrapped cause.
func BatchError(failures []Failure) *Error {
	if len(failures) == 0 {
		return nil
	}
	failed := make([]string, len(failures))
	for i, f := range failures {
		failed[i] = f.Path
	}
	return &Error{Kind: PartialBatchFailure, Failed: failed, Err: failures[0].Err}
}

// Failure pairs a path with the error that stopped it
type Failure struct {
	Path string
	Err  error
}

// KindOf returns the ErrorKind of err, classifying plain fs errors too
func KindOf(err error) ErrorKind {
	if err == nil {
		return Unknown
	}
	var navErr *Error
	if errors.As(err, &navErr) {
		return navErr.Kind
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied
	case errors.Is(err, fs.ErrExist):
		return AlreadyExists
	}
	return Unknown
}

// Classify wraps an I/O error into an *Error for path. Errors that are
// already classified are returned unchanged.
func Classify(err error, path string) error {
	if err == nil {
		return nil
	}
	var navErr *Error
	if errors.As(err, &navErr) {
		return err
	}
	return NewError(KindOf(err), path, err)
}
