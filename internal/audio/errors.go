package audio

import (
	"errors"
	"fmt"
)

// ErrorKind classifies metadata failures so callers can decide between a
// silent fallback and a user-facing notice.
type ErrorKind int

const (
	// UnexpectedFailure is any failure that fits no other kind.
	UnexpectedFailure ErrorKind = iota

	// ContainerUnreadable means the file is not a recognised or parseable
	// audio container, or its tag block is corrupt.
	ContainerUnreadable

	// FieldMissing means a single metadata field is absent. Readers handle
	// it with a fallback value; it is never returned by the Tagger.
	FieldMissing

	// FileNotAccessible means the file does not exist or cannot be written
	// by the current process.
	FileNotAccessible

	// MetadataWriteFailure means the tagging library rejected the write or
	// failed while committing it.
	MetadataWriteFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ContainerUnreadable:
		return "container unreadable"
	case FieldMissing:
		return "field missing"
	case FileNotAccessible:
		return "file not accessible"
	case MetadataWriteFailure:
		return "metadata write failure"
	default:
		return "unexpected failure"
	}
}

// Sentinel errors, one per kind, for use with errors.Is:
//
//	if errors.Is(err, audio.ErrFileNotAccessible) { ... }
var (
	ErrUnexpected           = &Error{Kind: UnexpectedFailure}
	ErrContainerUnreadable  = &Error{Kind: ContainerUnreadable}
	ErrFieldMissing         = &Error{Kind: FieldMissing}
	ErrFileNotAccessible    = &Error{Kind: FileNotAccessible}
	ErrMetadataWriteFailure = &Error{Kind: MetadataWriteFailure}
)

// Error is returned by every Tagger and Container operation.
type Error struct {
	Kind ErrorKind
	Op   string // "read lyrics", "write lyrics", "read fields", ...
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, which makes the sentinel values
// work with errors.Is regardless of Op, Path or the wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the ErrorKind carried by err, or UnexpectedFailure if err
// is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return UnexpectedFailure
}

func newError(kind ErrorKind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func errorf(kind ErrorKind, op, path, format string, args ...any) *Error {
	return newError(kind, op, path, fmt.Errorf(format, args...))
}
