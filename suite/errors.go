package suite

import (
	"errors"
	"fmt"
)

// Error codes reported by the document loader. They are the JSON-LD error codes a conforming
// processor is expected to surface, so negative tests can compare against them directly.
const (
	CodeLoadingDocumentFailed      = "loading document failed"
	CodeMultipleContextLinkHeaders = "multiple context link headers"
)

// ManifestLoadError means that a manifest, or a test entry file it references, could not be
// read or did not have the expected shape. Loading stops at the first one.
type ManifestLoadError struct {
	Path string
	Err  error
}

func (e *ManifestLoadError) Error() string {
	return fmt.Sprintf("failed to load manifest %q: %s", e.Path, e.Err)
}

func (e *ManifestLoadError) Unwrap() error { return e.Err }

// LoadError means that a fixture file referenced by a test could not be read.
type LoadError struct {
	Property string
	Path     string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to read %q fixture %q: %s", e.Property, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// DocumentLoadError is returned by the simulated document loader.
type DocumentLoadError struct {
	Code string
	URL  string
	Err  error
}

func (e *DocumentLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.URL)
}

func (e *DocumentLoadError) ErrorCode() string { return e.Code }

func (e *DocumentLoadError) Unwrap() error { return e.Err }

// OperationError is a failure raised by the operation under test. Code is the processor's
// error code, if it declared one; Cause is the error that led to this one, if any.
type OperationError struct {
	Code    string
	Message string
	Cause   error
}

func (e *OperationError) Error() string {
	switch {
	case e.Message == "":
		return e.Code
	case e.Code == "":
		return e.Message
	default:
		return e.Code + ": " + e.Message
	}
}

func (e *OperationError) ErrorCode() string { return e.Code }

func (e *OperationError) Unwrap() error { return e.Cause }

type codedError interface {
	ErrorCode() string
}

// ErrorCode reduces an error to the code that a negative test compares against. It walks the
// chain of wrapped errors from the outermost to the innermost; the innermost non-empty code
// wins. If nothing in the chain declares a code, the message of the innermost error is used.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	code := ""
	root := err
	for e := err; e != nil; e = errors.Unwrap(e) {
		if c, ok := e.(codedError); ok && c.ErrorCode() != "" {
			code = c.ErrorCode()
		}
		root = e
	}
	if code != "" {
		return code
	}
	return root.Error()
}
