// Package clierr implements the tool's user-visible error taxonomy: a
// single CLIError type whose Kind tag selects the rendered header,
// alongside a message and an optional underlying cause.
package clierr

import (
	"fmt"
	"strings"
)

// Kind classifies a user-visible failure.
type Kind int

const (
	MissingManifest Kind = iota
	InvalidManifest
	UnwritableManifest
	NoResolution
	NotSupported
	Unknown
)

func (k Kind) header() string {
	switch k {
	case MissingManifest:
		return "MISSING MANIFEST"
	case InvalidManifest:
		return "INVALID MANIFEST"
	case UnwritableManifest:
		return "UNWRITABLE MANIFEST"
	case NoResolution:
		return "NO RESOLUTION"
	case NotSupported:
		return "NOT SUPPORTED"
	default:
		return "UNKNOWN ERROR"
	}
}

// CLIError is the single error type surfaced to the top-level entry
// point: a Kind, a primary user-facing message, and an optional
// wrapped cause (kept for log output, not necessarily shown to the
// user at the same verbosity).
type CLIError struct {
	Kind    Kind
	Message string
	Cause   error
}

// New builds a CLIError with no wrapped cause.
func New(kind Kind, message string) *CLIError {
	return &CLIError{Kind: kind, Message: message}
}

// Wrap builds a CLIError around an underlying cause.
func Wrap(kind Kind, cause error, message string) *CLIError {
	return &CLIError{Kind: kind, Message: message, Cause: cause}
}

func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error { return e.Cause }

// Render produces the top-level presentation: an UPPERCASE header
// derived from the kind, the primary message, and a wrapped
// 80-column rendering of the cause, if any.
func (e *CLIError) Render() string {
	var b strings.Builder
	b.WriteString(e.Kind.header())
	b.WriteString("\n\n")
	b.WriteString(e.Message)
	b.WriteString("\n")
	if e.Cause != nil {
		b.WriteString("\n")
		b.WriteString(wrap80(e.Cause.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

// wrap80 greedily wraps s to 80-column lines on word boundaries.
func wrap80(s string) string {
	const width = 80
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
