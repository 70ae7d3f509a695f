// Package diag implements the diagnostic taxonomy used across the schema
// compiler: a coded, schema-path-qualified error value, and a per-context
// buffer callers drain after a compilation or feature-change attempt.
package diag

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind is one of the abstract error kinds a schema operation can fail with.
type Kind string

const (
	// KindInvalidArgument reports a caller-supplied null or inconsistent input.
	KindInvalidArgument Kind = "invalid-argument"
	// KindOutOfMemory reports allocator failure; the operation unwinds.
	KindOutOfMemory Kind = "out-of-memory"
	// KindNotFound reports a referenced module, feature, or identity absent.
	KindNotFound Kind = "not-found"
	// KindAlreadyExists reports a module revision, enum value, or import collision.
	KindAlreadyExists Kind = "already-exists"
	// KindSyntax reports a malformed if-feature, range, pattern, or regex.
	KindSyntax Kind = "syntax"
	// KindSemantic reports a status mismatch, narrowing violation, or similar rule break.
	KindSemantic Kind = "semantic"
	// KindDenied reports a feature that cannot be enabled due to if-feature conflicts.
	KindDenied Kind = "denied"
	// KindInternal reports an invariant violation; always surfaced, never silently recovered.
	KindInternal Kind = "internal"
)

// Code identifies the specific rule a Diagnostic reports.
type Code string

// Diagnostic carries a kind, a rule code, a human message, and the schema
// path the rule was evaluated against (e.g. "/mod:container/leaf/type/range").
type Diagnostic struct {
	Kind    Kind
	Code    Code
	Message string
	Path    string
	cause   error
}

// Error implements error, formatting kind, code, message, and path.
func (d Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(d.Kind))
	if d.Code != "" {
		b.WriteString("/")
		b.WriteString(string(d.Code))
	}
	b.WriteString("] ")
	b.WriteString(d.Message)
	if d.Path != "" {
		b.WriteString(" at ")
		b.WriteString(d.Path)
	}
	return b.String()
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (d Diagnostic) Unwrap() error { return d.cause }

// New builds a Diagnostic with a formatted message.
func New(kind Kind, code Code, path, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...), Path: path}
}

// Internal builds a KindInternal diagnostic wrapping cause with a stack trace.
// This is the only diagnostic kind that carries one: an internal diagnostic
// signals an invariant violation that must never be silently recovered.
func Internal(code Code, path string, cause error) Diagnostic {
	wrapped := errors.WithStack(cause)
	return Diagnostic{Kind: KindInternal, Code: code, Message: cause.Error(), Path: path, cause: wrapped}
}

// List is an error aggregating one or more diagnostics, in emission order.
type List []Diagnostic

// Error renders the first diagnostic and a count of any remaining ones.
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
	}
}

// HasKind reports whether any diagnostic in the list has the given kind.
func (l List) HasKind(kind Kind) bool {
	for _, d := range l {
		if d.Kind == kind {
			return true
		}
	}
	return false
}
