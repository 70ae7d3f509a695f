// Package pattern compiles YANG pattern strings — written in the
// XML-Schema regular-expression dialect — into a form usable by Go's
// regexp engine, and wraps the compiled result in a refcounted handle.
package pattern

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/coreyang/yangcore/diag"
)

// Handle is a refcounted compiled pattern, shared across every type that
// inherits it through a typedef chain.
type Handle struct {
	mu           sync.Mutex
	refs         int
	source       string
	re           *regexp.Regexp
	Inverted     bool
	ErrorAppTag  string
	ErrorMessage string
}

// Source returns the original, untranslated YANG pattern text.
func (h *Handle) Source() string { return h.source }

// MatchString reports whether s satisfies the pattern, accounting for the
// inverted flag (an inverted pattern matches when the underlying regexp
// does not).
func (h *Handle) MatchString(s string) bool {
	matched := h.re.MatchString(s)
	if h.Inverted {
		return !matched
	}
	return matched
}

// Retain increments the handle's reference count.
func (h *Handle) Retain() {
	h.mu.Lock()
	h.refs++
	h.mu.Unlock()
}

// Release decrements the handle's reference count. Go's garbage collector
// reclaims the handle once nothing retains it; Release exists so callers
// can assert the refcount invariant symmetrically with dict and typecompile.
// A count dropping below zero means some caller released a handle it never
// retained, a bookkeeping bug this package must never mask.
func (h *Handle) Release() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.refs--
	if h.refs < 0 {
		panic(diag.Internal("pattern-refcount-underflow", "",
			fmt.Errorf("pattern handle for %q released with no outstanding references", h.source)))
	}
	return h.refs
}

// RefCount reports the handle's current reference count, for tests and
// diagnostics.
func (h *Handle) RefCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refs
}
