package diag

import "sync"

// Buffer is a per-context diagnostic sink. A context owns exactly one
// Buffer; a failed compile, load or implement call appends its
// diagnostics to it, and the
// caller drains it between operations. The core never inspects its own
// buffer to alter control flow: diagnostics are an observability surface,
// not a decision one.
type Buffer struct {
	mu    sync.Mutex
	items []Diagnostic
}

// Add appends one diagnostic.
func (b *Buffer) Add(d Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, d)
}

// AddAll appends every diagnostic in l, preserving order.
func (b *Buffer) AddAll(l List) {
	if len(l) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, l...)
}

// Drain returns all buffered diagnostics and clears the buffer.
func (b *Buffer) Drain() List {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) == 0 {
		return nil
	}
	out := make(List, len(b.items))
	copy(out, b.items)
	b.items = b.items[:0]
	return out
}

// Len reports the number of buffered diagnostics without draining them.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}
