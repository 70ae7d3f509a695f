package dict

import "testing"

func TestInternReturnsSameHandle(t *testing.T) {
	d := New()
	a := d.Intern("container")
	b := d.Intern("container")
	if !Equal(a, b) {
		t.Fatal("Intern(s) != Intern(s), want pointer-equal handles")
	}
	if got := d.RefCount("container"); got != 2 {
		t.Fatalf("RefCount = %d, want 2", got)
	}
}

func TestInternDistinctStringsDistinctHandles(t *testing.T) {
	d := New()
	a := d.Intern("leaf")
	b := d.Intern("leaf-list")
	if Equal(a, b) {
		t.Fatal("distinct strings interned to the same handle")
	}
}

func TestReleaseUninternsAtZero(t *testing.T) {
	d := New()
	h := d.Intern("typedef")
	d.Intern("typedef")
	d.Release(h)
	if got := d.RefCount("typedef"); got != 1 {
		t.Fatalf("RefCount after one release = %d, want 1", got)
	}
	d.Release(h)
	if got := d.RefCount("typedef"); got != 0 {
		t.Fatalf("RefCount after two releases = %d, want 0", got)
	}
	if d.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 once all refs released", d.Len())
	}
}

func TestReleaseNilIsNoop(t *testing.T) {
	d := New()
	d.Release(nil)
}

func TestHandleStringOnNil(t *testing.T) {
	var h *Handle
	if got := h.String(); got != "" {
		t.Fatalf("nil Handle.String() = %q, want empty", got)
	}
}
