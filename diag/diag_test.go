package diag

import (
	"errors"
	"testing"
)

func TestDiagnosticErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{
			name: "message only",
			d:    New(KindSemantic, "range-narrow", "", "derived part not contained in base"),
			want: "[semantic/range-narrow] derived part not contained in base",
		},
		{
			name: "with path",
			d:    New(KindSyntax, "iff-parens", "/mod:leaf/type", "unbalanced parentheses"),
			want: "[syntax/iff-parens] unbalanced parentheses at /mod:leaf/type",
		},
		{
			name: "no code",
			d:    Diagnostic{Kind: KindNotFound, Message: "feature not found"},
			want: "[not-found] feature not found",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.Error(); got != tc.want {
				t.Fatalf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestListErrorSummary(t *testing.T) {
	var empty List
	if got := empty.Error(); got != "no diagnostics" {
		t.Fatalf("empty List.Error() = %q", got)
	}

	one := List{New(KindDenied, "iff-conflict", "", "feature cannot be enabled")}
	if got := one.Error(); got != "[denied/iff-conflict] feature cannot be enabled" {
		t.Fatalf("one List.Error() = %q", got)
	}

	two := List{
		New(KindDenied, "iff-conflict", "", "feature cannot be enabled"),
		New(KindSemantic, "enum-dup", "", "duplicate enum value"),
	}
	if got := two.Error(); got != "[denied/iff-conflict] feature cannot be enabled (and 1 more)" {
		t.Fatalf("two List.Error() = %q", got)
	}
}

func TestListHasKind(t *testing.T) {
	l := List{New(KindSemantic, "x", "", "y")}
	if !l.HasKind(KindSemantic) {
		t.Fatal("HasKind(KindSemantic) = false, want true")
	}
	if l.HasKind(KindDenied) {
		t.Fatal("HasKind(KindDenied) = true, want false")
	}
}

func TestInternalWrapsCause(t *testing.T) {
	cause := errors.New("invariant broken")
	d := Internal("inv-1", "/mod", cause)
	if d.Kind != KindInternal {
		t.Fatalf("Kind = %v, want KindInternal", d.Kind)
	}
	if !errors.Is(d, cause) {
		t.Fatal("errors.Is(d, cause) = false, want true")
	}
}

func TestBufferAddDrain(t *testing.T) {
	var b Buffer
	b.Add(New(KindSyntax, "a", "", "one"))
	b.AddAll(List{New(KindSyntax, "b", "", "two"), New(KindSyntax, "c", "", "three")})

	if got := b.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	drained := b.Drain()
	if len(drained) != 3 {
		t.Fatalf("Drain() len = %d, want 3", len(drained))
	}
	if b.Len() != 0 {
		t.Fatal("Len() after Drain() != 0")
	}
	if got := b.Drain(); got != nil {
		t.Fatalf("Drain() on empty buffer = %v, want nil", got)
	}
}
