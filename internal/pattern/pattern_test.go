package pattern

import "testing"

func TestCompileMatchesWholeString(t *testing.T) {
	h, err := Compile(`[a-z]+`, "", "", "")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !h.MatchString("abc") {
		t.Error("MatchString(abc) = false, want true")
	}
	if h.MatchString("abc123") {
		t.Error("MatchString(abc123) = true, want false (unanchored suffix)")
	}
}

func TestCompileTrailingDotStarStaysUnanchoredOnTheRight(t *testing.T) {
	h, err := Compile(`abc.*`, "", "", "")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !h.MatchString("abcxyz") {
		t.Error("MatchString(abcxyz) = false, want true")
	}
}

func TestCompileEscapesDollarAndCaret(t *testing.T) {
	h, err := Compile(`a$b`, "", "", "")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !h.MatchString("a$b") {
		t.Error("MatchString(a$b) = false, want true (literal $)")
	}
}

func TestCompileInvertedMarker(t *testing.T) {
	h, err := Compile("\x15[a-z]+", "", "", "")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !h.Inverted {
		t.Fatal("Inverted = false, want true")
	}
	if h.MatchString("abc") {
		t.Error("MatchString(abc) = true, want false under inversion")
	}
	if !h.MatchString("123") {
		t.Error("MatchString(123) = false, want true under inversion")
	}
}

func TestCompileUnicodeBlock(t *testing.T) {
	h, err := Compile(`\p{IsBasicLatin}+`, "", "", "")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !h.MatchString("Az09") {
		t.Error("MatchString(Az09) = false, want true")
	}
}

func TestCompileUnknownBlockErrors(t *testing.T) {
	if _, err := Compile(`\p{IsNoSuchBlock}`, "", "", ""); err == nil {
		t.Fatal("Compile() with unknown block, want error")
	}
}

func TestRefcounting(t *testing.T) {
	h, err := Compile(`x`, "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if got := h.RefCount(); got != 1 {
		t.Fatalf("RefCount() = %d, want 1", got)
	}
	h.Retain()
	if got := h.RefCount(); got != 2 {
		t.Fatalf("RefCount() after Retain = %d, want 2", got)
	}
	if left := h.Release(); left != 1 {
		t.Fatalf("Release() = %d, want 1", left)
	}
}
