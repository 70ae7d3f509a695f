package xpathadapter

import "testing"

func TestCompileValidExpression(t *testing.T) {
	e, err := Compile("../enabled = 'true'", "/m:leaf")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if e.Source != "../enabled = 'true'" {
		t.Fatalf("Source = %q, want unchanged expression", e.Source)
	}
	if e.Compiled() == nil {
		t.Fatal("Compiled() returned nil for a valid expression")
	}
}

func TestCompileInvalidExpressionFails(t *testing.T) {
	if _, err := Compile("count(", "/m:leaf"); err == nil {
		t.Fatal("Compile() with unbalanced parens, want error")
	}
}
