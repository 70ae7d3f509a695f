package model

import (
	"testing"

	"github.com/coreyang/yangcore/internal/dict"
)

func TestAppendChildSiblingInvariant(t *testing.T) {
	d := dict.New()
	parent := &Node{Name: d.Intern("parent")}
	a := &Node{Name: d.Intern("a")}
	b := &Node{Name: d.Intern("b")}
	c := &Node{Name: d.Intern("c")}

	AppendChild(parent, a)
	AppendChild(parent, b)
	AppendChild(parent, c)

	got := Siblings(parent.FirstChild)
	if len(got) != 3 {
		t.Fatalf("Siblings() returned %d nodes, want 3", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].Name.String() != want {
			t.Fatalf("Siblings()[%d].Name = %q, want %q", i, got[i].Name.String(), want)
		}
	}

	if c.Next != nil {
		t.Fatal("last sibling's Next should be nil")
	}
	if a.Prev != c {
		t.Fatal("first sibling's Prev should wrap to the last sibling")
	}
	if b.Prev != a || c.Prev != b {
		t.Fatal("middle/last Prev should point to their immediate predecessor")
	}
}
