package array

import "testing"

func TestAppendAndAt(t *testing.T) {
	var a Array[int]
	a.Append(1)
	a.Append(2)
	a.Append(3)

	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
	if a.At(1) != 2 {
		t.Fatalf("At(1) = %d, want 2", a.At(1))
	}
}

func TestDestroyReleasesEachElement(t *testing.T) {
	a := Of([]string{"a", "b", "c"})
	var released []string
	a.Destroy(func(s string) { released = append(released, s) })

	if len(released) != 3 {
		t.Fatalf("released %d elements, want 3", len(released))
	}
	if a.Len() != 0 {
		t.Fatalf("Len() after Destroy = %d, want 0", a.Len())
	}
}

func TestDestroyNilFunc(t *testing.T) {
	a := Of([]int{1, 2})
	a.Destroy(nil)
	if a.Len() != 0 {
		t.Fatal("Destroy(nil) should still clear the array")
	}
}
