package typecompile

import "testing"

func TestMergeEnumsAutoAssign(t *testing.T) {
	declared := []DeclaredEnum{{Name: "a"}, {Name: "b"}, {Name: "c", Value: 10, ValueExplicit: true}, {Name: "d"}}
	items, err := MergeEnums(nil, declared, "")
	if err != nil {
		t.Fatalf("MergeEnums() error = %v", err)
	}
	want := []int32{0, 1, 10, 11}
	for i, item := range items {
		if item.Value != want[i] {
			t.Fatalf("items[%d].Value = %d, want %d", i, item.Value, want[i])
		}
	}
}

func TestMergeEnumsRejectsDuplicateValue(t *testing.T) {
	declared := []DeclaredEnum{{Name: "a", Value: 1, ValueExplicit: true}, {Name: "b", Value: 1, ValueExplicit: true}}
	if _, err := MergeEnums(nil, declared, ""); err == nil {
		t.Fatal("MergeEnums() with duplicate values, want error")
	}
}

func TestMergeEnumsRejectsNameNotInBase(t *testing.T) {
	base := []EnumItem{{Name: "a", Value: 1}}
	declared := []DeclaredEnum{{Name: "ghost", Value: 2, ValueExplicit: true}}
	if _, err := MergeEnums(base, declared, ""); err == nil {
		t.Fatal("MergeEnums() with a name absent from base, want error")
	}
}

func TestMergeBitsSortsByPosition(t *testing.T) {
	declared := []DeclaredBit{
		{Name: "high", Position: 5, PositionExplicit: true},
		{Name: "low", Position: 0, PositionExplicit: true},
	}
	items, err := MergeBits(nil, declared, "")
	if err != nil {
		t.Fatalf("MergeBits() error = %v", err)
	}
	if items[0].Name != "low" || items[1].Name != "high" {
		t.Fatalf("items = %+v, want low before high", items)
	}
}

func TestMergeBitsRejectsRepositioning(t *testing.T) {
	base := []BitItem{{Name: "a", Position: 0}}
	declared := []DeclaredBit{{Name: "a", Position: 1, PositionExplicit: true}}
	if _, err := MergeBits(base, declared, ""); err == nil {
		t.Fatal("MergeBits() repositioning an inherited bit, want error")
	}
}
