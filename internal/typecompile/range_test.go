package typecompile

import "testing"

func TestParseRangeRejectsNonAscendingParts(t *testing.T) {
	if _, err := ParseRange("50..10", "", Uint8, 0); err == nil {
		t.Fatal("ParseRange() with min > max, want error")
	}
	if _, err := ParseRange("10..50 | 30..40", "", Uint8, 0); err == nil {
		t.Fatal("ParseRange() with overlapping parts, want error")
	}
}

func TestParseRangeMinMaxKeywords(t *testing.T) {
	pl, err := ParseRange("min..max", "", Uint8, 0)
	if err != nil {
		t.Fatalf("ParseRange() error = %v", err)
	}
	if pl.Parts[0].Min.Int64() != 0 || pl.Parts[0].Max.Int64() != 255 {
		t.Fatalf("Parts[0] = [%s,%s], want [0,255]", pl.Parts[0].Min, pl.Parts[0].Max)
	}
}

func TestParseRangeOverflow(t *testing.T) {
	if _, err := ParseRange("300", "", Uint8, 0); err == nil {
		t.Fatal("ParseRange() with out-of-bounds literal, want error")
	}
}

func TestParseRangeSignedNegative(t *testing.T) {
	pl, err := ParseRange("-10..10", "", Int8, 0)
	if err != nil {
		t.Fatalf("ParseRange() error = %v", err)
	}
	if pl.Parts[0].Min.Int64() != -10 {
		t.Fatalf("Min = %s, want -10", pl.Parts[0].Min)
	}
}
