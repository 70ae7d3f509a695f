package yangtext

import "testing"

func TestParseModuleSkeleton(t *testing.T) {
	src := `module example {
		namespace "urn:example";
		prefix ex;

		typedef percentage {
			type uint8 {
				range "0..100";
			}
		}

		// a comment
		feature extra;
	}`

	stmt, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if stmt.Keyword != "module" || stmt.Argument != "example" {
		t.Fatalf("root = %+v, want module/example", stmt)
	}
	if ns := stmt.Child("namespace"); ns == nil || ns.Argument != "urn:example" {
		t.Fatalf("namespace = %+v, want urn:example", ns)
	}
	td := stmt.Child("typedef")
	if td == nil || td.Argument != "percentage" {
		t.Fatalf("typedef = %+v, want percentage", td)
	}
	ty := td.Child("type")
	if ty == nil || ty.Argument != "uint8" {
		t.Fatalf("type = %+v, want uint8", ty)
	}
	rng := ty.Child("range")
	if rng == nil || rng.Argument != "0..100" {
		t.Fatalf("range = %+v, want 0..100", rng)
	}
	if f := stmt.Child("feature"); f == nil || f.Argument != "extra" {
		t.Fatalf("feature = %+v, want extra", f)
	}
}

func TestParseQuotedStringConcatenation(t *testing.T) {
	src := `module m { description "part one " + "part two"; }`
	stmt, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	d := stmt.Child("description")
	if d == nil || d.Argument != "part one part two" {
		t.Fatalf("description = %+v, want concatenated string", d)
	}
}

func TestParseRejectsUnclosedBlock(t *testing.T) {
	if _, err := Parse(`module m { typedef t { type string; }`); err == nil {
		t.Fatal("Parse() with unclosed block, want error")
	}
}
