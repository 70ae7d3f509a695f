package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLookup(byName map[string]*Feature) Lookup {
	return func(name string) (*Feature, error) {
		f, ok := byName[name]
		if !ok {
			return nil, nil
		}
		return f, nil
	}
}

func TestCompileAndEvaluate_Scenario3(t *testing.T) {
	a := &Feature{Name: "a", Enabled: true}
	b := &Feature{Name: "b", Enabled: false}
	c := &Feature{Name: "c", Enabled: false}
	lookup := mustLookup(map[string]*Feature{"a": a, "b": b, "c": c})

	expr, err := Compile("a and (b or not c)", "", Version1_1, lookup)
	require.NoError(t, err)
	assert.True(t, expr.Evaluate())

	c.Enabled = true
	b.Enabled = false
	assert.False(t, expr.Evaluate())
}

func TestCompileRejectsYang10WithParens(t *testing.T) {
	a := &Feature{Name: "a"}
	b := &Feature{Name: "b"}
	lookup := mustLookup(map[string]*Feature{"a": a, "b": b})

	if _, err := Compile("a and b", "", Version1_0, lookup); err == nil {
		t.Fatal("Compile() with two features under 1.0, want error")
	}
	if _, err := Compile("a", "", Version1_0, lookup); err != nil {
		t.Fatalf("Compile() single feature under 1.0, error = %v", err)
	}
}

func TestCompileUnbalancedParens(t *testing.T) {
	lookup := mustLookup(map[string]*Feature{"a": {Name: "a"}})
	if _, err := Compile("(a", "", Version1_1, lookup); err == nil {
		t.Fatal("Compile() with unclosed paren, want error")
	}
	if _, err := Compile("a)", "", Version1_1, lookup); err == nil {
		t.Fatal("Compile() with stray close paren, want error")
	}
}

func TestCompileUnknownFeature(t *testing.T) {
	lookup := mustLookup(map[string]*Feature{})
	if _, err := Compile("ghost", "", Version1_1, lookup); err == nil {
		t.Fatal("Compile() with unknown feature, want error")
	}
}

func TestDoubleNotCancels(t *testing.T) {
	a := &Feature{Name: "a", Enabled: true}
	lookup := mustLookup(map[string]*Feature{"a": a})
	expr, err := Compile("not not a", "", Version1_1, lookup)
	require.NoError(t, err)
	assert.True(t, expr.Evaluate())
}

func TestChangeCascade_Scenario4(t *testing.T) {
	x := &Feature{Name: "x", Enabled: true}
	y := &Feature{Name: "y", Enabled: true}
	z := &Feature{Name: "z", Enabled: true}
	lookup := mustLookup(map[string]*Feature{"x": x, "y": y, "z": z})

	yExpr, err := Compile("x", "", Version1_0, lookup)
	if err != nil {
		t.Fatal(err)
	}
	y.Expressions = []*Expression{yExpr}
	x.Dependents = []*Feature{y}

	zExpr, err := Compile("y", "", Version1_0, lookup)
	if err != nil {
		t.Fatal(err)
	}
	z.Expressions = []*Expression{zExpr}
	y.Dependents = []*Feature{z}

	all := []*Feature{x, y, z}

	if err := Change(all, "x", false); err != nil {
		t.Fatalf("Change(x, false) error = %v", err)
	}
	if x.Enabled || y.Enabled || z.Enabled {
		t.Fatalf("after disabling x: x=%v y=%v z=%v, want all false", x.Enabled, y.Enabled, z.Enabled)
	}

	if err := Change(all, "x", true); err != nil {
		t.Fatalf("Change(x, true) error = %v", err)
	}
	if !x.Enabled {
		t.Fatal("x should be enabled")
	}
	if y.Enabled || z.Enabled {
		t.Fatalf("y/z should not auto-enable: y=%v z=%v", y.Enabled, z.Enabled)
	}
}

func TestChangeWildcardRollsBackOnConflict(t *testing.T) {
	a := &Feature{Name: "a", Enabled: false}
	b := &Feature{Name: "b", Enabled: false}
	lookup := mustLookup(map[string]*Feature{"a": a, "b": b})

	// a requires b disabled and b requires a disabled: no fixed point
	// exists where enabling "*" leaves both enabled.
	aExpr, err := Compile("not b", "", Version1_1, lookup)
	if err != nil {
		t.Fatal(err)
	}
	a.Expressions = []*Expression{aExpr}
	bExpr, err := Compile("not a", "", Version1_1, lookup)
	if err != nil {
		t.Fatal(err)
	}
	b.Expressions = []*Expression{bExpr}

	all := []*Feature{a, b}
	if err := Change(all, "*", true); err == nil {
		t.Fatal("Change(*, true) with mutually exclusive features, want error")
	}
	if a.Enabled || b.Enabled {
		t.Fatalf("rollback failed: a=%v b=%v, want both false", a.Enabled, b.Enabled)
	}
}

func TestChangeWildcardFixedPoint(t *testing.T) {
	x := &Feature{Name: "x", Enabled: false}
	y := &Feature{Name: "y", Enabled: false}
	lookup := mustLookup(map[string]*Feature{"x": x, "y": y})

	yExpr, err := Compile("x", "", Version1_0, lookup)
	if err != nil {
		t.Fatal(err)
	}
	y.Expressions = []*Expression{yExpr}

	if err := Change([]*Feature{x, y}, "*", true); err != nil {
		t.Fatalf("Change(*, true) error = %v", err)
	}
	if !x.Enabled || !y.Enabled {
		t.Fatalf("fixed point not reached: x=%v y=%v", x.Enabled, y.Enabled)
	}
}
