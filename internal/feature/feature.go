package feature

// Version distinguishes YANG 1.0 from YANG 1.1 if-feature grammar support.
type Version int

const (
	// Version1_0 restricts if-feature to a single, unparenthesized feature reference.
	Version1_0 Version = iota
	// Version1_1 allows the full not/and/or/parenthesized grammar.
	Version1_1
)

// Feature is a compiled YANG feature: its name, enabled flag, the compiled
// if-feature expressions that gate it, and the features that reference it
// (populated during compilation, consumed by Change's cascade pass).
type Feature struct {
	Name        string
	Enabled     bool
	Expressions []*Expression
	Dependents  []*Feature
}

// Evaluate reports whether every one of f's if-feature expressions holds
// under the current enabled state of the features it references. A feature
// with no if-feature expressions is always eligible.
func (f *Feature) Evaluate() bool {
	for _, expr := range f.Expressions {
		if !expr.Evaluate() {
			return false
		}
	}
	return true
}

// Expression is one compiled if-feature expression.
type Expression struct {
	ops      opcodeStream
	features []*Feature
}

// Evaluate runs the expression's opcode stream against the current enabled
// state of its referenced features.
func (e *Expression) Evaluate() bool {
	r := evaluator{expr: e}
	return r.next()
}

type evaluator struct {
	expr       *Expression
	opIdx      int
	featureIdx int
}

func (r *evaluator) next() bool {
	op := r.expr.ops.at(r.opIdx)
	r.opIdx++
	switch op {
	case OpFeature:
		f := r.expr.features[r.featureIdx]
		r.featureIdx++
		return f.Enabled
	case OpNot:
		return !r.next()
	case OpAnd:
		a := r.next()
		b := r.next()
		return a && b
	case OpOr:
		a := r.next()
		b := r.next()
		return a || b
	default:
		return false
	}
}

// ReferencedFeatures returns the features this expression reads, one entry
// per reference, in the order they appear in the compiled feature list; a
// feature referenced twice appears twice.
func (e *Expression) ReferencedFeatures() []*Feature {
	out := make([]*Feature, len(e.features))
	copy(out, e.features)
	return out
}
