// Compile implements the if-feature expression compiler described in
// spec §4.B, ground-truthed against lys_compile_iffeature in
// _examples/original_source/src/tree_schema.c. That C implementation
// scans the expression right-to-left with an operator stack and writes
// into its output arrays from the high index down, which — after the
// scan completes — leaves the opcode stream in the order a left-to-right,
// read-one-opcode-then-recurse evaluator expects: the operator of a
// compound expression precedes its operand(s) in the stream, matching the
// Evaluate recursion in feature.go exactly. This file reproduces that
// algorithm over a tokenized expression (rather than raw byte-by-byte
// scanning) so that, unlike the C source, a feature named "nothing" is
// never mistaken for the keyword "not" followed by "hing".
package feature

import (
	"strings"

	"github.com/coreyang/yangcore/diag"
)

// Lookup resolves a (possibly prefix-qualified) feature name referenced by
// an if-feature expression. Supplied by the module lifecycle layer, which
// knows how to cross imports.
type Lookup func(name string) (*Feature, error)

type tokenKind int

const (
	tokFeature tokenKind = iota
	tokNot
	tokAnd
	tokOr
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(expr string, path string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen})
			i++
		default:
			start := i
			for i < len(expr) && !isIffSpace(expr[i]) && expr[i] != '(' && expr[i] != ')' {
				i++
			}
			word := expr[start:i]
			switch word {
			case "not":
				toks = append(toks, token{kind: tokNot})
			case "and":
				toks = append(toks, token{kind: tokAnd})
			case "or":
				toks = append(toks, token{kind: tokOr})
			default:
				toks = append(toks, token{kind: tokFeature, text: word})
			}
		}
	}
	if len(toks) == 0 {
		return nil, diag.New(diag.KindSyntax, "iff-empty", path, "if-feature expression %q is empty", expr)
	}
	return toks, nil
}

func isIffSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// precedence orders NOT tightest, then AND, then OR — matching §4.B.
func precedence(k tokenKind) int {
	switch k {
	case tokNot:
		return 2
	case tokAnd:
		return 1
	case tokOr:
		return 0
	default:
		return -1
	}
}

// Compile parses expr, resolves every referenced feature through lookup,
// and produces a compiled Expression. version gates YANG 1.0's
// single-feature, parenthesis-free restriction.
func Compile(expr string, path string, version Version, lookup Lookup) (*Expression, error) {
	toks, err := tokenize(expr, path)
	if err != nil {
		return nil, err
	}

	depth := 0
	hasParen := false
	featureCount := 0
	for _, tk := range toks {
		switch tk.kind {
		case tokLParen:
			depth++
			hasParen = true
		case tokRParen:
			depth--
			if depth < 0 {
				return nil, diag.New(diag.KindSyntax, "iff-parens", path,
					"if-feature %q has unbalanced parentheses", expr)
			}
		case tokFeature:
			featureCount++
		}
	}
	if depth != 0 {
		return nil, diag.New(diag.KindSyntax, "iff-parens", path,
			"if-feature %q has unbalanced parentheses", expr)
	}
	if version == Version1_0 && (hasParen || featureCount > 1) {
		return nil, diag.New(diag.KindSyntax, "iff-version", path,
			"if-feature %q requires YANG 1.1 (parentheses or more than one feature)", expr)
	}

	return emit(toks, expr, path, featureCount, lookup)
}

// emit runs the right-to-left, operator-stack pass described in §4.B.
func emit(toks []token, raw, path string, featureCount int, lookup Lookup) (*Expression, error) {
	var opStack []tokenKind
	var revOps []Opcode
	revFeatures := make([]*Feature, 0, featureCount)

	popTo := func(minPrec int) {
		for len(opStack) > 0 && precedence(opStack[len(opStack)-1]) >= minPrec {
			top := opStack[len(opStack)-1]
			opStack = opStack[:len(opStack)-1]
			revOps = append(revOps, opcodeFor(top))
		}
	}

	for i := len(toks) - 1; i >= 0; i-- {
		tk := toks[i]
		switch tk.kind {
		case tokRParen:
			opStack = append(opStack, tokRParen)
		case tokLParen:
			for {
				if len(opStack) == 0 {
					return nil, diag.New(diag.KindSyntax, "iff-parens", path,
						"if-feature %q has unbalanced parentheses", raw)
				}
				top := opStack[len(opStack)-1]
				opStack = opStack[:len(opStack)-1]
				if top == tokRParen {
					break
				}
				revOps = append(revOps, opcodeFor(top))
			}
		case tokNot:
			if len(opStack) > 0 && opStack[len(opStack)-1] == tokNot {
				// double negation cancels.
				opStack = opStack[:len(opStack)-1]
			} else {
				opStack = append(opStack, tokNot)
			}
		case tokAnd:
			popTo(precedence(tokAnd))
			opStack = append(opStack, tokAnd)
		case tokOr:
			popTo(precedence(tokOr))
			opStack = append(opStack, tokOr)
		case tokFeature:
			f, err := lookup(tk.text)
			if err != nil {
				return nil, err
			}
			if f == nil {
				return nil, diag.New(diag.KindNotFound, "iff-feature", path,
					"if-feature %q references unknown feature %q", raw, tk.text)
			}
			revOps = append(revOps, OpFeature)
			revFeatures = append(revFeatures, f)
		}
	}
	for len(opStack) > 0 {
		top := opStack[len(opStack)-1]
		opStack = opStack[:len(opStack)-1]
		if top == tokRParen {
			return nil, diag.New(diag.KindSyntax, "iff-parens", path,
				"if-feature %q has unbalanced parentheses", raw)
		}
		revOps = append(revOps, opcodeFor(top))
	}

	if len(revFeatures) == 0 {
		return nil, diag.New(diag.KindSyntax, "iff-empty", path,
			"if-feature %q references no features", raw)
	}

	stream := newOpcodeStream(len(revOps))
	for i, op := range revOps {
		// revOps was built in reverse emission order; writing position
		// len(revOps)-1-i restores the forward (operator-before-operand) order.
		stream.set(len(revOps)-1-i, op)
	}
	features := make([]*Feature, len(revFeatures))
	for i, f := range revFeatures {
		features[len(revFeatures)-1-i] = f
	}

	return &Expression{ops: stream, features: features}, nil
}

func opcodeFor(k tokenKind) Opcode {
	switch k {
	case tokNot:
		return OpNot
	case tokAnd:
		return OpAnd
	case tokOr:
		return OpOr
	default:
		return OpFeature
	}
}

// ParsePrefix splits "prefix:name" into its parts; returns ok=false when
// name carries no prefix.
func ParsePrefix(name string) (prefix, local string, ok bool) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:], true
	}
	return "", name, false
}
