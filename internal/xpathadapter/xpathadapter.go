// Package xpathadapter compiles "when" and "must" XPath expressions
// against antchfx/xpath's syntax engine. It validates and stores the
// compiled expression; evaluating one against a live instance-data tree
// is a distinct, larger system outside this module's scope (the core
// schema compiler's job ends at "this expression is well-formed XPath").
package xpathadapter

import (
	"github.com/antchfx/xpath"

	"github.com/coreyang/yangcore/diag"
)

// Expr is a compiled when/must expression: its source text (for
// diagnostics and re-serialization) plus the compiled form that a future
// instance-data evaluator can run against a xpath.NodeNavigator.
type Expr struct {
	Source       string
	ErrorMessage string
	ErrorAppTag  string
	compiled     *xpath.Expr
}

// Compile parses expr as XPath 1.0, per RFC 7950's when/must grammar.
func Compile(expr, path string) (*Expr, error) {
	c, err := xpath.Compile(expr)
	if err != nil {
		return nil, diag.New(diag.KindSyntax, "xpath-syntax", path, "invalid XPath expression %q: %v", expr, err)
	}
	return &Expr{Source: expr, compiled: c}, nil
}

// Compiled exposes the underlying xpath.Expr for a future evaluator.
func (e *Expr) Compiled() *xpath.Expr {
	return e.compiled
}
