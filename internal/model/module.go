package model

import "github.com/coreyang/yangcore/internal/feature"

// Import is a parsed "import" substatement: a module name, the prefix it
// is bound to in this module, and an optional revision-date constraint.
type Import struct {
	Module   string
	Prefix   string
	Revision string
}

// Include is a parsed "include" substatement.
type Include struct {
	Submodule string
	Revision  string
}

// ParsedTypedef mirrors a source "typedef" statement closely enough to
// feed typecompile.Resolver.
type ParsedTypedef struct {
	Name   string
	Status Status
	Type   ParsedTypeRef
}

// ParsedTypeRef mirrors a source "type" statement.
type ParsedTypeRef struct {
	Name         string
	RangeExpr    string
	LengthExpr   string
	Patterns     []ParsedPattern
	Enums        []ParsedEnum
	Bits         []ParsedBit
	FractionDigits    uint8
	FractionDigitsSet bool
	Union        []ParsedTypeRef
}

// ParsedPattern mirrors a source "pattern" statement.
type ParsedPattern struct {
	Expr         string
	ErrorAppTag  string
	ErrorMessage string
}

// ParsedEnum mirrors a source "enum" statement.
type ParsedEnum struct {
	Name          string
	Value         int32
	ValueExplicit bool
}

// ParsedBit mirrors a source "bit" statement.
type ParsedBit struct {
	Name             string
	Position         uint32
	PositionExplicit bool
}

// ParsedFeature mirrors a source "feature" statement.
type ParsedFeature struct {
	Name       string
	IfFeatures []string
}

// ParsedIdentity mirrors a source "identity" statement.
type ParsedIdentity struct {
	Name string
	Base []string
}

// ParsedMust mirrors a source "must" statement.
type ParsedMust struct {
	Expr         string
	ErrorAppTag  string
	ErrorMessage string
}

// ParsedNode mirrors one source data-tree statement: container, leaf,
// leaf-list, list, choice, case, uses, anyxml, or anydata. Only the
// fields relevant to Kind are ever populated — Type for Leaf/LeafList,
// Key for List, Grouping for Uses, Children for every node kind that can
// carry nested data nodes (Container, List, Choice, Case).
type ParsedNode struct {
	Kind      NodeType
	Name      string
	Status    Status
	Config    bool
	Mandatory bool

	Type ParsedTypeRef

	Key []string

	Grouping string

	When     string
	Must     []ParsedMust
	Children []ParsedNode
}

// ParsedGrouping mirrors a source "grouping" statement: a reusable, named
// subtree. Splicing a "uses" reference's target grouping into the using
// node's own children is schema editing — a distinct, larger concern than
// compiling one module's own tree — so groupings are parsed and kept for
// inspection only; "uses" is carried as an inert reference to its name.
type ParsedGrouping struct {
	Name     string
	Children []ParsedNode
}

// Augment mirrors a source "augment" statement. It is carried as an
// inert bookkeeping record only — the target path and nothing else —
// since applying it (merging the augmenting nodes into the target's
// sibling list) is schema editing, out of this module's scope.
type Augment struct {
	TargetPath string
}

// Deviation mirrors a source "deviation" statement, carried the same way
// as Augment: recorded, never applied.
type Deviation struct {
	TargetPath string
}

// ExtensionUse mirrors an unrecognized, prefix-qualified statement: a use
// of a YANG extension. It is carried opaquely — keyword and argument only
// — and never interpreted, matching the "plugin system is stubs only"
// scope boundary.
type ExtensionUse struct {
	Keyword  string
	Argument string
}

// ParsedModule mirrors source: the substatements of a "module" statement,
// before any cross-reference is resolved.
type ParsedModule struct {
	Name      string
	Namespace string
	Prefix    string
	Revisions []string
	Version   feature.Version

	Imports    []Import
	Includes   []Include
	Typedefs   []ParsedTypedef
	Groupings  []ParsedGrouping
	Features   []ParsedFeature
	Identities []ParsedIdentity
	Children   []ParsedNode
	Augments   []Augment
	Deviations []Deviation
	Extensions []ExtensionUse
}

// LatestRevision returns the newest (lexicographically greatest, since
// YANG revisions are "YYYY-MM-DD") revision date, or "" if none declared.
func (m *ParsedModule) LatestRevision() string {
	var latest string
	for _, r := range m.Revisions {
		if r > latest {
			latest = r
		}
	}
	return latest
}

// CompiledImport is a resolved "import": the handle it resolved to and
// the prefix this module binds it under.
type CompiledImport struct {
	Prefix string
	Module *CompiledModule
}

// CompiledModule is the immutable result of compiling a ParsedModule.
type CompiledModule struct {
	Name      string
	Namespace string
	Prefix    string
	Revision  string

	Imports    []CompiledImport
	Features   []*feature.Feature
	Identities []*Identity
	Top        *Node // head of the top-level sibling list; nil if empty

	Augments   []Augment
	Deviations []Deviation
	Extensions []ExtensionUse
}
