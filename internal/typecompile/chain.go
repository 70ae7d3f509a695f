package typecompile

import (
	"github.com/coreyang/yangcore/diag"
	"github.com/coreyang/yangcore/internal/pattern"
)

// Status mirrors a typedef's or leaf's "status" substatement, used to
// enforce §4.C's chain-hop compatibility rule.
type Status int

const (
	Current Status = iota
	Deprecated
	Obsolete
)

// checkStatus enforces that a current definition may not reference a
// deprecated or obsolete one, and a deprecated definition may not
// reference an obsolete one.
func checkStatus(referencer, target Status, path string) error {
	switch {
	case referencer == Current && target != Current:
		return diag.New(diag.KindSemantic, "status-current-references-unstable", path,
			"a current definition may not reference a deprecated or obsolete type")
	case referencer == Deprecated && target == Obsolete:
		return diag.New(diag.KindSemantic, "status-deprecated-references-obsolete", path,
			"a deprecated definition may not reference an obsolete type")
	default:
		return nil
	}
}

// DeclaredPattern is one source-level "pattern" substatement.
type DeclaredPattern struct {
	Expr         string
	ErrorAppTag  string
	ErrorMessage string
}

// Restrictions collects every restriction substatement a single "type"
// statement (leaf-level or typedef-level) may declare.
type Restrictions struct {
	RangeExpr           string
	RangeErrorAppTag    string
	RangeErrorMessage   string
	LengthExpr          string
	LengthErrorAppTag   string
	LengthErrorMessage  string
	Patterns            []DeclaredPattern
	Enums               []DeclaredEnum
	Bits                []DeclaredBit
	FractionDigits      uint8
	FractionDigitsSet   bool
	Union               []TypeRef
}

// empty reports whether r declares no restriction at all, the condition
// under which a chain step aliases its base instead of allocating.
func (r Restrictions) empty() bool {
	return r.RangeExpr == "" && r.LengthExpr == "" && len(r.Patterns) == 0 &&
		len(r.Enums) == 0 && len(r.Bits) == 0 && !r.FractionDigitsSet && len(r.Union) == 0
}

// TypeRef is an unresolved "type" statement: either a reference to a
// built-in or typedef name (BaseName), carrying whatever restrictions
// this level declares.
type TypeRef struct {
	BaseName     string
	Status       Status
	Restrictions Restrictions
	Path         string
}

// TypedefDef is a resolved typedef: its own status and its "type"
// statement, which may itself reference another typedef.
type TypedefDef struct {
	QualifiedName string
	Status        Status
	Base          TypeRef
}

// Resolver supplies the two pieces of external knowledge the chain
// walker needs: which names are built-in basetypes, and how to look up a
// typedef by its (possibly prefix-qualified) name.
type Resolver interface {
	Builtin(name string) (Basetype, bool)
	ResolveTypedef(name, path string) (*TypedefDef, error)
}

// Compiler walks typedef chains and caches their compiled result so a
// typedef referenced from multiple leaves is compiled once.
type Compiler struct {
	resolver Resolver
	cache    map[string]*CompiledType
}

// NewCompiler builds a Compiler backed by resolver.
func NewCompiler(resolver Resolver) *Compiler {
	return &Compiler{resolver: resolver, cache: make(map[string]*CompiledType)}
}

// Compile compiles a leaf's (or another typedef's) type reference into an
// immutable CompiledType, walking and merging its full typedef chain.
func (c *Compiler) Compile(ref TypeRef) (*CompiledType, error) {
	return c.compile(ref, ref.Status)
}

func (c *Compiler) compile(ref TypeRef, referencer Status) (*CompiledType, error) {
	if bt, ok := c.resolver.Builtin(ref.BaseName); ok {
		base := NewBuiltin(bt)
		defer base.Release()
		return applyRestrictions(base, ref.Restrictions, ref.Path, c)
	}

	if cached, ok := c.cache[ref.BaseName]; ok {
		return applyRestrictions(cached, ref.Restrictions, ref.Path, c)
	}

	def, err := c.resolver.ResolveTypedef(ref.BaseName, ref.Path)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(referencer, def.Status, ref.Path); err != nil {
		return nil, err
	}

	// The reference c.compile returns here becomes the cache's own
	// permanent reference; applyRestrictions below only reads base and
	// Retains it on whichever path needs to keep it, so the cache ends
	// up owning exactly one of this typedef's references.
	base, err := c.compile(def.Base, def.Status)
	if err != nil {
		return nil, err
	}
	c.cache[ref.BaseName] = base

	return applyRestrictions(base, ref.Restrictions, ref.Path, c)
}

// applyRestrictions implements the §9 open-question resolution: alias
// base (share it, incrementing its refcount) when r declares nothing new;
// otherwise allocate a fresh CompiledType merging r onto base.
func applyRestrictions(base *CompiledType, r Restrictions, path string, c *Compiler) (*CompiledType, error) {
	if r.empty() {
		return base.Retain(), nil
	}

	bt := base.Basetype
	out := &CompiledType{Basetype: bt, refs: 1, Base: base.Retain()}

	if r.RangeExpr != "" {
		if !permits(bt, kindRange) {
			return nil, diag.New(diag.KindSemantic, "restriction-not-allowed", path,
				"range is not permitted on a %v type", bt)
		}
		parsed, err := ParseRange(r.RangeExpr, path, bt, effectiveFractionDigits(base, r))
		if err != nil {
			return nil, err
		}
		if err := ValidateContainment(base.Range, parsed, path, r.RangeExpr); err != nil {
			return nil, err
		}
		if r.RangeErrorAppTag != "" {
			parsed.ErrorAppTag = r.RangeErrorAppTag
		} else if base.Range != nil {
			parsed.ErrorAppTag = base.Range.ErrorAppTag
		}
		if r.RangeErrorMessage != "" {
			parsed.ErrorMessage = r.RangeErrorMessage
		} else if base.Range != nil {
			parsed.ErrorMessage = base.Range.ErrorMessage
		}
		out.Range = parsed
	} else {
		out.Range = base.Range
	}

	if r.LengthExpr != "" {
		if !permits(bt, kindLength) {
			return nil, diag.New(diag.KindSemantic, "restriction-not-allowed", path,
				"length is not permitted on a %v type", bt)
		}
		parsed, err := ParseRange(r.LengthExpr, path, Uint64, 0)
		if err != nil {
			return nil, err
		}
		if err := ValidateContainment(base.Length, parsed, path, r.LengthExpr); err != nil {
			return nil, err
		}
		if r.LengthErrorAppTag != "" {
			parsed.ErrorAppTag = r.LengthErrorAppTag
		} else if base.Length != nil {
			parsed.ErrorAppTag = base.Length.ErrorAppTag
		}
		if r.LengthErrorMessage != "" {
			parsed.ErrorMessage = r.LengthErrorMessage
		} else if base.Length != nil {
			parsed.ErrorMessage = base.Length.ErrorMessage
		}
		out.Length = parsed
	} else {
		out.Length = base.Length
	}

	if len(r.Patterns) > 0 {
		if !permits(bt, kindPattern) {
			return nil, diag.New(diag.KindSemantic, "restriction-not-allowed", path,
				"pattern is not permitted on a %v type", bt)
		}
		merged, err := mergePatterns(base.Patterns, r.Patterns, path)
		if err != nil {
			return nil, err
		}
		out.Patterns = merged
	} else {
		out.Patterns = retainAll(base.Patterns)
	}

	if len(r.Enums) > 0 {
		if !permits(bt, kindEnum) {
			return nil, diag.New(diag.KindSemantic, "restriction-not-allowed", path,
				"enum is not permitted on a %v type", bt)
		}
		merged, err := MergeEnums(base.Enums, r.Enums, path)
		if err != nil {
			return nil, err
		}
		out.Enums = merged
	} else {
		out.Enums = base.Enums
		if out.Enums == nil && bt == Enumeration && base.Base == nil {
			return nil, diag.New(diag.KindSemantic, "enum-empty", path,
				"a type directly derived from enumeration must declare at least one enum")
		}
	}

	if len(r.Bits) > 0 {
		if !permits(bt, kindBit) {
			return nil, diag.New(diag.KindSemantic, "restriction-not-allowed", path,
				"bit is not permitted on a %v type", bt)
		}
		merged, err := MergeBits(base.Bits, r.Bits, path)
		if err != nil {
			return nil, err
		}
		out.Bits = merged
	} else {
		out.Bits = base.Bits
		if out.Bits == nil && bt == Bits && base.Base == nil {
			return nil, diag.New(diag.KindSemantic, "bits-empty", path,
				"a type directly derived from bits must declare at least one bit")
		}
	}

	if len(r.Union) > 0 {
		if !permits(bt, kindUnion) {
			return nil, diag.New(diag.KindSemantic, "restriction-not-allowed", path,
				"union member types are not permitted on a %v type", bt)
		}
		members := make([]*CompiledType, 0, len(r.Union))
		for _, m := range r.Union {
			mt, err := c.compile(m, m.Status)
			if err != nil {
				for _, built := range members {
					built.Release()
				}
				return nil, err
			}
			members = append(members, mt)
		}
		out.Union = members
	} else {
		out.Union = base.Union
		for _, m := range out.Union {
			m.Retain()
		}
	}

	if r.FractionDigitsSet && !permits(bt, kindFractionDigits) {
		return nil, diag.New(diag.KindSemantic, "restriction-not-allowed", path,
			"fraction-digits is not permitted on a %v type", bt)
	}
	out.FractionDigits = effectiveFractionDigits(base, r)

	return out, nil
}

// effectiveFractionDigits enforces that fraction-digits, once set, is part
// of a decimal64 type's identity and cannot be overridden by derivation.
func effectiveFractionDigits(base *CompiledType, r Restrictions) uint8 {
	if base.FractionDigits != 0 {
		return base.FractionDigits
	}
	if r.FractionDigitsSet {
		return r.FractionDigits
	}
	return 0
}

func mergePatterns(base []*pattern.Handle, declared []DeclaredPattern, path string) ([]*pattern.Handle, error) {
	out := make([]*pattern.Handle, 0, len(base)+len(declared))
	out = append(out, retainAll(base)...)
	for _, d := range declared {
		h, err := pattern.Compile(d.Expr, path, d.ErrorAppTag, d.ErrorMessage)
		if err != nil {
			for _, p := range out {
				p.Release()
			}
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func retainAll(in []*pattern.Handle) []*pattern.Handle {
	out := make([]*pattern.Handle, len(in))
	for i, h := range in {
		h.Retain()
		out[i] = h
	}
	return out
}
