package yang

import (
	"github.com/coreyang/yangcore/diag"
	"github.com/coreyang/yangcore/internal/feature"
	"github.com/coreyang/yangcore/internal/model"
	"github.com/coreyang/yangcore/internal/typecompile"
)

// typedefResolver adapts one module's parsed typedef table, plus its
// resolved imports, into the typecompile.Resolver interface. A prefixed
// name ("prefix:local") that isn't the module's own prefix is looked up
// in the matching import's typedef table instead.
type typedefResolver struct {
	module  *Module
	imports map[string]*Module // import prefix -> already-compiled module
}

func (r *typedefResolver) Builtin(name string) (typecompile.Basetype, bool) {
	return builtinBasetype(name)
}

func (r *typedefResolver) ResolveTypedef(name, path string) (*typecompile.TypedefDef, error) {
	target := r.module
	local := name
	if prefix, rest, ok := feature.ParsePrefix(name); ok && prefix != r.module.Prefix {
		imp, ok := r.imports[prefix]
		if !ok {
			return nil, diag.New(diag.KindNotFound, "typedef-unknown-prefix", path,
				"type %q references unknown prefix %q", name, prefix)
		}
		target = imp
		local = rest
	} else if ok {
		local = rest
	}

	for _, td := range target.Parsed.Typedefs {
		if td.Name == local {
			status := typecompile.Status(td.Status)
			return &typecompile.TypedefDef{
				QualifiedName: target.Name + ":" + local,
				Status:        status,
				Base:          typeRefFromParsed(td.Type, status, path),
			}, nil
		}
	}
	return nil, diag.New(diag.KindNotFound, "typedef-not-found", path,
		"typedef %q not found in module %q", local, target.Name)
}

// typeRefFromParsed converts a model.ParsedTypeRef, as found inside a
// typedef's or a leaf's own "type" substatement, into the unresolved typecompile.TypeRef
// the chain walker expects, recursing into union member types.
func typeRefFromParsed(t model.ParsedTypeRef, status typecompile.Status, path string) typecompile.TypeRef {
	r := typecompile.Restrictions{
		RangeExpr:         t.RangeExpr,
		LengthExpr:        t.LengthExpr,
		FractionDigits:    t.FractionDigits,
		FractionDigitsSet: t.FractionDigitsSet,
	}
	for _, p := range t.Patterns {
		r.Patterns = append(r.Patterns, typecompile.DeclaredPattern{
			Expr: p.Expr, ErrorAppTag: p.ErrorAppTag, ErrorMessage: p.ErrorMessage,
		})
	}
	for _, e := range t.Enums {
		r.Enums = append(r.Enums, typecompile.DeclaredEnum{
			Name: e.Name, Value: e.Value, ValueExplicit: e.ValueExplicit,
		})
	}
	for _, b := range t.Bits {
		r.Bits = append(r.Bits, typecompile.DeclaredBit{
			Name: b.Name, Position: b.Position, PositionExplicit: b.PositionExplicit,
		})
	}
	for _, u := range t.Union {
		r.Union = append(r.Union, typeRefFromParsed(u, status, path))
	}
	return typecompile.TypeRef{BaseName: t.Name, Status: status, Restrictions: r, Path: path}
}
