package yang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coreyang/yangcore/internal/feature"
	"github.com/coreyang/yangcore/internal/model"
	"github.com/coreyang/yangcore/internal/yangtext"
)

// ParseString reads src (full YANG compact-syntax module text) into a
// model.ParsedModule, performing no cross-module resolution or
// compilation. It is the semantic-extraction half of §4.E's two-stage
// lifecycle; yangtext.Parse supplies the raw statement tree.
func ParseString(src string) (*model.ParsedModule, error) {
	stmt, err := yangtext.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("yang: %w", err)
	}
	if stmt.Keyword != "module" && stmt.Keyword != "submodule" {
		return nil, fmt.Errorf("yang: top-level statement is %q, want \"module\" or \"submodule\"", stmt.Keyword)
	}
	return extractModule(stmt)
}

func extractModule(stmt *yangtext.Statement) (*model.ParsedModule, error) {
	m := &model.ParsedModule{Name: stmt.Argument}

	if ns := stmt.Child("namespace"); ns != nil {
		m.Namespace = ns.Argument
	}
	if pfx := stmt.Child("prefix"); pfx != nil {
		m.Prefix = pfx.Argument
	}
	if yv := stmt.Child("yang-version"); yv != nil && yv.Argument == "1.1" {
		m.Version = feature.Version1_1
	} else {
		m.Version = feature.Version1_0
	}

	for _, r := range stmt.Children("revision") {
		m.Revisions = append(m.Revisions, r.Argument)
	}

	for _, imp := range stmt.Children("import") {
		entry := model.Import{Module: imp.Argument}
		if p := imp.Child("prefix"); p != nil {
			entry.Prefix = p.Argument
		}
		if rd := imp.Child("revision-date"); rd != nil {
			entry.Revision = rd.Argument
		}
		m.Imports = append(m.Imports, entry)
	}
	for _, inc := range stmt.Children("include") {
		entry := model.Include{Submodule: inc.Argument}
		if rd := inc.Child("revision-date"); rd != nil {
			entry.Revision = rd.Argument
		}
		m.Includes = append(m.Includes, entry)
	}

	for _, td := range stmt.Children("typedef") {
		ty := td.Child("type")
		if ty == nil {
			return nil, fmt.Errorf("yang: typedef %q has no \"type\" substatement", td.Argument)
		}
		ref, err := parseTypeRef(ty)
		if err != nil {
			return nil, err
		}
		m.Typedefs = append(m.Typedefs, model.ParsedTypedef{
			Name:   td.Argument,
			Status: parseStatus(td),
			Type:   ref,
		})
	}

	for _, f := range stmt.Children("feature") {
		pf := model.ParsedFeature{Name: f.Argument}
		for _, iff := range f.Children("if-feature") {
			pf.IfFeatures = append(pf.IfFeatures, iff.Argument)
		}
		m.Features = append(m.Features, pf)
	}

	for _, id := range stmt.Children("identity") {
		pi := model.ParsedIdentity{Name: id.Argument}
		for _, base := range id.Children("base") {
			pi.Base = append(pi.Base, base.Argument)
		}
		m.Identities = append(m.Identities, pi)
	}

	for _, a := range stmt.Children("augment") {
		m.Augments = append(m.Augments, model.Augment{TargetPath: a.Argument})
	}
	for _, d := range stmt.Children("deviation") {
		m.Deviations = append(m.Deviations, model.Deviation{TargetPath: d.Argument})
	}
	for _, sub := range stmt.Sub {
		// None of RFC 7950's core statement keywords are prefix-qualified;
		// a colon in the keyword always marks a use of an extension.
		if _, _, ok := feature.ParsePrefix(sub.Keyword); ok {
			m.Extensions = append(m.Extensions, model.ExtensionUse{Keyword: sub.Keyword, Argument: sub.Argument})
		}
	}

	children, err := parseChildren(stmt)
	if err != nil {
		return nil, err
	}
	m.Children = children

	for _, g := range stmt.Children("grouping") {
		gchildren, err := parseChildren(g)
		if err != nil {
			return nil, err
		}
		m.Groupings = append(m.Groupings, model.ParsedGrouping{Name: g.Argument, Children: gchildren})
	}

	return m, nil
}

// nodeKind maps a source statement keyword to the NodeType it produces,
// for the nine data-tree statement kinds §3's compiled-node model names.
func nodeKind(keyword string) (model.NodeType, bool) {
	switch keyword {
	case "container":
		return model.Container, true
	case "leaf":
		return model.Leaf, true
	case "leaf-list":
		return model.LeafList, true
	case "list":
		return model.List, true
	case "choice":
		return model.Choice, true
	case "case":
		return model.Case, true
	case "uses":
		return model.Uses, true
	case "anyxml":
		return model.Anyxml, true
	case "anydata":
		return model.Anydata, true
	default:
		return 0, false
	}
}

// parseChildren collects every direct data-tree substatement of stmt, in
// declaration order, recursing into container/list/choice/case bodies.
func parseChildren(stmt *yangtext.Statement) ([]model.ParsedNode, error) {
	var out []model.ParsedNode
	for _, sub := range stmt.Sub {
		kind, ok := nodeKind(sub.Keyword)
		if !ok {
			continue
		}
		pn, err := parseNode(kind, sub)
		if err != nil {
			return nil, err
		}
		out = append(out, pn)
	}
	return out, nil
}

// parseNode extracts one data-tree statement into a model.ParsedNode,
// recursing into its children when its kind carries a nested subtree.
func parseNode(kind model.NodeType, stmt *yangtext.Statement) (model.ParsedNode, error) {
	pn := model.ParsedNode{
		Kind:   kind,
		Name:   stmt.Argument,
		Status: parseStatus(stmt),
		Config: true,
	}
	if cfg := stmt.Child("config"); cfg != nil {
		pn.Config = cfg.Argument == "true"
	}
	if man := stmt.Child("mandatory"); man != nil {
		pn.Mandatory = man.Argument == "true"
	}
	if when := stmt.Child("when"); when != nil {
		pn.When = when.Argument
	}
	for _, must := range stmt.Children("must") {
		pm := model.ParsedMust{Expr: must.Argument}
		if t := must.Child("error-app-tag"); t != nil {
			pm.ErrorAppTag = t.Argument
		}
		if msg := must.Child("error-message"); msg != nil {
			pm.ErrorMessage = msg.Argument
		}
		pn.Must = append(pn.Must, pm)
	}

	switch kind {
	case model.Leaf, model.LeafList:
		ty := stmt.Child("type")
		if ty == nil {
			return pn, fmt.Errorf("yang: %s %q has no \"type\" substatement", stmt.Keyword, stmt.Argument)
		}
		ref, err := parseTypeRef(ty)
		if err != nil {
			return pn, err
		}
		pn.Type = ref
	case model.List:
		if key := stmt.Child("key"); key != nil {
			pn.Key = strings.Fields(key.Argument)
		}
		children, err := parseChildren(stmt)
		if err != nil {
			return pn, err
		}
		pn.Children = children
	case model.Container, model.Choice, model.Case:
		children, err := parseChildren(stmt)
		if err != nil {
			return pn, err
		}
		pn.Children = children
	case model.Uses:
		pn.Grouping = stmt.Argument
	}
	return pn, nil
}

func parseStatus(stmt *yangtext.Statement) model.Status {
	s := stmt.Child("status")
	if s == nil {
		return model.Status(0) // Current
	}
	switch s.Argument {
	case "deprecated":
		return model.Status(1)
	case "obsolete":
		return model.Status(2)
	default:
		return model.Status(0)
	}
}

func parseTypeRef(ty *yangtext.Statement) (model.ParsedTypeRef, error) {
	ref := model.ParsedTypeRef{Name: ty.Argument}

	if r := ty.Child("range"); r != nil {
		ref.RangeExpr = r.Argument
	}
	if l := ty.Child("length"); l != nil {
		ref.LengthExpr = l.Argument
	}
	for _, p := range ty.Children("pattern") {
		pp := model.ParsedPattern{Expr: p.Argument}
		if t := p.Child("error-app-tag"); t != nil {
			pp.ErrorAppTag = t.Argument
		}
		if msg := p.Child("error-message"); msg != nil {
			pp.ErrorMessage = msg.Argument
		}
		ref.Patterns = append(ref.Patterns, pp)
	}
	for _, e := range ty.Children("enum") {
		pe := model.ParsedEnum{Name: e.Argument}
		if v := e.Child("value"); v != nil {
			n, err := strconv.ParseInt(v.Argument, 10, 32)
			if err != nil {
				return ref, fmt.Errorf("yang: enum %q has invalid value %q: %w", e.Argument, v.Argument, err)
			}
			pe.Value = int32(n)
			pe.ValueExplicit = true
		}
		ref.Enums = append(ref.Enums, pe)
	}
	for _, b := range ty.Children("bit") {
		pb := model.ParsedBit{Name: b.Argument}
		if p := b.Child("position"); p != nil {
			n, err := strconv.ParseUint(p.Argument, 10, 32)
			if err != nil {
				return ref, fmt.Errorf("yang: bit %q has invalid position %q: %w", b.Argument, p.Argument, err)
			}
			pb.Position = uint32(n)
			pb.PositionExplicit = true
		}
		ref.Bits = append(ref.Bits, pb)
	}
	if fd := ty.Child("fraction-digits"); fd != nil {
		n, err := strconv.ParseUint(fd.Argument, 10, 8)
		if err != nil {
			return ref, fmt.Errorf("yang: invalid fraction-digits %q: %w", fd.Argument, err)
		}
		ref.FractionDigits = uint8(n)
		ref.FractionDigitsSet = true
	}
	if ref.Name == "union" {
		for _, member := range ty.Children("type") {
			m, err := parseTypeRef(member)
			if err != nil {
				return ref, err
			}
			ref.Union = append(ref.Union, m)
		}
	}
	return ref, nil
}
