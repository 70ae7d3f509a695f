package yang

import (
	"fmt"

	"github.com/coreyang/yangcore/diag"
	"github.com/coreyang/yangcore/internal/array"
	"github.com/coreyang/yangcore/internal/dict"
	"github.com/coreyang/yangcore/internal/feature"
	"github.com/coreyang/yangcore/internal/model"
	"github.com/coreyang/yangcore/internal/telemetry"
	"github.com/coreyang/yangcore/internal/typecompile"
	"github.com/coreyang/yangcore/internal/xpathadapter"
)

// Options configures a single compile operation, mirroring §4.E's
// compile(handle, options).
type Options struct {
	// FreeSource releases and detaches the parsed tree once compilation
	// succeeds, leaving Module.Parsed nil. Overrides Context.FreeSource
	// for this call.
	FreeSource bool
}

// CompileString parses and compiles src directly, without going through
// c.Loader — useful for a single already-read file or a test fixture.
// Imports are still resolved through c.Loader, if one is configured. It
// applies the context's default free-source behavior; use
// CompileStringOptions to override it for one call.
func (c *Context) CompileString(src string, implemented bool) (*Module, error) {
	return c.CompileStringOptions(src, implemented, Options{FreeSource: c.FreeSource})
}

// CompileStringOptions is CompileString with an explicit Options value,
// overriding the context's default free-source behavior.
func (c *Context) CompileStringOptions(src string, implemented bool, opts Options) (*Module, error) {
	mod, err := c.parseAndCompile(src, implemented)
	if err != nil {
		c.recordDiag(err)
		return nil, err
	}
	if opts.FreeSource {
		mod.Parsed = nil
	}
	c.mu.Lock()
	key := moduleKey{mod.Name, mod.Revision}
	if e, ok := c.entries[key]; ok && e.state == stateCompiled && e.module.Parsed != nil {
		c.mu.Unlock()
		err := diag.New(diag.KindAlreadyExists, "module-duplicate", mod.Name,
			"module %q revision %q is already present in the context", mod.Name, mod.Revision)
		c.recordDiag(err)
		return nil, err
	}
	c.entries[key] = &registryEntry{state: stateCompiled, module: mod}
	c.mu.Unlock()
	if implemented {
		return mod, c.markImplemented(mod)
	}
	return mod, nil
}

func (c *Context) parseAndCompile(src string, implemented bool) (*Module, error) {
	parsed, err := ParseString(src)
	if err != nil {
		return nil, err
	}
	return c.compileModule(parsed)
}

// loadSubmodule resolves and parses one "include" target via c.Loader,
// without registering it in the module registry: a submodule is never a
// standalone implemented module, only a typedef/grouping source merged
// into its main module.
func (c *Context) loadSubmodule(name, revision string) (*model.ParsedModule, error) {
	if c.Loader == nil {
		return nil, fmt.Errorf("yang: context has no loader configured: cannot resolve include %q", name)
	}
	src, _, err := c.Loader.Load(name, revision)
	if err != nil {
		return nil, err
	}
	return ParseString(src)
}

// compileModule runs §4.E's compile stage: merge includes, resolve
// imports, compile features, link identities, then walk every typedef
// chain a leaf references via internal/typecompile.
func (c *Context) compileModule(parsed *model.ParsedModule) (*Module, error) {
	revision := parsed.LatestRevision()
	mod := &Module{
		Name:      parsed.Name,
		Revision:  revision,
		Prefix:    parsed.Prefix,
		Namespace: parsed.Namespace,
		Parsed:    parsed,
	}

	for _, inc := range parsed.Includes {
		sub, err := c.loadSubmodule(inc.Submodule, inc.Revision)
		if err != nil {
			err = fmt.Errorf("yang: module %q: resolving include %q: %w", parsed.Name, inc.Submodule, err)
			c.recordDiag(err)
			return nil, err
		}
		// Submodules share the main module's typedef and grouping search
		// tables; nothing else of a submodule is visible to its main
		// module.
		parsed.Typedefs = append(parsed.Typedefs, sub.Typedefs...)
		parsed.Groupings = append(parsed.Groupings, sub.Groupings...)
	}

	if err := checkUniqueNames(parsed.Name, "typedef", typedefNames(parsed.Typedefs)); err != nil {
		c.recordDiag(err)
		return nil, err
	}
	if err := checkUniqueNames(parsed.Name, "grouping", groupingNames(parsed.Groupings)); err != nil {
		c.recordDiag(err)
		return nil, err
	}

	imports := make(map[string]*Module, len(parsed.Imports))
	seenImports := make(map[string]bool, len(parsed.Imports))
	compiledImports := make([]model.CompiledImport, 0, len(parsed.Imports))
	for _, imp := range parsed.Imports {
		impMod, err := c.LoadModule(imp.Module, imp.Revision, false)
		if err != nil {
			err = fmt.Errorf("yang: module %q: resolving import %q: %w", parsed.Name, imp.Module, err)
			c.recordDiag(err)
			return nil, err
		}
		resolvedKey := impMod.Name + "@" + impMod.Revision
		if seenImports[resolvedKey] {
			err := diag.New(diag.KindAlreadyExists, "import-duplicate-module", parsed.Name,
				"module %q is imported more than once, under different prefixes", impMod.Name)
			c.recordDiag(err)
			return nil, err
		}
		seenImports[resolvedKey] = true
		imports[imp.Prefix] = impMod
		compiledImports = append(compiledImports, model.CompiledImport{Prefix: imp.Prefix, Module: impMod.Compiled})
	}

	features, err := compileFeatures(parsed, imports)
	if err != nil {
		c.recordDiag(err)
		return nil, err
	}

	identities, err := linkIdentities(c.Dict, parsed, imports)
	if err != nil {
		c.recordDiag(err)
		return nil, err
	}

	resolver := &typedefResolver{module: mod, imports: imports}
	tc := typecompile.NewCompiler(resolver)

	var first, last *model.Node
	for _, pn := range parsed.Children {
		n, err := compileNode(pn, tc, c.Dict, parsed.Name)
		if err != nil {
			err = fmt.Errorf("yang: module %q: %w", parsed.Name, err)
			c.recordDiag(err)
			return nil, err
		}
		if first == nil {
			first, n.Prev = n, n
		} else {
			last.Next, n.Prev, first.Prev = n, last, n
		}
		last = n
	}

	mod.Compiled = &model.CompiledModule{
		Name:       parsed.Name,
		Namespace:  parsed.Namespace,
		Prefix:     parsed.Prefix,
		Revision:   revision,
		Imports:    compiledImports,
		Features:   features,
		Identities: identities,
		Top:        first,
		Augments:   parsed.Augments,
		Deviations: parsed.Deviations,
		Extensions: parsed.Extensions,
	}

	telemetry.ModuleEvent(c.Log, mod.Name, mod.Revision, "compiled")
	return mod, nil
}

func typedefNames(tds []model.ParsedTypedef) []string {
	out := make([]string, len(tds))
	for i, td := range tds {
		out[i] = td.Name
	}
	return out
}

func groupingNames(gs []model.ParsedGrouping) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.Name
	}
	return out
}

// checkUniqueNames implements §4.E's "typedef and grouping names are
// unique within each scope" rule over an already-flattened name list (a
// module's own statements plus whatever its includes merged in).
func checkUniqueNames(modName, kind string, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return diag.New(diag.KindAlreadyExists, diag.Code(kind+"-duplicate"), modName,
				"%s %q declared more than once in module %q's scope", kind, n, modName)
		}
		seen[n] = true
	}
	return nil
}

// compileNode compiles one data-tree statement and, recursively, every
// child its kind can carry — container, list, choice, and case descend;
// leaf and leaf-list additionally drive a typedef-chain compile; uses
// carries its target grouping's name without splicing the grouping's own
// children in, the same inert-reference treatment augment and deviation
// get. Every string field on the resulting Node is interned through d,
// per §3's dictionary invariant.
func compileNode(pn model.ParsedNode, tc *typecompile.Compiler, d *dict.Dictionary, parentPath string) (*model.Node, error) {
	path := parentPath + "/" + pn.Name
	n := &model.Node{
		NodeType:  pn.Kind,
		Name:      d.Intern(pn.Name),
		Status:    model.Status(pn.Status),
		Config:    pn.Config,
		Mandatory: pn.Mandatory,
	}

	switch pn.Kind {
	case model.Leaf, model.LeafList:
		ref := typeRefFromParsed(pn.Type, typecompile.Status(pn.Status), path)
		ct, err := tc.Compile(ref)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", nodeKindName(pn.Kind), pn.Name, err)
		}
		n.Type = ct
	case model.List:
		keys := make([]*dict.Handle, len(pn.Key))
		for i, k := range pn.Key {
			keys[i] = d.Intern(k)
		}
		n.Key = array.Of(keys)
	case model.Uses:
		n.Grouping = d.Intern(pn.Grouping)
	}

	if pn.When != "" {
		w, err := xpathadapter.Compile(pn.When, path+":when")
		if err != nil {
			return nil, err
		}
		n.When = w
	}
	for _, pm := range pn.Must {
		must, err := xpathadapter.Compile(pm.Expr, path+":must")
		if err != nil {
			return nil, err
		}
		must.ErrorAppTag = pm.ErrorAppTag
		must.ErrorMessage = pm.ErrorMessage
		n.Must = append(n.Must, must)
	}

	for _, pc := range pn.Children {
		cn, err := compileNode(pc, tc, d, path)
		if err != nil {
			return nil, err
		}
		model.AppendChild(n, cn)
	}

	return n, nil
}

func nodeKindName(k model.NodeType) string {
	switch k {
	case model.Container:
		return "container"
	case model.Leaf:
		return "leaf"
	case model.LeafList:
		return "leaf-list"
	case model.List:
		return "list"
	case model.Choice:
		return "choice"
	case model.Case:
		return "case"
	case model.Uses:
		return "uses"
	case model.Anyxml:
		return "anyxml"
	case model.Anydata:
		return "anydata"
	default:
		return "node"
	}
}

// compileFeatures compiles every feature's if-feature expressions and
// wires the reverse Dependents edges Change's cascade pass walks. A
// prefixed reference ("p:name") is resolved via imports the same way
// resolveIdentity and typedefResolver.ResolveTypedef cross a module
// boundary: locate the imported module through the import's prefix, then
// look up name in its own compiled feature array.
func compileFeatures(parsed *model.ParsedModule, imports map[string]*Module) ([]*feature.Feature, error) {
	byName := make(map[string]*feature.Feature, len(parsed.Features))
	features := make([]*feature.Feature, len(parsed.Features))
	for i, pf := range parsed.Features {
		f := &feature.Feature{Name: pf.Name}
		byName[pf.Name] = f
		features[i] = f
	}
	lookup := func(name string) (*feature.Feature, error) {
		prefix, rest, hasPrefix := feature.ParsePrefix(name)
		if !hasPrefix {
			f, ok := byName[name]
			if !ok {
				return nil, diag.New(diag.KindNotFound, "feature-not-found", parsed.Name,
					"if-feature references unknown feature %q", name)
			}
			return f, nil
		}
		imp, ok := imports[prefix]
		if !ok {
			return nil, diag.New(diag.KindNotFound, "feature-unknown-prefix", parsed.Name,
				"if-feature references unknown prefix %q", prefix)
		}
		for _, f := range imp.Compiled.Features {
			if f.Name == rest {
				return f, nil
			}
		}
		return nil, diag.New(diag.KindNotFound, "feature-not-found", parsed.Name,
			"if-feature references unknown feature %q in module %q", rest, imp.Name)
	}
	for i, pf := range parsed.Features {
		f := features[i]
		for _, expr := range pf.IfFeatures {
			compiled, err := feature.Compile(expr, parsed.Name+":feature:"+pf.Name, parsed.Version, lookup)
			if err != nil {
				return nil, err
			}
			f.Expressions = append(f.Expressions, compiled)
		}
	}
	for _, f := range features {
		for _, expr := range f.Expressions {
			for _, ref := range expr.ReferencedFeatures() {
				ref.Dependents = append(ref.Dependents, f)
			}
		}
	}
	return features, nil
}

// linkIdentities resolves every identity's base references (local or, via
// an import prefix, another module's already-compiled identities) and
// runs the deferred derived-link pass once the whole set exists. Every
// identity's Name is interned through d, per §3's dictionary invariant.
func linkIdentities(d *dict.Dictionary, parsed *model.ParsedModule, imports map[string]*Module) ([]*model.Identity, error) {
	byName := make(map[string]*model.Identity, len(parsed.Identities))
	identities := make([]*model.Identity, len(parsed.Identities))
	for i, pi := range parsed.Identities {
		id := &model.Identity{Name: d.Intern(pi.Name)}
		byName[pi.Name] = id
		identities[i] = id
	}
	for i, pi := range parsed.Identities {
		id := identities[i]
		for _, baseName := range pi.Base {
			base, err := resolveIdentity(baseName, byName, imports)
			if err != nil {
				return nil, fmt.Errorf("yang: module %q: identity %q: %w", parsed.Name, pi.Name, err)
			}
			id.Base = append(id.Base, base)
		}
	}
	for _, id := range identities {
		model.LinkDerived(id)
	}
	return identities, nil
}

func resolveIdentity(name string, local map[string]*model.Identity, imports map[string]*Module) (*model.Identity, error) {
	prefix, rest, hasPrefix := feature.ParsePrefix(name)
	if !hasPrefix {
		if id, ok := local[name]; ok {
			return id, nil
		}
		return nil, diag.New(diag.KindNotFound, "identity-base-not-found", name,
			"base identity %q not found", name)
	}
	imp, ok := imports[prefix]
	if !ok {
		return nil, diag.New(diag.KindNotFound, "identity-unknown-prefix", name,
			"base identity %q references unknown prefix %q", name, prefix)
	}
	for _, id := range imp.Compiled.Identities {
		if id.Name.String() == rest {
			return id, nil
		}
	}
	return nil, diag.New(diag.KindNotFound, "identity-base-not-found", name,
		"base identity %q not found in module %q", rest, imp.Name)
}
