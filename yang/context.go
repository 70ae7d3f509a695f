package yang

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/coreyang/yangcore/diag"
	"github.com/coreyang/yangcore/internal/dict"
	"github.com/coreyang/yangcore/internal/telemetry"
)

type moduleState int

const (
	stateUnknown moduleState = iota
	stateLoading
	stateCompiled
)

type moduleKey struct {
	name     string
	revision string
}

type registryEntry struct {
	state  moduleState
	module *Module
}

// Context is the compilation unit: a string dictionary, a module
// registry keyed by (name, revision), and a buffer to which failed
// compile, load, and implement calls append their diagnostics (feature
// changes are not recorded there). One Context corresponds to one
// libyang-style "context" — it enforces that at most one revision of a
// given module is implemented at a time.
type Context struct {
	mu sync.Mutex

	Dict   *dict.Dictionary
	Loader Loader
	Log    zerolog.Logger
	Diags  diag.Buffer

	// FreeSource is the context-wide default for Options.FreeSource: once
	// a module compiles successfully, its parsed tree is released and
	// detached. CompileStringOptions overrides this per call.
	FreeSource bool

	entries     map[moduleKey]*registryEntry
	implemented map[string]string // module name -> implemented revision
}

// NewContext builds a Context backed by loader. A nil loader is valid for
// callers that only ever use ParseString/CompileString directly on
// modules with no imports or includes.
func NewContext(loader Loader) *Context {
	return &Context{
		Dict:        dict.New(),
		Loader:      loader,
		Log:         telemetry.Logger,
		entries:     make(map[moduleKey]*registryEntry),
		implemented: make(map[string]string),
	}
}

// Lookup returns an already-loaded module by name and exact revision (""
// matches whichever revision is registered, if only one is).
func (c *Context) Lookup(name, revision string) (*Module, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if revision != "" {
		e, ok := c.entries[moduleKey{name, revision}]
		if !ok || e.state != stateCompiled {
			return nil, false
		}
		return e.module, true
	}
	for k, e := range c.entries {
		if k.name == name && e.state == stateCompiled {
			return e.module, true
		}
	}
	return nil, false
}

// LoadModule resolves, parses, and compiles the named module via c.Loader,
// marking it implemented if implemented is true. It detects import
// cycles via the loading/compiled state machine the same way the
// teacher's internal/loader tracks schemaStateLoading.
func (c *Context) LoadModule(name, revision string, implemented bool) (*Module, error) {
	if c.Loader == nil {
		return nil, fmt.Errorf("yang: context has no loader configured")
	}

	c.mu.Lock()
	if m, ok := c.entries[moduleKey{name, revision}]; ok {
		switch m.state {
		case stateLoading:
			c.mu.Unlock()
			err := diag.New(diag.KindSemantic, "import-cycle", name,
				"import cycle detected while loading module %q", name)
			c.recordDiag(err)
			return nil, err
		case stateCompiled:
			mod := m.module
			c.mu.Unlock()
			if implemented {
				return mod, c.markImplemented(mod)
			}
			return mod, nil
		}
	}
	c.entries[moduleKey{name, revision}] = &registryEntry{state: stateLoading}
	c.mu.Unlock()

	src, resolvedRev, err := c.Loader.Load(name, revision)
	if err != nil {
		c.forgetLoading(name, revision)
		return nil, err
	}

	mod, err := c.parseAndCompile(src, implemented)
	if err != nil {
		c.forgetLoading(name, revision)
		return nil, err
	}
	if c.FreeSource {
		mod.Parsed = nil
	}

	c.mu.Lock()
	delete(c.entries, moduleKey{name, revision})
	c.entries[moduleKey{mod.Name, mod.Revision}] = &registryEntry{state: stateCompiled, module: mod}
	if resolvedRev != "" {
		c.entries[moduleKey{mod.Name, resolvedRev}] = &registryEntry{state: stateCompiled, module: mod}
	}
	c.mu.Unlock()

	telemetry.ModuleEvent(c.Log, mod.Name, mod.Revision, "loaded")
	if implemented {
		return mod, c.markImplemented(mod)
	}
	return mod, nil
}

// recordDiag appends err's diagnostic to the context's buffer, if it
// carries one, per §7: "collected in a per-context buffer the caller can
// drain." Diagnostics are still returned as Go errors for control flow;
// the buffer is purely an additional observability surface, never
// consulted to decide anything here.
func (c *Context) recordDiag(err error) {
	if err == nil {
		return
	}
	var d diag.Diagnostic
	if errors.As(err, &d) {
		c.Diags.Add(d)
		return
	}
	var l diag.List
	if errors.As(err, &l) {
		c.Diags.AddAll(l)
	}
}

func (c *Context) forgetLoading(name, revision string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, moduleKey{name, revision})
}

// markImplemented enforces §4.E's at-most-one-implemented-revision rule.
func (c *Context) markImplemented(m *Module) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.implemented[m.Name]; ok && existing != m.Revision {
		err := diag.New(diag.KindAlreadyExists, "module-already-implemented", m.Name,
			"module %q revision %q already implemented, cannot also implement %q", m.Name, existing, m.Revision)
		c.Diags.Add(err)
		return err
	}
	c.implemented[m.Name] = m.Revision
	m.Implemented = true
	return nil
}
