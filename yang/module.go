package yang

import "github.com/coreyang/yangcore/internal/model"

// Module is a loaded module's parsed and compiled pair, identified by its
// (name, revision). At most one revision of a given name may be
// "implemented" within a Context at a time; any number may be merely
// imported.
type Module struct {
	Name      string
	Revision  string
	Prefix    string
	Namespace string

	Implemented bool

	Parsed   *model.ParsedModule
	Compiled *model.CompiledModule
}
