package model

import "github.com/coreyang/yangcore/internal/dict"

// Identity is a compiled YANG identity: its name, the identities it
// derives from, and the identities that derive from it. Derived is
// populated in a deferred pass after every identity in a module's
// dependency closure exists, since an identity's base may be declared
// later in the same module or in an imported one. Name is interned the
// same way Node.Name is, per §3's dictionary invariant.
type Identity struct {
	Name    *dict.Handle
	Base    []*Identity
	Derived []*Identity
}

// LinkDerived appends id to the Derived list of every identity in
// id.Base. Called once per identity after all identities in the
// compilation unit exist, per §4.E's "deferred derived-link resolution".
func LinkDerived(id *Identity) {
	for _, base := range id.Base {
		base.Derived = append(base.Derived, id)
	}
}

// DerivedOf returns the transitive closure of identities that derive
// from root, directly or indirectly, with no duplicates.
func DerivedOf(root *Identity) []*Identity {
	seen := make(map[*Identity]bool)
	var out []*Identity
	var walk func(*Identity)
	walk = func(id *Identity) {
		for _, d := range id.Derived {
			if seen[d] {
				continue
			}
			seen[d] = true
			out = append(out, d)
			walk(d)
		}
	}
	walk(root)
	return out
}
