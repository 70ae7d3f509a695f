package typecompile

import (
	"math"
	"sort"

	"github.com/coreyang/yangcore/diag"
)

// DeclaredEnum is one source-level "enum" substatement: its name, and
// whether a "value" substatement explicitly reasserted a value.
type DeclaredEnum struct {
	Name          string
	Value         int32
	ValueExplicit bool
}

// MergeEnums builds a derived enumeration's item list. base is nil when
// deriving directly from the built-in "enumeration" type. The derived set
// must be a subset of base by name (when base is non-nil); values may be
// inherited, re-asserted identically, or auto-assigned as one past the
// previous item's value.
func MergeEnums(base []EnumItem, declared []DeclaredEnum, path string) ([]EnumItem, error) {
	if len(declared) == 0 {
		if base == nil {
			return nil, diag.New(diag.KindSemantic, "enum-empty", path,
				"a type directly derived from enumeration must declare at least one enum")
		}
		return nil, nil
	}

	byName := make(map[string]EnumItem, len(base))
	for _, e := range base {
		byName[e.Name] = e
	}

	out := make([]EnumItem, 0, len(declared))
	seen := make(map[string]bool, len(declared))
	usedValues := make(map[int32]bool, len(declared))
	var prev int32 = -1
	havePrev := false

	for _, d := range declared {
		if seen[d.Name] {
			return nil, diag.New(diag.KindSemantic, "enum-duplicate", path, "enum %q declared more than once", d.Name)
		}
		seen[d.Name] = true

		baseItem, inBase := byName[d.Name]
		if base != nil && !inBase {
			return nil, diag.New(diag.KindSemantic, "enum-not-in-base", path,
				"enum %q is not present in the base enumeration type", d.Name)
		}

		var value int32
		switch {
		case d.ValueExplicit && inBase:
			if d.Value != baseItem.Value {
				return nil, diag.New(diag.KindSemantic, "enum-renumbered", path,
					"enum %q may not change its base value from %d to %d", d.Name, baseItem.Value, d.Value)
			}
			value = d.Value
		case d.ValueExplicit:
			value = d.Value
		case inBase:
			value = baseItem.Value
		case havePrev:
			if prev == math.MaxInt32 {
				return nil, diag.New(diag.KindSemantic, "enum-overflow", path,
					"auto-assigned enum value overflows int32 after %q", d.Name)
			}
			value = prev + 1
		default:
			value = 0
		}

		if usedValues[value] {
			return nil, diag.New(diag.KindSemantic, "enum-value-duplicate", path,
				"enum %q reuses value %d already assigned in this type", d.Name, value)
		}
		usedValues[value] = true
		prev, havePrev = value, true
		out = append(out, EnumItem{Name: d.Name, Value: value})
	}
	return out, nil
}

// DeclaredBit mirrors DeclaredEnum for the "bit" substatement.
type DeclaredBit struct {
	Name             string
	Position         uint32
	PositionExplicit bool
}

// MergeBits builds a derived bits type's item list, sorted by Position
// ascending regardless of declaration order, following the same
// subset/inherit/reassert/auto-assign rules as MergeEnums.
func MergeBits(base []BitItem, declared []DeclaredBit, path string) ([]BitItem, error) {
	if len(declared) == 0 {
		if base == nil {
			return nil, diag.New(diag.KindSemantic, "bits-empty", path,
				"a type directly derived from bits must declare at least one bit")
		}
		return nil, nil
	}

	byName := make(map[string]BitItem, len(base))
	for _, b := range base {
		byName[b.Name] = b
	}

	out := make([]BitItem, 0, len(declared))
	seen := make(map[string]bool, len(declared))
	usedPositions := make(map[uint32]bool, len(declared))
	var prev uint32
	havePrev := false

	for _, d := range declared {
		if seen[d.Name] {
			return nil, diag.New(diag.KindSemantic, "bit-duplicate", path, "bit %q declared more than once", d.Name)
		}
		seen[d.Name] = true

		baseItem, inBase := byName[d.Name]
		if base != nil && !inBase {
			return nil, diag.New(diag.KindSemantic, "bit-not-in-base", path,
				"bit %q is not present in the base bits type", d.Name)
		}

		var position uint32
		switch {
		case d.PositionExplicit && inBase:
			if d.Position != baseItem.Position {
				return nil, diag.New(diag.KindSemantic, "bit-repositioned", path,
					"bit %q may not change its base position from %d to %d", d.Name, baseItem.Position, d.Position)
			}
			position = d.Position
		case d.PositionExplicit:
			position = d.Position
		case inBase:
			position = baseItem.Position
		case havePrev:
			if prev == math.MaxUint32 {
				return nil, diag.New(diag.KindSemantic, "bit-overflow", path,
					"auto-assigned bit position overflows uint32 after %q", d.Name)
			}
			position = prev + 1
		default:
			position = 0
		}

		if usedPositions[position] {
			return nil, diag.New(diag.KindSemantic, "bit-position-duplicate", path,
				"bit %q reuses position %d already assigned in this type", d.Name, position)
		}
		usedPositions[position] = true
		prev, havePrev = position, true
		out = append(out, BitItem{Name: d.Name, Position: position})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}
