// Package typecompile walks typedef chains and merges their range,
// length, pattern, enum, and bit restrictions into immutable,
// refcounted compiled types.
package typecompile

import (
	"sync"

	"github.com/coreyang/yangcore/internal/pattern"
)

// Basetype discriminates a CompiledType's payload.
type Basetype int

const (
	Unknown Basetype = iota
	Binary
	Bits
	Boolean
	Decimal64
	Empty
	Enumeration
	Identityref
	InstanceIdentifier
	Leafref
	String
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Union
)

var basetypeNames = map[Basetype]string{
	Unknown:            "unknown",
	Binary:             "binary",
	Bits:               "bits",
	Boolean:            "boolean",
	Decimal64:          "decimal64",
	Empty:              "empty",
	Enumeration:        "enumeration",
	Identityref:        "identityref",
	InstanceIdentifier: "instance-identifier",
	Leafref:            "leafref",
	String:             "string",
	Int8:               "int8",
	Int16:              "int16",
	Int32:              "int32",
	Int64:              "int64",
	Uint8:              "uint8",
	Uint16:             "uint16",
	Uint32:             "uint32",
	Uint64:             "uint64",
	Union:              "union",
}

// String renders b as its YANG built-in type name.
func (b Basetype) String() string {
	if name, ok := basetypeNames[b]; ok {
		return name
	}
	return "unknown"
}

// IsSigned reports whether b is one of the signed integer basetypes.
func (b Basetype) IsSigned() bool {
	switch b {
	case Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether b is one of the unsigned integer basetypes.
func (b Basetype) IsUnsigned() bool {
	switch b {
	case Uint8, Uint16, Uint32, Uint64:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether b accepts a range restriction.
func (b Basetype) IsNumeric() bool {
	return b.IsSigned() || b.IsUnsigned() || b == Decimal64
}

// EnumItem is one named member of an enumeration type, with its
// (possibly auto-assigned) value.
type EnumItem struct {
	Name  string
	Value int32
}

// BitItem is one named member of a bits type, with its (possibly
// auto-assigned) position. A type's Bits slice is always stored sorted by
// Position ascending, regardless of declaration order.
type BitItem struct {
	Name     string
	Position uint32
}

// CompiledType is an immutable, refcounted compiled YANG type. Once built
// its fields never change; derivation that adds no restriction shares the
// same *CompiledType (via Retain) rather than copying it.
type CompiledType struct {
	mu   sync.Mutex
	refs int

	Basetype Basetype

	// Range holds the range restriction of a numeric (integer or
	// decimal64) type; it is nil for every other basetype.
	Range *PartList
	// Length holds the length restriction of a string or binary type.
	Length *PartList

	// Patterns holds the ordered, refcounted pattern list for string
	// types: inherited patterns (shared) followed by newly declared ones.
	Patterns []*pattern.Handle

	Enums []EnumItem
	Bits  []BitItem

	// FractionDigits is fixed at the point a decimal64 type is declared
	// and is part of its identity: it cannot be overridden by derivation.
	FractionDigits uint8

	// Union holds a union type's member types, each independently
	// refcounted.
	Union []*CompiledType

	// Base is the compiled type this one derives from, retained for as
	// long as this type exists. Nil for a built-in type with no derivation.
	Base *CompiledType
}

// NewBuiltin returns a fresh, unrestricted compiled type for one of the
// nineteen YANG built-in basetypes, with refcount 1.
func NewBuiltin(bt Basetype) *CompiledType {
	return &CompiledType{Basetype: bt, refs: 1}
}

// Retain increments t's reference count and returns t, so a chain step
// that aliases its base can write `slot = base.Retain()`.
func (t *CompiledType) Retain() *CompiledType {
	t.mu.Lock()
	t.refs++
	t.mu.Unlock()
	return t
}

// Release decrements t's reference count, releasing t's own retained
// Base, Union members, and Patterns once the count reaches zero.
func (t *CompiledType) Release() {
	t.mu.Lock()
	t.refs--
	dead := t.refs == 0
	t.mu.Unlock()
	if !dead {
		return
	}
	if t.Base != nil {
		t.Base.Release()
	}
	for _, m := range t.Union {
		m.Release()
	}
	for _, p := range t.Patterns {
		p.Release()
	}
}

// RefCount reports t's current reference count, for tests.
func (t *CompiledType) RefCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refs
}
