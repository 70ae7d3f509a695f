package typecompile

// restrictionKind enumerates the substatements a leaf's or typedef's
// "type" statement may carry.
type restrictionKind int

const (
	kindRange restrictionKind = iota
	kindLength
	kindPattern
	kindEnum
	kindBit
	kindFractionDigits
	kindUnion
)

// allowed maps each basetype to the restriction substatements §4.C
// permits on it. A restriction kind declared against a basetype missing
// from its set is a validation error.
var allowed = map[Basetype]map[restrictionKind]bool{
	Int8:               {kindRange: true},
	Int16:              {kindRange: true},
	Int32:              {kindRange: true},
	Int64:              {kindRange: true},
	Uint8:              {kindRange: true},
	Uint16:             {kindRange: true},
	Uint32:             {kindRange: true},
	Uint64:             {kindRange: true},
	Decimal64:          {kindRange: true, kindFractionDigits: true},
	String:             {kindLength: true, kindPattern: true},
	Binary:             {kindLength: true},
	Enumeration:        {kindEnum: true},
	Bits:               {kindBit: true},
	Union:              {kindUnion: true},
	Boolean:            {},
	Empty:              {},
	Leafref:            {},
	InstanceIdentifier: {},
	Identityref:        {},
}

func permits(bt Basetype, k restrictionKind) bool {
	set, ok := allowed[bt]
	if !ok {
		return false
	}
	return set[k]
}
