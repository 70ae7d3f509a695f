package yang

import "github.com/coreyang/yangcore/internal/typecompile"

var builtinBasetypes = map[string]typecompile.Basetype{
	"binary":              typecompile.Binary,
	"bits":                typecompile.Bits,
	"boolean":             typecompile.Boolean,
	"decimal64":           typecompile.Decimal64,
	"empty":               typecompile.Empty,
	"enumeration":         typecompile.Enumeration,
	"identityref":         typecompile.Identityref,
	"instance-identifier": typecompile.InstanceIdentifier,
	"leafref":             typecompile.Leafref,
	"string":              typecompile.String,
	"int8":                typecompile.Int8,
	"int16":               typecompile.Int16,
	"int32":               typecompile.Int32,
	"int64":               typecompile.Int64,
	"uint8":               typecompile.Uint8,
	"uint16":              typecompile.Uint16,
	"uint32":              typecompile.Uint32,
	"uint64":              typecompile.Uint64,
	"union":               typecompile.Union,
}

func builtinBasetype(name string) (typecompile.Basetype, bool) {
	bt, ok := builtinBasetypes[name]
	return bt, ok
}
