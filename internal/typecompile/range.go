package typecompile

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/coreyang/yangcore/diag"
)

// RangePart is one closed interval of a compiled range or length
// restriction, expressed as a pair of inclusive bounds.
type RangePart struct {
	Min *big.Int
	Max *big.Int
}

// PartList is an ordered, pairwise-disjoint, ascending list of RangePart,
// plus the error-app-tag/error-message a non-matching value should report.
// A level's PartList replaces, rather than appends to, the error text of
// its base when either is provided.
type PartList struct {
	Parts        []RangePart
	ErrorAppTag  string
	ErrorMessage string
}

// bounds returns the basetype's [min,max] as big.Int, used to resolve the
// "min"/"max" literal keywords in a range expression.
func bounds(bt Basetype) (min, max *big.Int) {
	switch bt {
	case Int8:
		return big.NewInt(-128), big.NewInt(127)
	case Int16:
		return big.NewInt(-32768), big.NewInt(32767)
	case Int32:
		return big.NewInt(-2147483648), big.NewInt(2147483647)
	case Int64, Decimal64:
		return big.NewInt(-9223372036854775808), big.NewInt(9223372036854775807)
	case Uint8:
		return big.NewInt(0), big.NewInt(255)
	case Uint16:
		return big.NewInt(0), big.NewInt(65535)
	case Uint32:
		return big.NewInt(0), big.NewInt(4294967295)
	case Uint64:
		return big.NewInt(0), new(big.Int).SetUint64(18446744073709551615)
	default:
		// length restrictions (string/binary) are always non-negative and
		// the upper bound is the dialect's practical maximum.
		return big.NewInt(0), new(big.Int).SetUint64(18446744073709551615)
	}
}

// ParseRange parses a YANG range or length expression — a '|'-separated
// list of parts, each either a single value or a "lo..hi" interval — into
// an ordered, validated PartList. fractionDigits scales decimal64 literals
// that carry a single decimal point; it is ignored for every other basetype.
func ParseRange(expr, path string, bt Basetype, fractionDigits uint8) (*PartList, error) {
	rawParts := strings.Split(expr, "|")
	parts := make([]RangePart, 0, len(rawParts))
	lo, hi := bounds(bt)

	for _, raw := range rawParts {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, diag.New(diag.KindSyntax, "range-syntax", path, "empty range part in %q", expr)
		}
		var minTok, maxTok string
		if idx := strings.Index(raw, ".."); idx >= 0 {
			minTok = strings.TrimSpace(raw[:idx])
			maxTok = strings.TrimSpace(raw[idx+2:])
		} else {
			minTok, maxTok = raw, raw
		}

		minVal, err := parseBound(minTok, bt, fractionDigits, lo, hi, path, expr)
		if err != nil {
			return nil, err
		}
		maxVal, err := parseBound(maxTok, bt, fractionDigits, lo, hi, path, expr)
		if err != nil {
			return nil, err
		}
		if minVal.Cmp(maxVal) > 0 {
			return nil, diag.New(diag.KindSemantic, "range-order", path,
				"range part %q has min greater than max", raw)
		}
		parts = append(parts, RangePart{Min: minVal, Max: maxVal})
	}

	if err := checkAscending(parts, path, expr); err != nil {
		return nil, err
	}
	return &PartList{Parts: parts}, nil
}

func parseBound(tok string, bt Basetype, fractionDigits uint8, lo, hi *big.Int, path, expr string) (*big.Int, error) {
	switch tok {
	case "min":
		return new(big.Int).Set(lo), nil
	case "max":
		return new(big.Int).Set(hi), nil
	}
	if bt == Decimal64 {
		return parseDecimal64Literal(tok, fractionDigits, path, expr)
	}
	v, ok := new(big.Int).SetString(tok, 10)
	if !ok {
		return nil, diag.New(diag.KindSyntax, "range-literal", path, "invalid range literal %q in %q", tok, expr)
	}
	if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return nil, diag.New(diag.KindSemantic, "range-overflow", path,
			"range literal %q in %q is outside the type's representable bounds", tok, expr)
	}
	return v, nil
}

// parseDecimal64Literal parses a decimal literal with at most one decimal
// point, scaling it by 10^fractionDigits as §4.C specifies.
func parseDecimal64Literal(tok string, fractionDigits uint8, path, expr string) (*big.Int, error) {
	neg := strings.HasPrefix(tok, "-")
	body := strings.TrimPrefix(tok, "-")

	intPart, fracPart := body, ""
	if i := strings.IndexByte(body, '.'); i >= 0 {
		intPart, fracPart = body[:i], body[i+1:]
	}
	if len(fracPart) > int(fractionDigits) {
		return nil, diag.New(diag.KindSemantic, "range-fraction-digits", path,
			"decimal literal %q in %q carries more fraction digits than fraction-digits allows", tok, expr)
	}
	fracPart += strings.Repeat("0", int(fractionDigits)-len(fracPart))
	digits := intPart + fracPart
	if digits == "" {
		digits = "0"
	}

	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, diag.New(diag.KindSyntax, "range-literal", path, "invalid decimal literal %q in %q", tok, expr)
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}

func checkAscending(parts []RangePart, path, expr string) error {
	for i := 1; i < len(parts); i++ {
		if parts[i].Min.Cmp(parts[i-1].Max) <= 0 {
			return diag.New(diag.KindSemantic, "range-ascending", path,
				"range parts in %q are not in strict ascending, disjoint order", expr)
		}
	}
	return nil
}

// ValidateContainment checks that every part of derived lies within some
// part of base, per §4.C: a derived single value may equal a base part
// boundary, and a base single value may simply not reappear in derived.
func ValidateContainment(base, derived *PartList, path, expr string) error {
	if base == nil {
		return nil
	}
	for _, d := range derived.Parts {
		if !containedInAny(base.Parts, d) {
			return diag.New(diag.KindSemantic, "range-narrowing", path,
				"range part %s in %q is not contained within the base type's range", formatPart(d), expr)
		}
	}
	return nil
}

func containedInAny(baseParts []RangePart, d RangePart) bool {
	for _, b := range baseParts {
		if d.Min.Cmp(b.Min) >= 0 && d.Max.Cmp(b.Max) <= 0 {
			return true
		}
	}
	return false
}

func formatPart(p RangePart) string {
	if p.Min.Cmp(p.Max) == 0 {
		return p.Min.String()
	}
	return fmt.Sprintf("%s..%s", p.Min, p.Max)
}
