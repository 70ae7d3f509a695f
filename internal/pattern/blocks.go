package pattern

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	"github.com/coreyang/yangcore/diag"
)

// blocks maps the XML Schema "IsBlock" names this adapter recognizes to
// their Unicode code point range. XML Schema block names mirror the
// Unicode Blocks.txt names with spaces and hyphens removed, e.g.
// "IsBasicLatin", "IsCJKCompatibility". The table holds 93 blocks, from
// BasicLatin through Tags; any block name not listed here is rejected as
// unknown.
var blocks = map[string]*unicode.RangeTable{
	"BasicLatin":                          rangetable.New(runeRange(0x0000, 0x007F)...),
	"Latin-1Supplement":                   rangetable.New(runeRange(0x0080, 0x00FF)...),
	"LatinExtended-A":                     rangetable.New(runeRange(0x0100, 0x017F)...),
	"LatinExtended-B":                     rangetable.New(runeRange(0x0180, 0x024F)...),
	"IPAExtensions":                       rangetable.New(runeRange(0x0250, 0x02AF)...),
	"SpacingModifierLetters":              rangetable.New(runeRange(0x02B0, 0x02FF)...),
	"CombiningDiacriticalMarks":           rangetable.New(runeRange(0x0300, 0x036F)...),
	"Greek":                               rangetable.New(runeRange(0x0370, 0x03FF)...),
	"Cyrillic":                            rangetable.New(runeRange(0x0400, 0x04FF)...),
	"Armenian":                            rangetable.New(runeRange(0x0530, 0x058F)...),
	"Hebrew":                              rangetable.New(runeRange(0x0590, 0x05FF)...),
	"Arabic":                              rangetable.New(runeRange(0x0600, 0x06FF)...),
	"Syriac":                              rangetable.New(runeRange(0x0700, 0x074F)...),
	"Thaana":                              rangetable.New(runeRange(0x0780, 0x07BF)...),
	"Devanagari":                          rangetable.New(runeRange(0x0900, 0x097F)...),
	"Bengali":                             rangetable.New(runeRange(0x0980, 0x09FF)...),
	"Gurmukhi":                            rangetable.New(runeRange(0x0A00, 0x0A7F)...),
	"Gujarati":                            rangetable.New(runeRange(0x0A80, 0x0AFF)...),
	"Oriya":                               rangetable.New(runeRange(0x0B00, 0x0B7F)...),
	"Tamil":                               rangetable.New(runeRange(0x0B80, 0x0BFF)...),
	"Telugu":                              rangetable.New(runeRange(0x0C00, 0x0C7F)...),
	"Kannada":                             rangetable.New(runeRange(0x0C80, 0x0CFF)...),
	"Malayalam":                           rangetable.New(runeRange(0x0D00, 0x0D7F)...),
	"Sinhala":                             rangetable.New(runeRange(0x0D80, 0x0DFF)...),
	"Thai":                                rangetable.New(runeRange(0x0E00, 0x0E7F)...),
	"Lao":                                 rangetable.New(runeRange(0x0E80, 0x0EFF)...),
	"Tibetan":                             rangetable.New(runeRange(0x0F00, 0x0FFF)...),
	"Myanmar":                             rangetable.New(runeRange(0x1000, 0x109F)...),
	"Georgian":                            rangetable.New(runeRange(0x10A0, 0x10FF)...),
	"HangulJamo":                          rangetable.New(runeRange(0x1100, 0x11FF)...),
	"Ethiopic":                            rangetable.New(runeRange(0x1200, 0x137F)...),
	"Cherokee":                            rangetable.New(runeRange(0x13A0, 0x13FF)...),
	"UnifiedCanadianAboriginalSyllabics":  rangetable.New(runeRange(0x1400, 0x167F)...),
	"Ogham":                               rangetable.New(runeRange(0x1680, 0x169F)...),
	"Runic":                               rangetable.New(runeRange(0x16A0, 0x16FF)...),
	"Khmer":                               rangetable.New(runeRange(0x1780, 0x17FF)...),
	"Mongolian":                           rangetable.New(runeRange(0x1800, 0x18AF)...),
	"LatinExtendedAdditional":             rangetable.New(runeRange(0x1E00, 0x1EFF)...),
	"GreekExtended":                       rangetable.New(runeRange(0x1F00, 0x1FFF)...),
	"GeneralPunctuation":                  rangetable.New(runeRange(0x2000, 0x206F)...),
	"SuperscriptsandSubscripts":           rangetable.New(runeRange(0x2070, 0x209F)...),
	"CurrencySymbols":                     rangetable.New(runeRange(0x20A0, 0x20CF)...),
	"CombiningMarksforSymbols":            rangetable.New(runeRange(0x20D0, 0x20FF)...),
	"LetterlikeSymbols":                   rangetable.New(runeRange(0x2100, 0x214F)...),
	"NumberForms":                         rangetable.New(runeRange(0x2150, 0x218F)...),
	"Arrows":                              rangetable.New(runeRange(0x2190, 0x21FF)...),
	"MathematicalOperators":               rangetable.New(runeRange(0x2200, 0x22FF)...),
	"MiscellaneousTechnical":              rangetable.New(runeRange(0x2300, 0x23FF)...),
	"ControlPictures":                     rangetable.New(runeRange(0x2400, 0x243F)...),
	"OpticalCharacterRecognition":         rangetable.New(runeRange(0x2440, 0x245F)...),
	"EnclosedAlphanumerics":               rangetable.New(runeRange(0x2460, 0x24FF)...),
	"BoxDrawing":                          rangetable.New(runeRange(0x2500, 0x257F)...),
	"BlockElements":                       rangetable.New(runeRange(0x2580, 0x259F)...),
	"GeometricShapes":                     rangetable.New(runeRange(0x25A0, 0x25FF)...),
	"MiscellaneousSymbols":                rangetable.New(runeRange(0x2600, 0x26FF)...),
	"Dingbats":                            rangetable.New(runeRange(0x2700, 0x27BF)...),
	"BraillePatterns":                     rangetable.New(runeRange(0x2800, 0x28FF)...),
	"CJKRadicalsSupplement":               rangetable.New(runeRange(0x2E80, 0x2EFF)...),
	"KangxiRadicals":                      rangetable.New(runeRange(0x2F00, 0x2FDF)...),
	"IdeographicDescriptionCharacters":    rangetable.New(runeRange(0x2FF0, 0x2FFF)...),
	"CJKSymbolsandPunctuation":            rangetable.New(runeRange(0x3000, 0x303F)...),
	"Hiragana":                            rangetable.New(runeRange(0x3040, 0x309F)...),
	"Katakana":                            rangetable.New(runeRange(0x30A0, 0x30FF)...),
	"Bopomofo":                            rangetable.New(runeRange(0x3100, 0x312F)...),
	"HangulCompatibilityJamo":             rangetable.New(runeRange(0x3130, 0x318F)...),
	"Kanbun":                              rangetable.New(runeRange(0x3190, 0x319F)...),
	"BopomofoExtended":                    rangetable.New(runeRange(0x31A0, 0x31BF)...),
	"EnclosedCJKLettersandMonths":         rangetable.New(runeRange(0x3200, 0x32FF)...),
	"CJKCompatibility":                    rangetable.New(runeRange(0x3300, 0x33FF)...),
	"CJKUnifiedIdeographsExtensionA":      rangetable.New(runeRange(0x3400, 0x4DBF)...),
	"CJKUnifiedIdeographs":                rangetable.New(runeRange(0x4E00, 0x9FFF)...),
	"YiSyllables":                         rangetable.New(runeRange(0xA000, 0xA48F)...),
	"YiRadicals":                          rangetable.New(runeRange(0xA490, 0xA4CF)...),
	"HangulSyllables":                     rangetable.New(runeRange(0xAC00, 0xD7A3)...),
	"PrivateUse":                          rangetable.New(runeRange(0xE000, 0xF8FF)...),
	"CJKCompatibilityIdeographs":          rangetable.New(runeRange(0xF900, 0xFAFF)...),
	"AlphabeticPresentationForms":         rangetable.New(runeRange(0xFB00, 0xFB4F)...),
	"ArabicPresentationForms-A":           rangetable.New(runeRange(0xFB50, 0xFDFF)...),
	"CombiningHalfMarks":                  rangetable.New(runeRange(0xFE20, 0xFE2F)...),
	"CJKCompatibilityForms":               rangetable.New(runeRange(0xFE30, 0xFE4F)...),
	"SmallFormVariants":                   rangetable.New(runeRange(0xFE50, 0xFE6F)...),
	"ArabicPresentationForms-B":           rangetable.New(runeRange(0xFE70, 0xFEFF)...),
	"HalfwidthandFullwidthForms":          rangetable.New(runeRange(0xFF00, 0xFFEF)...),
	"Specials":                            rangetable.New(runeRange(0xFFF0, 0xFFFD)...),
	"OldItalic":                           rangetable.New(runeRange(0x10300, 0x1032F)...),
	"Gothic":                              rangetable.New(runeRange(0x10330, 0x1034F)...),
	"Deseret":                             rangetable.New(runeRange(0x10400, 0x1044F)...),
	"ByzantineMusicalSymbols":             rangetable.New(runeRange(0x1D000, 0x1D0FF)...),
	"MusicalSymbols":                      rangetable.New(runeRange(0x1D100, 0x1D1FF)...),
	"MathematicalAlphanumericSymbols":     rangetable.New(runeRange(0x1D400, 0x1D7FF)...),
	"CJKUnifiedIdeographsExtensionB":      rangetable.New(runeRange(0x20000, 0x2A6D6)...),
	"CJKCompatibilityIdeographsSupplement": rangetable.New(runeRange(0x2F800, 0x2FA1F)...),
	"Tags":                                rangetable.New(runeRange(0xE0000, 0xE007F)...),
}

// runeRange expands a closed [lo, hi] interval into the rune list New
// expects; blocks are contiguous so this is always a single interval.
func runeRange(lo, hi rune) []rune {
	rs := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		rs = append(rs, r)
	}
	return rs
}

// blockClass renders name's Unicode block as a PCRE-style bracket
// expression, e.g. "[\x{0000}-\x{007F}]".
func blockClass(name, path, raw string) (string, error) {
	const prefix = "Is"
	trimmed := strings.TrimPrefix(name, prefix)
	rt, ok := blocks[trimmed]
	if !ok {
		return "", diag.New(diag.KindSyntax, "pattern-block", path,
			"unknown Unicode block %q referenced in pattern %q", name, raw)
	}
	var b strings.Builder
	b.WriteByte('[')
	visitRanges(rt, func(lo, hi rune) {
		fmt.Fprintf(&b, `\x{%04X}-\x{%04X}`, lo, hi)
	})
	b.WriteByte(']')
	return b.String(), nil
}

// visitRanges walks rt rune by rune via rangetable.Visit and coalesces
// consecutive runes into closed [lo, hi] ranges, invoking fn once per
// contiguous run.
func visitRanges(rt *unicode.RangeTable, fn func(lo, hi rune)) {
	var lo, hi rune
	open := false
	flush := func() {
		if open {
			fn(lo, hi)
			open = false
		}
	}
	rangetable.Visit(rt, func(r rune) {
		if open && r == hi+1 {
			hi = r
			return
		}
		flush()
		lo, hi = r, r
		open = true
	})
	flush()
}
