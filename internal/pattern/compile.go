package pattern

import (
	"regexp"
	"strings"

	"github.com/coreyang/yangcore/diag"
)

// invertedMarker is the historical source marker (0x15, NAK) that some
// YANG tooling writes before a pattern's text to flag inverted match
// semantics (modifier "invert-match").
const invertedMarker = '\x15'

// Compile translates raw (an XML-Schema dialect pattern, optionally
// prefixed with invertedMarker) and compiles it into a ready-to-use
// Handle. errAppTag and errMessage are attached to the handle for reuse
// in the diagnostic a non-match later produces.
func Compile(raw, path, errAppTag, errMessage string) (*Handle, error) {
	inverted := false
	text := raw
	if strings.HasPrefix(text, string(invertedMarker)) {
		inverted = true
		text = text[1:]
	}

	rewritten, err := translate(text, path)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(rewritten)
	if err != nil {
		return nil, diag.New(diag.KindSyntax, "pattern-compile", path,
			"pattern %q does not compile: %s", raw, err)
	}

	return &Handle{
		refs:         1,
		source:       raw,
		re:           re,
		Inverted:     inverted,
		ErrorAppTag:  errAppTag,
		ErrorMessage: errMessage,
	}, nil
}
