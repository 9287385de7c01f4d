package catalog

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	paceAnnotation = regexp.MustCompile(`\s*\([0-9]{1,2}:[0-9]{2}/mi(?:le)?\)\s*$`)
	distancePrefix = regexp.MustCompile(`(?i)^[0-9]+(?:\.[0-9]+)?[- ]?(?:miles?|mi)\b[\s-]*`)
)

// Normalize strips decorative prefixes and suffixes from a workout name so
// catalog lookup can match the underlying template: a trailing pace
// annotation like "(8:10/mi)", a leading distance prefix like "8-Mile", and
// a single leading pictographic glyph. Malformed input passes through
// unchanged; the result is a fixpoint, so re-applying is a no-op.
func Normalize(name string) string {
	prev := ""
	// Rules can expose each other (a glyph hiding a distance prefix), so
	// iterate until stable. Bounded to keep pathological input total.
	for i := 0; i < 8 && name != prev; i++ {
		prev = name
		name = normalizeOnce(name)
	}
	return name
}

func normalizeOnce(name string) string {
	name = strings.TrimSpace(name)
	name = paceAnnotation.ReplaceAllString(name, "")
	name = distancePrefix.ReplaceAllString(name, "")
	name = stripLeadingGlyph(name)
	return strings.TrimSpace(name)
}

func stripLeadingGlyph(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	if r > unicode.MaxASCII && !unicode.IsLetter(r) && !unicode.IsNumber(r) {
		rest := s[size:]
		// Variation selectors ride along with the glyph they modify.
		for {
			r2, size2 := utf8.DecodeRuneInString(rest)
			if size2 > 0 && (unicode.Is(unicode.Mn, r2) || r2 == '️') {
				rest = rest[size2:]
				continue
			}
			break
		}
		return strings.TrimLeft(rest, " \t")
	}
	return s
}
