package quizgen

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	htmlTagPattern     = regexp.MustCompile(`<[^>]*>`)
	periodRunPattern   = regexp.MustCompile(`\.{2,}`)
	punctLetterPattern = regexp.MustCompile(`([.,!?])([A-Za-z])`)

	typographyReplacer = strings.NewReplacer(
		"‘", "'", "’", "'",
		"“", `"`, "”", `"`,
		"–", "-", "—", "-",
	)
)

// Sanitize normalizes a string extracted from model output.
//
// Tags are removed first and whitespace is collapsed last so that a second
// pass finds nothing to change.
func Sanitize(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = typographyReplacer.Replace(s)
	s = stripControl(s)
	s = periodRunPattern.ReplaceAllString(s, ".")
	s = punctLetterPattern.ReplaceAllString(s, "$1 $2")
	return strings.Join(strings.Fields(s), " ")
}

// stripControl drops C0/C1 control characters, keeping whitespace ones as spaces.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if (r <= 0x1F) || (r >= 0x7F && r <= 0x9F) {
			if unicode.IsSpace(r) {
				return ' '
			}
			return -1
		}
		return r
	}, s)
}
