package quizgen

import (
	"regexp"
	"strings"
)

var (
	// A block starts at a line beginning with "N." or "Question:" / "Question N:".
	blockBoundary = regexp.MustCompile(`(?im)^[ \t]*(?:\d+\.(?:[ \t]|$)|question(?:[ \t]+\d+)?[ \t]*:)`)
	bareNumbering = regexp.MustCompile(`^\d+\.$`)
)

// SplitBlocks cuts raw model output into candidate question blocks.
// Text before the first marker becomes a block of its own, so a first
// question without a marker still gets parsed.
func SplitBlocks(raw string) []string {
	starts := []int{0}
	for _, loc := range blockBoundary.FindAllStringIndex(raw, -1) {
		if loc[0] > 0 {
			starts = append(starts, loc[0])
		}
	}

	blocks := make([]string, 0, len(starts))
	carry := ""
	for i, start := range starts {
		end := len(raw)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		segment := strings.TrimSpace(raw[start:end])
		if segment == "" {
			continue
		}
		// "3." alone on a line belongs to the question that follows it.
		if bareNumbering.MatchString(segment) {
			carry = segment + "\n"
			continue
		}
		blocks = append(blocks, carry+segment)
		carry = ""
	}
	return blocks
}
