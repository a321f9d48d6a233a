package segmenter

import (
	"regexp"
	"strings"
)

var (
	reBracketed   = regexp.MustCompile(`\[.*?\]`)
	reParenthetic = regexp.MustCompile(`\(.*?\)`)
	reMultiSpace  = regexp.MustCompile(`\s+`)
)

// Clean strips bracketed and parenthetical annotations ([music],
// (laughs), speaker cues) from caption text and normalizes whitespace.
// Removal is non-greedy and non-nested: the first closing delimiter
// terminates a span.
func Clean(text string) string {
	text = reBracketed.ReplaceAllString(text, "")
	text = reParenthetic.ReplaceAllString(text, "")
	text = reMultiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
