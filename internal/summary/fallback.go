package summary

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	FULL_TEXT_MAX_WORDS = 20
	FIRST_N_MAX_WORDS   = 40
	FIRST_N_WORDS       = 30
	EXCERPT_HEAD_WORDS  = 20
	EXCERPT_TAIL_WORDS  = 10
)

// Excerpt is the rule-based stand-in for an AI summary.
type Excerpt struct {
	Content string
	Note    string
}

// Fallback builds an excerpt from text based on its whitespace word count.
// Content of the middle and excerpt branches is rejoined with single spaces.
func Fallback(text string) Excerpt {
	words := strings.FieldsFunc(text, isWordSeparator)
	n := len(words)

	switch {
	case n <= FULL_TEXT_MAX_WORDS:
		return Excerpt{
			Content: text,
			Note:    "Full text analyzed",
		}
	case n <= FIRST_N_MAX_WORDS:
		return Excerpt{
			Content: strings.Join(words[:min(n, FIRST_N_WORDS)], " ") + "...",
			Note:    fmt.Sprintf("Showing first %d of %d words", FIRST_N_WORDS, n),
		}
	default:
		head := strings.Join(words[:EXCERPT_HEAD_WORDS], " ")
		tail := strings.Join(words[n-EXCERPT_TAIL_WORDS:], " ")
		return Excerpt{
			Content: head + " ... " + tail,
			Note:    fmt.Sprintf("Excerpt from %d words", n),
		}
	}
}

// isWordSeparator matches the whitespace set of Python's str.split, which
// also counts the ASCII file, group, record and unit separators.
func isWordSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
