package display

import (
	"unicode"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"
)

// LineWidth is the column player output wraps at. Classic 80-column
// clients keep two columns spare so wrapped lines never touch the right
// edge of the screen.
const LineWidth = 78

// Wrap word-wraps text at the engine's line width.
func Wrap(text string) string {
	return WrapTo(text, LineWidth)
}

// WrapTo word-wraps text at an arbitrary width. A width of zero or less
// disables wrapping, for clients that negotiate their own.
func WrapTo(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// Capitalize uppercases the first rune of s. Entity names come out of
// asset files lowercased, so this is applied wherever a name labels a
// player or starts a sentence.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
