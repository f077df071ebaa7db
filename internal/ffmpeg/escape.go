package ffmpeg

import (
	"strings"

	"github.com/alessio/shellescape"
)

// Characters with syntactic meaning inside a drawtext option value.
var textEscaper = strings.NewReplacer(
	`'`, `\'`,
	`:`, `\:`,
	`[`, `\[`,
	`]`, `\]`,
	`,`, `\,`,
)

// Backslash is replaced before the apostrophe so the escapes added for
// apostrophes are not doubled.
var filterPathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
)

// EscapeText backslash-escapes apostrophes, colons, square brackets, and
// commas for use as a drawtext text value. Every other character is kept.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// ShellQuote quotes s for a POSIX shell. Strings made only of safe characters
// are returned unchanged; anything else is wrapped in single quotes.
func ShellQuote(s string) string {
	return shellescape.Quote(s)
}

// EscapeFilterPath escapes backslashes and apostrophes for the filter-graph
// language.
func EscapeFilterPath(s string) string {
	return filterPathEscaper.Replace(s)
}

// EscapeFontPath applies both passes to a font path: shell quoting first,
// then filter-graph escaping of the quoted result.
func EscapeFontPath(path string) string {
	return EscapeFilterPath(ShellQuote(path))
}

// QuoteCommand renders argv as a copy-pasteable shell command line.
func QuoteCommand(argv []string) string {
	return shellescape.QuoteCommand(argv)
}
