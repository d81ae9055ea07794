package changelog

import (
	"fmt"
	"strings"
)

// Render returns the entry block exactly as it is inserted into the changelog:
//
//	"\n## v1.2.4 (2024-01-15)\n- Minor update, auto-version bump for release\n"
func (e Entry) Render() string {
	return fmt.Sprintf("\n## %s (%s)\n- %s\n", e.Version, e.Date, e.Description)
}

// InsertAfterHeading inserts block directly after the first occurrence of
// heading followed by a newline. Later occurrences are left alone.
// When the heading is absent text is returned unchanged and the bool is false.
func InsertAfterHeading(text, heading, block string) (string, bool) {
	line := headingLine(heading)

	idx := strings.Index(text, line)
	if idx < 0 {
		return text, false
	}

	cut := idx + len(line)
	var b strings.Builder
	b.Grow(len(text) + len(block))
	b.WriteString(text[:cut])
	b.WriteString(block)
	b.WriteString(text[cut:])
	return b.String(), true
}

// headingLine returns heading terminated by exactly one newline.
func headingLine(heading string) string {
	return strings.TrimRight(heading, "\n") + "\n"
}
