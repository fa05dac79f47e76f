// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"

	"github.com/parleychat/parley/internal/ui/shared/textwidth"
)

// Truncate shortens a plain string to maxWidth cells with a "..." tail.
// Call it before styling: ANSI escape bytes would be counted as width.
func Truncate(s string, maxWidth int) string {
	return textwidth.Truncate(s, maxWidth, "...")
}

// FormatTagCount renders the status bar tag counter.
func FormatTagCount(count int) string {
	if count == 1 {
		return "1 tag"
	}
	return fmt.Sprintf("%d tags", count)
}
