// Package textwidth provides grapheme-aware width helpers for terminal
// rendering. Go strings index bytes and lipgloss measures cells, so any
// code that trims user text for display needs to walk grapheme clusters:
// emoji, CJK, and combining marks all break naive len()-based math.
package textwidth

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// GraphemeCount returns the number of user-perceived characters in s.
// A family emoji or a combining-mark sequence counts as one.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Width returns the display width of s in terminal cells. East Asian
// wide characters and most emoji occupy two cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to fit within maxWidth cells, appending tail when
// anything was cut. The cut always lands on a grapheme boundary, so a
// flag emoji is dropped whole rather than split into garbage bytes.
func Truncate(s string, maxWidth int, tail string) string {
	if maxWidth <= 0 {
		return ""
	}
	if Width(s) <= maxWidth {
		return s
	}

	budget := maxWidth - Width(tail)
	if budget < 0 {
		// The tail alone does not fit, so cut the tail instead.
		return Truncate(tail, maxWidth, "")
	}

	var b strings.Builder
	used := 0
	state := -1
	remaining := s
	for len(remaining) > 0 {
		cluster, rest, _, nextState := uniseg.StepString(remaining, state)
		w := runewidth.StringWidth(cluster)
		if used+w > budget {
			break
		}
		b.WriteString(cluster)
		used += w
		remaining = rest
		state = nextState
	}
	return b.String() + tail
}

// TruncateLeft shortens s to fit within maxWidth cells by cutting from
// the front, prepending prefix when anything was cut. Paths read from
// the right, so the status bar keeps their tails.
func TruncateLeft(s string, maxWidth int, prefix string) string {
	if maxWidth <= 0 {
		return ""
	}
	if Width(s) <= maxWidth {
		return s
	}

	budget := maxWidth - Width(prefix)
	if budget < 0 {
		return Truncate(prefix, maxWidth, "")
	}

	clusters := splitClusters(s)
	used := 0
	start := len(clusters)
	for i := len(clusters) - 1; i >= 0; i-- {
		w := runewidth.StringWidth(clusters[i])
		if used+w > budget {
			break
		}
		used += w
		start = i
	}
	return prefix + strings.Join(clusters[start:], "")
}

func splitClusters(s string) []string {
	var clusters []string
	state := -1
	for len(s) > 0 {
		cluster, rest, _, nextState := uniseg.StepString(s, state)
		clusters = append(clusters, cluster)
		s = rest
		state = nextState
	}
	return clusters
}

// PadRight extends s with spaces to exactly width cells, truncating
// first if s is already too wide. Columns in the transcript rely on
// this producing uniform cell counts regardless of content.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if w := Width(s); w > width {
		s = Truncate(s, width, "")
	}
	if pad := width - Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
