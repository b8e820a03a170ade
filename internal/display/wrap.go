// Package display maps buffer positions to screen cells: line wrapping,
// non-printable expansion, viewport scrolling and the per-frame render
// plan. Everything here is a pure function of the buffer snapshot and
// the current geometry.
package display

import (
	"fmt"
	"strings"
)

// tabMarker is the fixed expansion of a tab character; columns are
// computed against expanded text, so its width matters, not its glyphs.
const tabMarker = "->  "

// Wrap splits line into consecutive chunks of at most width units.
// An empty line still yields one empty segment so it occupies a display
// row. width must be >= 1.
func Wrap(line string, width int) []string {
	runes := []rune(line)
	if len(runes) == 0 {
		return []string{""}
	}
	segs := make([]string, 0, (len(runes)+width-1)/width)
	for i := 0; i < len(runes); i += width {
		end := i + width
		if end > len(runes) {
			end = len(runes)
		}
		segs = append(segs, string(runes[i:end]))
	}
	return segs
}

// ExpandNonPrinting replaces units that have no printable cell with
// multi-cell markers: tab becomes tabMarker, any unit outside printable
// ASCII becomes "<hex>". Printable ASCII passes through unchanged.
func ExpandNonPrinting(text string) string {
	var sb strings.Builder
	for _, r := range text {
		switch {
		case r == '\t':
			sb.WriteString(tabMarker)
		case r < 32 || r > 126:
			fmt.Fprintf(&sb, "<%x>", r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// WrapExpanded wraps a line as it will be painted, with non-printable
// units already expanded. Cursor arithmetic on lines containing such
// units must use the expanded text too, never the raw line.
func WrapExpanded(line string, width int) []string {
	return Wrap(ExpandNonPrinting(line), width)
}

// wrappedRowCount reports how many display rows a logical line occupies.
func wrappedRowCount(line string, width int) int {
	return len(WrapExpanded(line, width))
}
