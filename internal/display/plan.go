package display

import (
	"fmt"
	"strings"

	"github.com/sverev/led/internal/buffer"
)

// Markers painted in the gutter past the end of the buffer. The
// truncation marker follows the vim convention: when the next line's
// wrapped rows do not all fit in the remaining budget, none of them are
// shown and the leftover rows display '@'.
const (
	emptyMarker     = "~"
	truncatedMarker = "@"
)

// Row is one screen row of the plan: the exact gutter cells (painted in
// reverse video) and the text segment that follows them. Line is the
// 0-based logical line the segment belongs to, or -1 for out-of-buffer
// marker rows; Continuation marks wrapped segments after the first.
type Row struct {
	Gutter       string
	Text         string
	Line         int
	Continuation bool
}

// Plan is everything the terminal backend needs to paint one frame of
// the text area.
type Plan struct {
	Rows        []Row
	Cursor      Cell
	GutterWidth int
	Top         int
}

// gutterWidth reserves room for the largest line number plus one
// separator cell, with a floor of three digits.
func gutterWidth(lineCount int) int {
	digits := len(fmt.Sprintf("%d", lineCount))
	if digits < 3 {
		digits = 3
	}
	return digits + 1
}

// Build computes the render plan for a text area of width x height
// cells: scrolls the viewport so the cursor is visible, wraps lines from
// the top emitting one row per display segment, pads the remainder with
// markers and maps the cursor to its screen cell.
func Build(buf *buffer.Buffer, vp *Viewport, cursor buffer.Position, width, height int) (Plan, error) {
	gw := gutterWidth(buf.LineCount())
	textWidth := width - gw
	if textWidth < 1 {
		textWidth = 1
	}

	vp.ScrollTo(buf, cursor.Row, textWidth, height)

	plan := Plan{Rows: make([]Row, 0, height), GutterWidth: gw, Top: vp.Top}
	trailing := emptyMarker
	for lineNum := vp.Top; lineNum < buf.LineCount(); lineNum++ {
		remaining := height - len(plan.Rows)
		if remaining == 0 {
			break
		}
		wrapped := WrapExpanded(buf.Line(lineNum), textWidth)
		if len(wrapped) > remaining {
			trailing = truncatedMarker
			break
		}
		for n, seg := range wrapped {
			row := Row{Text: seg, Line: lineNum, Continuation: n > 0}
			if n == 0 {
				row.Gutter = rightJustify(fmt.Sprintf("%d ", lineNum+1), gw)
			} else {
				row.Gutter = strings.Repeat(" ", gw)
			}
			plan.Rows = append(plan.Rows, row)
		}
	}
	for len(plan.Rows) < height {
		plan.Rows = append(plan.Rows, Row{
			Gutter: leftJustify(trailing, gw),
			Line:   -1,
		})
	}

	cell, err := CursorCell(buf, cursor, vp.Top, textWidth, gw, height)
	if err != nil {
		return Plan{}, err
	}
	plan.Cursor = cell
	return plan, nil
}

func rightJustify(s string, width int) string {
	if pad := width - len(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

func leftJustify(s string, width int) string {
	if pad := width - len(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
