package display

import "github.com/sverev/led/internal/buffer"

// Viewport tracks the topmost logical line considered for display.
type Viewport struct {
	Top int
}

// MinimalTop returns the smallest line index top such that wrapping
// lines top..targetRow fits within availableRows. It extends upward one
// line at a time from targetRow and stops at line 0 or when one more
// line would overflow. When targetRow alone wraps to more rows than
// availableRows the result is targetRow itself.
func MinimalTop(buf *buffer.Buffer, targetRow, width, availableRows int) int {
	top, next := targetRow, targetRow
	rows := wrappedRowCount(buf.Line(targetRow), width)
	for next >= 0 && rows <= availableRows {
		top = next
		next--
		if next >= 0 {
			rows += wrappedRowCount(buf.Line(next), width)
		}
	}
	return top
}

// ScrollTo adjusts Top with minimal motion so cursorRow is fully
// visible: up to cursorRow when it is above the viewport, down to
// MinimalTop when it is below, otherwise unchanged. Deliberately not a
// recentre.
func (v *Viewport) ScrollTo(buf *buffer.Buffer, cursorRow, width, availableRows int) {
	lowest := MinimalTop(buf, cursorRow, width, availableRows)
	if cursorRow < v.Top {
		v.Top = cursorRow
	} else if v.Top < lowest {
		v.Top = lowest
	}
}
