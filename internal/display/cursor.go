package display

import (
	"errors"
	"fmt"

	"github.com/sverev/led/internal/buffer"
)

// ErrInconsistentViewport reports that the cursor row cannot be located
// among the rendered rows. The scroller must run before the mapper; this
// error is a caller ordering bug, not a recoverable condition, and the
// frame should be aborted rather than painted with a wrong cursor.
var ErrInconsistentViewport = errors.New("inconsistent viewport")

// Cell is an absolute screen position. X includes the gutter offset.
type Cell struct {
	X int
	Y int
}

// CursorCell maps a logical position to the screen cell the cursor
// should occupy. Columns are measured against the expanded prefix of the
// cursor's line, so tabs and control characters before the cursor shift
// it by their marker widths. width is the text wrap width, gutterWidth
// the cells reserved on the left, and the viewport must already be
// scrolled so pos is within availableRows.
func CursorCell(buf *buffer.Buffer, pos buffer.Position, top, width, gutterWidth, availableRows int) (Cell, error) {
	if pos.Row < top {
		return Cell{}, fmt.Errorf("%w: row %d above top %d", ErrInconsistentViewport, pos.Row, top)
	}
	rows := 0
	for r := top; r < pos.Row; r++ {
		rows += wrappedRowCount(buf.Line(r), width)
	}
	line := []rune(buf.Line(pos.Row))
	prefix := len([]rune(ExpandNonPrinting(string(line[:pos.Col]))))
	y := rows + prefix/width
	if y >= availableRows {
		return Cell{}, fmt.Errorf("%w: row %d maps to screen row %d of %d",
			ErrInconsistentViewport, pos.Row, y, availableRows)
	}
	return Cell{X: gutterWidth + prefix%width, Y: y}, nil
}
