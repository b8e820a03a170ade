// Package buffer holds the editable text model: an ordered sequence of
// lines with a single range-replace mutation primitive. It knows nothing
// about display geometry.
package buffer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPosition reports a row or column outside the buffer.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrInvalidRange reports a range whose end precedes its start.
	ErrInvalidRange = errors.New("invalid range")
)

// Position is a point between characters. Row and Col are 0-based;
// Col == len(line) addresses the slot after the last character.
type Position struct {
	Row int
	Col int
}

// Buffer is line and row oriented and always holds at least one line.
// A buffer built from empty text is a single empty line.
type Buffer struct {
	lines [][]rune
}

// New creates a Buffer from text, splitting on newlines.
func New(text string) *Buffer {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return &Buffer{lines: lines}
}

// Lines returns a copy of the buffer contents, one string per line.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// Line returns the contents of a single row. The row must be valid.
func (b *Buffer) Line(row int) string {
	return string(b.lines[row])
}

// LineCount reports the number of lines; always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineLen reports the number of units on a row. The row must be valid.
func (b *Buffer) LineLen(row int) int {
	return len(b.lines[row])
}

// checkPosition validates that p is a point within the buffer.
func (b *Buffer) checkPosition(p Position) error {
	if p.Row < 0 || p.Row >= len(b.lines) {
		return fmt.Errorf("%w: row %d", ErrInvalidPosition, p.Row)
	}
	if p.Col < 0 || p.Col > len(b.lines[p.Row]) {
		return fmt.Errorf("%w: col %d", ErrInvalidPosition, p.Col)
	}
	return nil
}

// ReplaceRange sets the text of the half-open span start..end. The end is
// exclusive, so start == end inserts without removing anything and an
// empty text deletes the span. The replacement may contain newlines; the
// affected rows are re-split and substituted in place.
func (b *Buffer) ReplaceRange(start, end Position, text string) error {
	if err := b.checkPosition(start); err != nil {
		return err
	}
	if err := b.checkPosition(end); err != nil {
		return err
	}
	if end.Row < start.Row || (end.Row == start.Row && end.Col < start.Col) {
		return fmt.Errorf("%w: end %d:%d before start %d:%d",
			ErrInvalidRange, end.Row, end.Col, start.Row, start.Col)
	}

	prefix := string(b.lines[start.Row][:start.Col])
	suffix := string(b.lines[end.Row][end.Col:])
	parts := strings.Split(prefix+text+suffix, "\n")
	replacement := make([][]rune, len(parts))
	for i, p := range parts {
		replacement[i] = []rune(p)
	}

	lines := make([][]rune, 0, len(b.lines)-(end.Row-start.Row+1)+len(replacement))
	lines = append(lines, b.lines[:start.Row]...)
	lines = append(lines, replacement...)
	lines = append(lines, b.lines[end.Row+1:]...)
	b.lines = lines
	return nil
}
