package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/sverev/led/internal/buffer"
)

func bufferOfLines(lines ...string) *buffer.Buffer {
	return buffer.New(strings.Join(lines, "\n"))
}

func TestMinimalTopUnwrappedLines(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "line"
	}
	buf := bufferOfLines(lines...)
	// each line is one display row, so 5 rows reach back to line 15
	require.Equal(t, 15, MinimalTop(buf, 19, 80, 5))
	require.Equal(t, 0, MinimalTop(buf, 3, 80, 5))
	require.Equal(t, 19, MinimalTop(buf, 19, 80, 1))
}

func TestMinimalTopWrappedLines(t *testing.T) {
	// 10-unit lines at width 4 wrap to 3 rows each
	buf := bufferOfLines("aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc")
	require.Equal(t, 2, MinimalTop(buf, 2, 4, 3))
	require.Equal(t, 2, MinimalTop(buf, 2, 4, 5))
	require.Equal(t, 1, MinimalTop(buf, 2, 4, 6))
	require.Equal(t, 0, MinimalTop(buf, 2, 4, 9))
}

func TestMinimalTopOversizedLine(t *testing.T) {
	// a line that alone exceeds the budget still anchors the viewport
	buf := bufferOfLines("short", strings.Repeat("x", 50))
	require.Equal(t, 1, MinimalTop(buf, 1, 4, 3))
}

func wrappedRowsBetween(buf *buffer.Buffer, top, bottom, width int) int {
	rows := 0
	for r := top; r <= bottom; r++ {
		rows += wrappedRowCount(buf.Line(r), width)
	}
	return rows
}

func TestMinimalTopTightnessProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lines := rapid.SliceOfN(
			rapid.StringMatching("[a-z\t]{0,30}"), 1, 40,
		).Draw(rt, "lines")
		buf := bufferOfLines(lines...)
		width := rapid.IntRange(1, 10).Draw(rt, "width")
		rows := rapid.IntRange(1, 15).Draw(rt, "rows")
		target := rapid.IntRange(0, buf.LineCount()-1).Draw(rt, "target")

		top := MinimalTop(buf, target, width, rows)
		if top < 0 || top > target {
			rt.Fatalf("top %d out of [0, %d]", top, target)
		}
		got := wrappedRowsBetween(buf, top, target, width)
		if top < target && got > rows {
			rt.Fatalf("[%d, %d] needs %d rows, budget %d", top, target, got, rows)
		}
		if top > 0 {
			wider := wrappedRowsBetween(buf, top-1, target, width)
			if wider <= rows {
				rt.Fatalf("top %d not tight: [%d, %d] fits in %d rows", top, top-1, target, rows)
			}
		}
	})
}

func TestScrollToUp(t *testing.T) {
	buf := bufferOfLines("a", "b", "c", "d", "e")
	vp := Viewport{Top: 3}
	vp.ScrollTo(buf, 1, 80, 3)
	require.Equal(t, 1, vp.Top)
}

func TestScrollToDown(t *testing.T) {
	buf := bufferOfLines("a", "b", "c", "d", "e")
	vp := Viewport{Top: 0}
	vp.ScrollTo(buf, 4, 80, 3)
	require.Equal(t, 2, vp.Top)
}

func TestScrollToNoMotion(t *testing.T) {
	buf := bufferOfLines("a", "b", "c", "d", "e")
	vp := Viewport{Top: 1}
	vp.ScrollTo(buf, 2, 80, 3)
	require.Equal(t, 1, vp.Top)
}

func TestScrollToWrappedLines(t *testing.T) {
	// scrolling down over wrapped lines skips whole logical lines
	buf := bufferOfLines("aaaaaaaa", "bbbbbbbb", "c")
	vp := Viewport{Top: 0}
	vp.ScrollTo(buf, 2, 4, 3)
	require.Equal(t, 1, vp.Top)
}
