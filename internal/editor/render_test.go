package editor

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func rowText(cells []tcell.SimCell, w, y int) string {
	runes := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		cell := cells[y*w+x]
		if len(cell.Runes) == 0 {
			runes = append(runes, ' ')
			continue
		}
		runes = append(runes, cell.Runes[0])
	}
	return string(runes)
}

func TestRenderGutterAndText(t *testing.T) {
	e := newTestEditor("hello\nworld")
	s := newSimScreen(t, 20, 5)

	e.Render(s)
	cells, w, _ := s.GetContents()
	if got := rowText(cells, w, 0); got[:4] != "  1 " {
		t.Fatalf("row 0 gutter = %q", got[:4])
	}
	if got := rowText(cells, w, 0); got[4:9] != "hello" {
		t.Fatalf("row 0 text = %q", got[4:9])
	}
	if got := rowText(cells, w, 1); got[4:9] != "world" {
		t.Fatalf("row 1 text = %q", got[4:9])
	}
	// rows past the buffer show the empty marker
	if got := rowText(cells, w, 2); got[0] != '~' {
		t.Fatalf("row 2 gutter = %q, want ~", got[0])
	}
}

func TestRenderGutterStyleDiffers(t *testing.T) {
	e := newTestEditor("abc")
	s := newSimScreen(t, 20, 5)

	e.Render(s)
	cells, w, _ := s.GetContents()
	gutterStyle := cells[0].Style
	textStyle := cells[4].Style
	_, bgGutter, _ := gutterStyle.Decompose()
	_, bgText, _ := textStyle.Decompose()
	if bgGutter == bgText {
		t.Fatalf("gutter background not applied")
	}
	_ = w
}

func TestRenderWrappedLineContinuation(t *testing.T) {
	// 12 text cells per row at width 16
	e := newTestEditor("abcdefghijklmnop")
	s := newSimScreen(t, 16, 5)

	e.Render(s)
	cells, w, _ := s.GetContents()
	if got := rowText(cells, w, 0); got != "  1 abcdefghijkl" {
		t.Fatalf("row 0 = %q", got)
	}
	if got := rowText(cells, w, 1); got != "    mnop        " {
		t.Fatalf("row 1 = %q", got)
	}
}

func TestRenderCursorPlacement(t *testing.T) {
	e := newTestEditor("hello\nworld")
	pressRune(e, 'j')
	pressRune(e, 'l')
	s := newSimScreen(t, 20, 5)

	e.Render(s)
	x, y, visible := s.GetCursor()
	if !visible {
		t.Fatalf("cursor not visible")
	}
	if x != 5 || y != 1 {
		t.Fatalf("cursor = (%d, %d), want (5, 1)", x, y)
	}
}

func TestRenderCursorAfterTab(t *testing.T) {
	e := newTestEditor("\tz")
	pressRune(e, 'l')
	s := newSimScreen(t, 20, 5)

	e.Render(s)
	x, y, visible := s.GetCursor()
	if !visible {
		t.Fatalf("cursor not visible")
	}
	// the tab before the cursor paints as a four-cell marker
	if x != 8 || y != 0 {
		t.Fatalf("cursor = (%d, %d), want (8, 0)", x, y)
	}
}

func TestRenderStatusline(t *testing.T) {
	e := newTestEditor("abc")
	s := newSimScreen(t, 30, 5)

	e.Render(s)
	cells, w, h := s.GetContents()
	status := rowText(cells, w, h-1)
	if status[:6] != "NORMAL" {
		t.Fatalf("status = %q", status)
	}
	if status[w-7:] != "LN 1:1 " {
		t.Fatalf("status right = %q", status)
	}
}

func TestRenderStatuslineInsertMode(t *testing.T) {
	e := newTestEditor("abc")
	pressRune(e, 'i')
	s := newSimScreen(t, 30, 5)

	e.Render(s)
	cells, w, h := s.GetContents()
	status := rowText(cells, w, h-1)
	if status[:6] != "INSERT" {
		t.Fatalf("status = %q", status)
	}
}

func TestRenderScrollsToCursor(t *testing.T) {
	e := newTestEditor("a\nb\nc\nd\ne\nf\ng\nh")
	for i := 0; i < 7; i++ {
		pressRune(e, 'j')
	}
	s := newSimScreen(t, 20, 5) // 4 text rows + status

	e.Render(s)
	if e.ScrollTop() != 4 {
		t.Fatalf("scroll top = %d, want 4", e.ScrollTop())
	}
	cells, w, _ := s.GetContents()
	if got := rowText(cells, w, 0); got[:4] != "  5 " {
		t.Fatalf("row 0 gutter = %q", got[:4])
	}
	_, y, _ := s.GetCursor()
	if y != 3 {
		t.Fatalf("cursor y = %d, want 3", y)
	}
}
