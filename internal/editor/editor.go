// Package editor is the modal shell around the text core: it turns key
// events into ReplaceRange calls on the buffer, keeps the cursor
// clamped, and paints the display plan onto a tcell screen.
package editor

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/sverev/led/internal/buffer"
	"github.com/sverev/led/internal/config"
	"github.com/sverev/led/internal/display"
	"github.com/sverev/led/internal/logger"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
)

const (
	actionQuit        = "quit"
	actionMoveLeft    = "move_left"
	actionMoveRight   = "move_right"
	actionMoveUp      = "move_up"
	actionMoveDown    = "move_down"
	actionLineStart   = "line_start"
	actionLineEnd     = "line_end"
	actionDeleteChar  = "delete_char"
	actionEnterInsert = "enter_insert"
	actionAppend      = "append"
	actionOpenBelow   = "open_below"
	actionOpenAbove   = "open_above"
	actionWrite       = "write"
	actionEnterNormal = "enter_normal"
	actionBackspace   = "backspace"
	actionNewline     = "newline"
	actionInsertTab   = "insert_tab"
)

type keymapSet struct {
	normal map[string]string
	insert map[string]string
}

type Editor struct {
	buf             *buffer.Buffer
	cursor          buffer.Position
	viewport        display.Viewport
	mode            Mode
	filename        string
	message         string
	keymap          keymapSet
	gitBranch       string
	gitBranchSymbol string
	styleMain       tcell.Style
	styleStatus     tcell.Style
	styleGutter     tcell.Style
}

func New(cfg config.Config) *Editor {
	normal := make(map[string]string, len(cfg.Keymap.Normal))
	for k, v := range cfg.Keymap.Normal {
		normal[k] = v
	}
	insert := make(map[string]string, len(cfg.Keymap.Insert))
	for k, v := range cfg.Keymap.Insert {
		insert[k] = v
	}
	mainFg := parseColor(cfg.Theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(cfg.Theme.Background, tcell.ColorBlack)
	statusFg := parseColor(cfg.Theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(cfg.Theme.StatuslineBackground, tcell.ColorGray)
	gutterFg := parseColor(cfg.Theme.GutterForeground, tcell.ColorBlack)
	gutterBg := parseColor(cfg.Theme.GutterBackground, tcell.ColorGray)
	return &Editor{
		buf:             buffer.New(""),
		mode:            ModeNormal,
		keymap:          keymapSet{normal: normal, insert: insert},
		gitBranchSymbol: strings.TrimSpace(cfg.Editor.GitBranchSymbol),
		styleMain:       tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		styleStatus:     tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		styleGutter:     tcell.StyleDefault.Foreground(gutterFg).Background(gutterBg),
	}
}

// OpenFile loads path into the buffer. A missing file is not an error:
// the buffer starts empty and the first write creates it.
func (e *Editor) OpenFile(path string) error {
	e.filename = path
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			e.buf = buffer.New("")
			return nil
		}
		return err
	}
	e.buf = buffer.New(strings.ReplaceAll(string(data), "\r\n", "\n"))
	e.cursor = buffer.Position{}
	e.viewport = display.Viewport{}
	e.mode = ModeNormal
	e.message = ""
	return nil
}

func (e *Editor) Filename() string { return e.filename }

func (e *Editor) Cursor() buffer.Position { return e.cursor }

func (e *Editor) ScrollTop() int { return e.viewport.Top }

func (e *Editor) Buffer() *buffer.Buffer { return e.buf }

func (e *Editor) SetGitBranch(branch string) { e.gitBranch = branch }

// ModeName reports the current mode for the status line and session.
func (e *Editor) ModeName() string {
	if e.mode == ModeInsert {
		return "insert"
	}
	return "normal"
}

// RestoreState places the cursor and viewport from a saved session,
// clamped against the freshly loaded buffer.
func (e *Editor) RestoreState(row, col, top int, mode string) {
	e.cursor = buffer.Position{Row: row, Col: col}
	if top >= 0 && top < e.buf.LineCount() {
		e.viewport.Top = top
	}
	if mode == "insert" {
		e.mode = ModeInsert
	}
	e.clampCursor()
}

// HandleKey dispatches one key event; it reports whether the editor
// should quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	e.message = ""
	switch e.mode {
	case ModeNormal:
		return e.handleNormal(ev)
	case ModeInsert:
		e.handleInsert(ev)
	}
	return false
}

func (e *Editor) handleNormal(ev *tcell.EventKey) bool {
	key := keyString(ev)
	if key == "" {
		return false
	}
	action, ok := e.keymap.normal[key]
	if !ok {
		e.message = fmt.Sprintf("unknown key: %s", key)
		return false
	}
	quit := e.execAction(action)
	e.clampCursor()
	return quit
}

func (e *Editor) handleInsert(ev *tcell.EventKey) {
	key := keyString(ev)
	if action, ok := e.keymap.insert[key]; ok {
		e.execAction(action)
	} else if ev.Key() == tcell.KeyRune {
		e.insertText(string(ev.Rune()))
	}
	e.clampCursor()
}

func (e *Editor) execAction(action string) bool {
	switch action {
	case actionQuit:
		return true
	case actionMoveLeft:
		e.cursor.Col--
	case actionMoveRight:
		e.cursor.Col++
	case actionMoveUp:
		e.cursor.Row--
	case actionMoveDown:
		e.cursor.Row++
	case actionLineStart:
		e.cursor.Col = 0
	case actionLineEnd:
		e.cursor.Col = e.buf.LineLen(e.cursor.Row) - 1
	case actionDeleteChar:
		e.deleteChar()
	case actionEnterInsert:
		e.mode = ModeInsert
	case actionAppend:
		e.mode = ModeInsert
		e.cursor.Col++
	case actionOpenBelow:
		e.openBelow()
	case actionOpenAbove:
		e.openAbove()
	case actionWrite:
		e.writeFile()
	case actionEnterNormal:
		// leaving insert mode moves the cursor one left
		if e.mode == ModeInsert {
			e.cursor.Col--
		}
		e.mode = ModeNormal
	case actionBackspace:
		e.backspace()
	case actionNewline:
		e.insertText("\n")
	case actionInsertTab:
		e.insertText("\t")
	default:
		e.message = fmt.Sprintf("unknown action: %s", action)
	}
	return false
}

// insertText inserts at the cursor and advances it past the insertion.
func (e *Editor) insertText(text string) {
	if err := e.buf.ReplaceRange(e.cursor, e.cursor, text); err != nil {
		logger.Error("insert", "err", err, "row", e.cursor.Row, "col", e.cursor.Col)
		return
	}
	if text == "\n" {
		e.cursor.Row++
		e.cursor.Col = 0
	} else {
		e.cursor.Col += len([]rune(text))
	}
}

func (e *Editor) deleteChar() {
	if e.cursor.Col >= e.buf.LineLen(e.cursor.Row) {
		return
	}
	end := buffer.Position{Row: e.cursor.Row, Col: e.cursor.Col + 1}
	if err := e.buf.ReplaceRange(e.cursor, end, ""); err != nil {
		logger.Error("delete char", "err", err)
	}
}

func (e *Editor) backspace() {
	switch {
	case e.cursor.Col == 0 && e.cursor.Row == 0:
		// nothing before the first position
	case e.cursor.Col == 0:
		// join with the previous line
		prevLen := e.buf.LineLen(e.cursor.Row - 1)
		start := buffer.Position{Row: e.cursor.Row - 1, Col: prevLen}
		end := buffer.Position{Row: e.cursor.Row, Col: 0}
		if err := e.buf.ReplaceRange(start, end, ""); err != nil {
			logger.Error("join lines", "err", err)
			return
		}
		e.cursor.Row--
		e.cursor.Col = prevLen
	default:
		start := buffer.Position{Row: e.cursor.Row, Col: e.cursor.Col - 1}
		if err := e.buf.ReplaceRange(start, e.cursor, ""); err != nil {
			logger.Error("backspace", "err", err)
			return
		}
		e.cursor.Col--
	}
}

func (e *Editor) openBelow() {
	lineEnd := buffer.Position{Row: e.cursor.Row, Col: e.buf.LineLen(e.cursor.Row)}
	if err := e.buf.ReplaceRange(lineEnd, lineEnd, "\n"); err != nil {
		logger.Error("open below", "err", err)
		return
	}
	e.cursor.Row++
	e.cursor.Col = 0
	e.mode = ModeInsert
}

func (e *Editor) openAbove() {
	lineStart := buffer.Position{Row: e.cursor.Row, Col: 0}
	if err := e.buf.ReplaceRange(lineStart, lineStart, "\n"); err != nil {
		logger.Error("open above", "err", err)
		return
	}
	e.cursor.Col = 0
	e.mode = ModeInsert
}

func (e *Editor) writeFile() {
	if e.filename == "" {
		e.message = "can't write file without filename"
		return
	}
	text := strings.Join(e.buf.Lines(), "\n")
	if err := os.WriteFile(e.filename, []byte(text), 0o644); err != nil {
		e.message = fmt.Sprintf("failed to write %q: %v", e.filename, err)
		logger.Error("write file", "path", e.filename, "err", err)
		return
	}
	e.message = fmt.Sprintf("wrote %q", e.filename)
	logger.Info("wrote file", "path", e.filename, "lines", e.buf.LineCount())
}

// clampCursor keeps the cursor on a valid position after every
// mutation. Insert mode permits one extra trailing column so characters
// can be appended past the last one.
func (e *Editor) clampCursor() {
	if e.cursor.Row < 0 {
		e.cursor.Row = 0
	}
	if e.cursor.Row > e.buf.LineCount()-1 {
		e.cursor.Row = e.buf.LineCount() - 1
	}
	numCols := e.buf.LineLen(e.cursor.Row)
	if numCols < 1 {
		numCols = 1
	}
	if e.mode == ModeInsert {
		numCols++
	}
	if e.cursor.Col > numCols-1 {
		e.cursor.Col = numCols - 1
	}
	if e.cursor.Col < 0 {
		e.cursor.Col = 0
	}
}

// Render paints the text area, gutter, status line and cursor. A plan
// error means the viewport and cursor disagree; the frame is aborted
// rather than painted with a wrong cursor.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	statusY := h - 1
	viewHeight := h - 1

	s.SetStyle(e.styleMain)
	s.Clear()

	if viewHeight > 0 {
		plan, err := display.Build(e.buf, &e.viewport, e.cursor, w, viewHeight)
		if err != nil {
			logger.Error("display plan", "err", err,
				"top", e.viewport.Top, "row", e.cursor.Row)
			return
		}
		for y, row := range plan.Rows {
			drawText(s, 0, y, row.Gutter, e.styleGutter)
			drawText(s, plan.GutterWidth, y, row.Text, e.styleMain)
		}
		e.renderStatusline(s, w, statusY)
		cursorStyle := tcell.CursorStyleSteadyBlock
		if e.mode == ModeInsert {
			cursorStyle = tcell.CursorStyleSteadyBar
		}
		s.SetCursorStyle(cursorStyle)
		s.ShowCursor(plan.Cursor.X, plan.Cursor.Y)
	} else {
		e.renderStatusline(s, w, statusY)
		s.HideCursor()
	}
	s.Show()
}

func (e *Editor) renderStatusline(s tcell.Screen, w, y int) {
	left := strings.ToUpper(e.ModeName())
	if e.gitBranch != "" {
		left += " " + formatGitBranch(e.gitBranchSymbol, e.gitBranch)
	}
	if e.message != "" {
		left += " " + e.message
	}
	right := fmt.Sprintf("LN %d:%d ", e.cursor.Row+1, e.cursor.Col+1)
	line := composeStatusLine(left, right, w)
	for x, r := range line {
		s.SetContent(x, y, r, nil, e.styleStatus)
	}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	spaceCount := width - len(leftRunes) - len(rightRunes)
	if spaceCount < 0 {
		spaceCount = 0
	}
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for i := 0; i < spaceCount; i++ {
		line = append(line, ' ')
	}
	line = append(line, rightRunes...)
	return line
}

func formatGitBranch(symbol, branch string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = "git:"
	}
	if strings.HasSuffix(symbol, ":") || strings.HasSuffix(symbol, " ") {
		return symbol + branch
	}
	return symbol + " " + branch
}

func keyString(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return "space"
		}
		return string(r)
	}
	switch ev.Key() {
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyDelete:
		return "del"
	case tcell.KeyEscape:
		return "esc"
	}
	return ""
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
