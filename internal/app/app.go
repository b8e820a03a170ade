package app

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/gdamore/tcell/v2"

	"github.com/sverev/led/internal/config"
	"github.com/sverev/led/internal/editor"
	"github.com/sverev/led/internal/gitinfo"
	"github.com/sverev/led/internal/logger"
	"github.com/sverev/led/internal/session"
)

// App is the top-level runtime for led.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

// Run drives the editing session: one render, one blocking event read,
// one state mutation, until the editor asks to quit.
func (a *App) Run() error {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Editor.Debug); err != nil {
		return err
	}
	defer logger.Close()

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	ed := editor.New(cfg)

	var sm *session.Manager
	if cfg.Editor.SaveSession {
		sm, err = session.NewManager()
		if err != nil {
			logger.Warn("session unavailable", "err", err)
			sm = nil
		}
	}

	var absPath string
	if len(a.args) > 0 {
		openPath := a.args[0]
		if err := ed.OpenFile(openPath); err != nil {
			return err
		}
		if p, err := filepath.Abs(openPath); err == nil {
			absPath = p
		}
		ed.SetGitBranch(gitinfo.Branch(openPath))
		if sm != nil && absPath != "" {
			if state, ok := sm.GetFileState(absPath); ok {
				ed.RestoreState(state.CursorRow, state.CursorCol, state.ScrollTop, state.Mode)
			}
		}
	} else if cwd, err := os.Getwd(); err == nil {
		ed.SetGitBranch(gitinfo.Branch(cwd))
	}

	logger.Info("session started", "file", absPath)

	for {
		ed.Render(s)
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				if sm != nil && absPath != "" {
					cur := ed.Cursor()
					sm.SetFileState(absPath, session.FileState{
						CursorRow: cur.Row,
						CursorCol: cur.Col,
						ScrollTop: ed.ScrollTop(),
						Mode:      ed.ModeName(),
					})
					if err := sm.Save(); err != nil {
						logger.Warn("session save", "err", err)
					}
				}
				logger.Info("session ended", "file", absPath)
				return nil
			}
		}
	}
}
