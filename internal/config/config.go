package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Keymap struct {
	Normal map[string]string `toml:"normal"`
	Insert map[string]string `toml:"insert"`
}

type EditorOptions struct {
	SaveSession     bool   `toml:"save-session"`
	GitBranchSymbol string `toml:"git-branch-symbol"`
	Debug           bool   `toml:"debug"`
}

type Theme struct {
	Foreground           string `toml:"foreground"`
	Background           string `toml:"background"`
	StatuslineForeground string `toml:"statusline-foreground"`
	StatuslineBackground string `toml:"statusline-background"`
	GutterForeground     string `toml:"gutter-foreground"`
	GutterBackground     string `toml:"gutter-background"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			SaveSession:     true,
			GitBranchSymbol: "git:",
		},
		Theme: Theme{
			Foreground:           "#B3B1AD",
			Background:           "#0A0E14",
			StatuslineForeground: "#0A0E14",
			StatuslineBackground: "#B3B1AD",
			GutterForeground:     "#0A0E14",
			GutterBackground:     "#3E4B59",
		},
		Keymap: Keymap{
			Normal: map[string]string{
				"q":     "quit",
				"h":     "move_left",
				"j":     "move_down",
				"k":     "move_up",
				"l":     "move_right",
				"left":  "move_left",
				"down":  "move_down",
				"up":    "move_up",
				"right": "move_right",
				"0":     "line_start",
				"$":     "line_end",
				"x":     "delete_char",
				"i":     "enter_insert",
				"a":     "append",
				"o":     "open_below",
				"O":     "open_above",
				"w":     "write",
			},
			Insert: map[string]string{
				"esc":       "enter_normal",
				"backspace": "backspace",
				"enter":     "newline",
				"tab":       "insert_tab",
			},
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	meta, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, err
	}

	if meta.IsDefined("editor", "save-session") {
		cfg.Editor.SaveSession = userCfg.Editor.SaveSession
	}
	if userCfg.Editor.GitBranchSymbol != "" {
		cfg.Editor.GitBranchSymbol = userCfg.Editor.GitBranchSymbol
	}
	if userCfg.Editor.Debug {
		cfg.Editor.Debug = true
	}
	if userCfg.Theme.Foreground != "" {
		cfg.Theme.Foreground = userCfg.Theme.Foreground
	}
	if userCfg.Theme.Background != "" {
		cfg.Theme.Background = userCfg.Theme.Background
	}
	if userCfg.Theme.StatuslineForeground != "" {
		cfg.Theme.StatuslineForeground = userCfg.Theme.StatuslineForeground
	}
	if userCfg.Theme.StatuslineBackground != "" {
		cfg.Theme.StatuslineBackground = userCfg.Theme.StatuslineBackground
	}
	if userCfg.Theme.GutterForeground != "" {
		cfg.Theme.GutterForeground = userCfg.Theme.GutterForeground
	}
	if userCfg.Theme.GutterBackground != "" {
		cfg.Theme.GutterBackground = userCfg.Theme.GutterBackground
	}
	for k, v := range userCfg.Keymap.Normal {
		cfg.Keymap.Normal[k] = v
	}
	for k, v := range userCfg.Keymap.Insert {
		cfg.Keymap.Insert[k] = v
	}
	return cfg, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("LED_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "led"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "led"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
