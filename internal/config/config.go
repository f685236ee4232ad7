package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	ini "github.com/go-ini/ini"

	"hanim/internal/engine"
	"hanim/internal/layout"
	"hanim/internal/types"
)

// DefaultFileName is looked up in the working directory by Resolve.
const DefaultFileName = "hanim.ini"

type Config struct {
	ToggleKey   string
	DefaultMode types.InputMode
	Layout      string
	Overrides   []layout.Override
}

type ConfigError struct {
	msg string
	err error
}

func (e ConfigError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e ConfigError) Unwrap() error { return e.err }

func Default() Config {
	return Config{
		ToggleKey:   engine.DefaultTrigger,
		DefaultMode: types.ModeLatin,
		Layout:      layout.DefaultName,
	}
}

// Load reads an INI file. Missing sections and keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	info, err := os.Stat(path)
	if err != nil {
		return cfg, ConfigError{msg: fmt.Sprintf("open %s", path), err: err}
	}
	if info.IsDir() {
		return cfg, ConfigError{msg: fmt.Sprintf("%s is a directory", path)}
	}

	file, err := ini.Load(filepath.Clean(path))
	if err != nil {
		return cfg, ConfigError{msg: fmt.Sprintf("parse %s", path), err: err}
	}

	toggle := file.Section("toggle")
	key := engine.NormalizeKey(toggle.Key("key").MustString(cfg.ToggleKey))
	if key == "" {
		return cfg, ConfigError{msg: fmt.Sprintf("empty toggle key in %s", path)}
	}
	cfg.ToggleKey = key

	if toggle.HasKey("default_mode") {
		mode, err := types.ParseMode(toggle.Key("default_mode").String())
		if err != nil {
			return cfg, ConfigError{msg: fmt.Sprintf("invalid default_mode in %s", path), err: err}
		}
		cfg.DefaultMode = mode
	}

	cfg.Layout = file.Section("layout").Key("name").MustString(cfg.Layout)

	if file.HasSection("keys") {
		for _, k := range file.Section("keys").Keys() {
			override, err := layout.ParseOverride(k.Name(), k.Value())
			if err != nil {
				return cfg, ConfigError{msg: fmt.Sprintf("invalid [keys] entry in %s", path), err: err}
			}
			cfg.Overrides = append(cfg.Overrides, override)
		}
	}

	return cfg, nil
}

// Resolve loads cliPath when given. Otherwise it falls back to hanim.ini in
// the working directory, and to the defaults when that does not exist.
func Resolve(cliPath string) (Config, error) {
	if cliPath != "" {
		return Load(cliPath)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return Default(), nil
	}
	defaultPath := filepath.Join(cwd, DefaultFileName)
	if _, statErr := os.Stat(defaultPath); statErr == nil {
		return Load(defaultPath)
	} else if errors.Is(statErr, os.ErrNotExist) {
		return Default(), nil
	}
	return Default(), nil
}

// BuildLayout loads the configured layout with the [keys] overrides applied.
func (c Config) BuildLayout() (*layout.Layout, error) {
	base, err := layout.Load(c.Layout)
	if err != nil {
		return nil, ConfigError{msg: "layout", err: err}
	}
	if len(c.Overrides) == 0 {
		return base, nil
	}
	custom, err := layout.ApplyOverrides(base, c.Overrides)
	if err != nil {
		return nil, ConfigError{msg: "layout overrides", err: err}
	}
	return custom, nil
}
