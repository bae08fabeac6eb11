// Package config loads drivestat settings from an optional ini file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-ini/ini"
)

// FileName is the default config file name, looked up next to the executable.
const FileName = "drivestat.ini"

// ConfigOutput controls where log files are written.
type ConfigOutput struct {
	BaseDir string `ini:"base_dir"`
}

// ConfigLog controls diagnostic logging.
type ConfigLog struct {
	Level string `ini:"level"`
	File  string `ini:"file"`
}

// Config of drivestat
type Config struct {
	Output ConfigOutput `ini:"output"`
	Log    ConfigLog    `ini:"log"`
}

// Default returns the settings used when no config file is present.
func Default() *Config {
	return &Config{
		Output: ConfigOutput{
			BaseDir: ExecutableDir(),
		},
		Log: ConfigLog{
			Level: "warn",
		},
	}
}

// ExecutableDir returns the directory holding the running executable.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// DefaultPath returns the config file path next to the executable.
func DefaultPath() string {
	return filepath.Join(ExecutableDir(), FileName)
}

// Load reads path over the defaults. A missing file is an error only when required is set.
// Relative paths in the file are resolved against the file's directory.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	f, err := ini.LooseLoad(path)
	if err != nil {
		return nil, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	if err := f.MapTo(cfg); err != nil {
		return nil, fmt.Errorf("cannot map config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cfg.Output.BaseDir = resolve(dir, cfg.Output.BaseDir)
	cfg.Log.File = resolve(dir, cfg.Log.File)
	return cfg, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
