package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// MemoryDB selects the in-memory adapters instead of a SQLite file.
const MemoryDB = "memory"

// Config holds the runtime settings of the clinic console.
type Config struct {
	// DBPath is the SQLite file, or MemoryDB for an ephemeral session.
	DBPath   string
	LogFile  string
	LogLevel string
}

// fileConfig mirrors Config with TOML tags.
type fileConfig struct {
	DBPath   string `toml:"db_path"`
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

func Default() Config {
	return Config{
		DBPath:   "vetclinic.db",
		LogFile:  "vetclinic.log",
		LogLevel: "info",
	}
}

// DefaultPath returns ~/.vetclinic/config.toml if the home directory is
// accessible, otherwise "".
func DefaultPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".vetclinic", "config.toml")
	}
	return ""
}

// Load reads the TOML file at path over the defaults. An absent file at the
// default location is fine; an absent file the user asked for explicitly is
// an error.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(b, &fc); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.DBPath != "" {
		cfg.DBPath = fc.DBPath
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}

	return cfg, nil
}
