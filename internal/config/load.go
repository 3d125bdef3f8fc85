package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ParseError reports a malformed or out-of-range configuration value. It is
// fatal at startup: the process refuses to start rather than run with a
// config it cannot honor.
type ParseError struct {
	// Section and Key identify the offending entry when known.
	Section string
	Key     string
	Msg     string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Section != "" && e.Key != "":
		return fmt.Sprintf("config: [%s] %s: %s", e.Section, e.Key, e.Msg)
	case e.Section != "":
		return fmt.Sprintf("config: [%s]: %s", e.Section, e.Msg)
	default:
		return "config: " + e.Msg
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads the TOML file at path and returns the resolved configuration.
// A missing file is not an error; it yields Default(). Unknown keys are
// ignored. Malformed TOML and out-of-range values return a *ParseError.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return finish(cfg)
		}
		return nil, &ParseError{Msg: fmt.Sprintf("reading %s: %v", path, err), Err: err}
	}

	return parse(cfg, string(data))
}

// Parse decodes a TOML document from memory on top of the defaults. Used by
// Load and directly by tests.
func Parse(source string) (*Config, error) {
	return parse(Default(), source)
}

func parse(cfg *Config, source string) (*Config, error) {
	// Decoding on top of the defaulted record means absent keys keep their
	// default value, which is the whole contract of this file.
	if _, err := toml.Decode(source, cfg); err != nil {
		return nil, &ParseError{Msg: err.Error(), Err: err}
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	dataPath, err := expandPath(cfg.Server.DataPath)
	if err != nil {
		return nil, &ParseError{Section: "server", Key: "dataPath", Msg: err.Error(), Err: err}
	}
	cfg.Server.DataPath = dataPath

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ParseError{
			Section: "server",
			Key:     "port",
			Msg:     fmt.Sprintf("port %d out of range 1-65535", c.Server.Port),
		}
	}

	switch c.Theme.Font {
	case "sans-serif", "serif", "monospace":
	default:
		return &ParseError{
			Section: "theme",
			Key:     "font",
			Msg:     fmt.Sprintf("unknown font %q (want sans-serif, serif or monospace)", c.Theme.Font),
		}
	}

	switch c.Logger.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ParseError{
			Section: "logger",
			Key:     "level",
			Msg:     fmt.Sprintf("unknown level %q (want debug, info, warning or error)", c.Logger.Level),
		}
	}

	switch c.Logger.Format {
	case "json", "text":
	default:
		return &ParseError{
			Section: "logger",
			Key:     "format",
			Msg:     fmt.Sprintf("unknown format %q (want json or text)", c.Logger.Format),
		}
	}

	return nil
}

func expandPath(p string) (string, error) {
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	return p, nil
}
