package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// The config file picked up from the working directory when --config is not given
const defaultConfigFile = "java2cpp.toml"

const (
	FormatText    = "text"
	FormatMsgpack = "msgpack"
)

// Config is the contents of a java2cpp.toml file
type Config struct {
	Jobs    int      `toml:"jobs"`
	Indent  string   `toml:"indent"`
	Prelude []string `toml:"prelude"`
	Format  string   `toml:"format"`
	// Replaces the C++ spelling of a Java type, ex: `String = "std::wstring"`
	Types map[string]string `toml:"types"`
}

// LoadConfig reads a config file. An empty path loads java2cpp.toml from the
// working directory if there is one, and the defaults otherwise
func LoadConfig(path string) (Config, error) {
	cfg := Config{Format: FormatText}

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		log.WithFields(log.Fields{
			"config": path,
			"keys":   undecoded,
		}).Warn("Ignoring unknown config keys")
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if cfg.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", cfg.Jobs)
	}
	switch cfg.Format {
	case FormatText, FormatMsgpack:
	default:
		return fmt.Errorf("unknown format %q (text|msgpack)", cfg.Format)
	}
	if strings.TrimSpace(cfg.Indent) != "" {
		return fmt.Errorf("indent must only contain whitespace, got %q", cfg.Indent)
	}
	for _, header := range cfg.Prelude {
		if !isHeaderName(header) {
			return fmt.Errorf("prelude header %q must be written as <name> or \"name\"", header)
		}
	}
	return nil
}

func isHeaderName(header string) bool {
	if len(header) < 3 {
		return false
	}
	first, last := header[0], header[len(header)-1]
	return (first == '<' && last == '>') || (first == '"' && last == '"')
}

// Options converts the config into the options of a translation
func (cfg Config) Options() Options {
	return Options{
		Jobs:    cfg.Jobs,
		Indent:  cfg.Indent,
		Prelude: cfg.Prelude,
		Types:   cfg.Types,
	}
}
