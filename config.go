package tumbler

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

// DefaultConfigFile is consulted when no explicit config path is given.
const DefaultConfigFile = "~/.tumbler.toml"

// Config holds CLI defaults read from an optional TOML file.
type Config struct {
	Engine string
	Format string
	Digest bool
}

// LoadConfig reads the TOML file at path, expanding a leading tilde, and
// fills unset fields with defaults. A missing file is only an error when
// the path was given explicitly.
func LoadConfig(path string, explicit bool) (Config, error) {
	conf := Config{}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return conf, fmt.Errorf("config path %s: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	switch {
	case err == nil:
		if _, err := toml.Decode(string(data), &conf); err != nil {
			return conf, fmt.Errorf("parse config %s: %w", expanded, err)
		}
	case os.IsNotExist(err) && !explicit:
		// fall through to defaults
	default:
		return conf, fmt.Errorf("read config %s: %w", expanded, err)
	}

	if conf.Engine == "" {
		conf.Engine = DefaultEngine
	}
	if conf.Format == "" {
		conf.Format = "raw"
	}
	return conf, nil
}
