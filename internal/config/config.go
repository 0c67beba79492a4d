package config

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// EnvVar names the environment variable consulted when no --config flag
// is given
const EnvVar = "MONTY_CONFIG"

// Config holds the settings a monty.toml file may carry. Command line flags
// override them.
type Config struct {
	LogLevel string `toml:"log_level,omitempty"`
	NoColor  bool   `toml:"no_color,omitempty"`
	Trace    bool   `toml:"trace,omitempty"`
	Snapshot string `toml:"snapshot,omitempty"`
	MaxDepth int    `toml:"max_depth,omitempty"`
}

// Default returns the settings used when no file is present
func Default() Config {
	return Config{
		LogLevel: "warn",
	}
}

func parse(r io.Reader) (Config, error) {
	out := Default()
	md, err := toml.NewDecoder(r).Decode(&out)
	if err != nil {
		return out, errors.Wrap(err, "decoding config")
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return out, errors.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if out.MaxDepth < 0 {
		return out, errors.Errorf("max_depth must not be negative, got %d", out.MaxDepth)
	}

	return out, nil
}

// LoadFromFile reads the TOML file at path
func LoadFromFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Default(), errors.Wrap(err, "opening config")
	}
	defer f.Close()

	c, err := parse(f)
	if err != nil {
		return c, errors.Wrap(err, path)
	}

	return c, nil
}

// Load resolves the config file: the explicit path if given, otherwise the
// file named by $MONTY_CONFIG, otherwise defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}

	return LoadFromFile(path)
}
