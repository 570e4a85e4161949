// Package config defines the typed configuration consumed at startup (spec
// section 6): version, general settings, node-type overrides, and the
// builtin/custom mode tables. Loading follows the teacher's
// pkg/encoding.LoadAndUnmarshalYAML pattern: read the file, then
// yaml.UnmarshalStrict so an unknown key is a startup ConfigError rather
// than being silently dropped.
package config

import (
	"embed"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	direrrors "github.com/drift-explorer/drift/internal/errors"
	"github.com/drift-explorer/drift/internal/keymap"
	"github.com/drift-explorer/drift/internal/sortfilter"
)

// CoreVersion is the version this build implements; a loaded config's
// Version must match at major.minor granularity.
const CoreVersion = "0.1.0"

//go:embed default.yml
var defaultsFS embed.FS

// General holds the top-level scalar settings of spec section 6's "general"
// key.
type General struct {
	LogLevel        string             `yaml:"log_level"`
	InitialSorters  []sortfilter.NodeSorter `yaml:"initial_sorters"`
	InitialFilters  []sortfilter.NodeFilter `yaml:"initial_filters"`
	InitialMode     string             `yaml:"initial_mode"`
	EnableMouse     bool               `yaml:"enable_mouse"`
}

// Modes groups the built-in mode table (shipped with defaults, not meant to
// be overridden wholesale) and the user's custom modes, merged by
// Config.ResolvedModes — builtin entries are the base, custom
// entries of the same name replace them entirely.
type Modes struct {
	Builtin keymap.Map `yaml:"builtin"`
	Custom  keymap.Map `yaml:"custom"`
}

// NodeTypeConfig overrides node classification for specific extensions,
// e.g. assigning a mime_essence or treating an extension as always
// executable. Kept intentionally small: the spec only requires that the
// key exist and round-trip, not a specific schema for the override fields.
type NodeTypeConfig struct {
	MimeEssence string `yaml:"mime_essence"`
}

// Config is the root of spec section 6's external Config input.
type Config struct {
	Version   string                    `yaml:"version"`
	General   General                   `yaml:"general"`
	NodeTypes map[string]NodeTypeConfig `yaml:"node_types"`
	Modes     Modes                     `yaml:"modes"`
}

// Load reads the embedded defaults, then merges path's contents over them
// if path is non-empty and exists. Unknown keys in either document are
// rejected, and a version mismatch (differing major or minor component) is
// a ConfigError.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	defaults, err := defaultsFS.ReadFile("default.yml")
	if err != nil {
		return nil, &direrrors.ConfigError{Cause: errors.Wrap(err, "unable to read embedded defaults")}
	}
	if err := yaml.UnmarshalStrict(defaults, cfg); err != nil {
		return nil, &direrrors.ConfigError{Cause: errors.Wrap(err, "embedded defaults are malformed")}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, &direrrors.ConfigError{Path: path, Cause: errors.Wrap(err, "unable to read configuration")}
			}
		} else if err := yaml.UnmarshalStrict(data, cfg); err != nil {
			return nil, &direrrors.ConfigError{Path: path, Cause: errors.Wrap(err, "unable to unmarshal configuration")}
		}
	}

	if err := checkVersionCompatible(cfg.Version); err != nil {
		return nil, &direrrors.ConfigError{Path: path, Cause: err}
	}

	return cfg, nil
}

// checkVersionCompatible implements spec section 6's "semver minor
// compatibility: identical major+minor" rule. No semver library appears
// wired anywhere else in the pack (see DESIGN.md), so this one small
// major.minor splitter is the justified stdlib exception rather than
// pulling in a dependency for a two-field comparison.
func checkVersionCompatible(version string) error {
	want := strings.SplitN(CoreVersion, ".", 3)
	got := strings.SplitN(version, ".", 3)
	if len(got) < 2 {
		return errors.Errorf("malformed version %q", version)
	}
	if got[0] != want[0] || got[1] != want[1] {
		return errors.Errorf("incompatible config version %q, core is %q", version, CoreVersion)
	}
	// Confirm both components are at least numeric, matching semver's
	// expectation that major/minor are integers rather than arbitrary text.
	if _, err := strconv.Atoi(got[0]); err != nil {
		return errors.Errorf("non-numeric major version in %q", version)
	}
	if _, err := strconv.Atoi(got[1]); err != nil {
		return errors.Errorf("non-numeric minor version in %q", version)
	}
	return nil
}

// ResolvedModes merges the builtin mode table with the user's custom modes:
// a custom entry with the same name as a builtin one replaces it entirely
// (no field-level merge), matching spec section 6's "modes.custom overrides
// modes.builtin by name."
func (c *Config) ResolvedModes() keymap.Map {
	resolved := make(keymap.Map, len(c.Modes.Builtin)+len(c.Modes.Custom))
	for name, mode := range c.Modes.Builtin {
		resolved[name] = mode
	}
	for name, mode := range c.Modes.Custom {
		resolved[name] = mode
	}
	return resolved
}

// LoadHookEnvFile sources a project-local .env file (if present) via
// godotenv, returning the key/value pairs to merge beneath the XPLR_*
// exports when spawning a shell hook. This is additive only: an absent
// file is not an error.
func LoadHookEnvFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}
	return vars, nil
}
