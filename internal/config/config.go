// Package config provides layered configuration for bumplog using koanf.
// Configuration is loaded with priority: environment variables (BUMPLOG_*) > project config
// (.bumplog.yml) > defaults. A legacy .bumplog.json project file is still read when no YAML
// file exists, with a warning. Command-line flags are applied on top by the cli package.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/bumplog/internal/changelog"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "BUMPLOG_"

// Configuration represents the bumplog tool configuration
type Configuration struct {
	// ChangelogPath is the changelog file to bump, relative to the working directory.
	// Can be set via BUMPLOG_CHANGELOG_PATH env var.
	ChangelogPath string `koanf:"changelog_path" yaml:"changelog_path"`

	// Heading is the top-level heading line new entries are inserted after.
	Heading string `koanf:"heading" yaml:"heading"`

	// EntryMessage is the bullet text written under each generated entry.
	EntryMessage string `koanf:"entry_message" yaml:"entry_message"`

	// AtomicWrite writes through a temp file + rename instead of truncating in place.
	AtomicWrite bool `koanf:"atomic_write" yaml:"atomic_write"`

	// StrictHeading fails the bump when Heading is missing instead of
	// silently rewriting the file unchanged.
	StrictHeading bool `koanf:"strict_heading" yaml:"strict_heading"`

	// GitTag creates a lightweight git tag for the new version after a successful bump.
	// A non-empty TagMessage makes it an annotated tag instead.
	GitTag     bool   `koanf:"git_tag" yaml:"git_tag"`
	TagMessage string `koanf:"tag_message" yaml:"tag_message"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .bumplog.yml)
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// LoadWithOptions loads configuration from defaults, the project config file and the environment.
// Priority: Environment variables > Project config > Defaults
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads the project config (YAML preferred, legacy JSON supported).
// An explicit customPath must exist; the default paths are optional.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("config file %s not found", customPath)
		}
		if strings.EqualFold(filepath.Ext(customPath), ".json") {
			return loadLegacyJSONConfig(k, customPath, warningWriter, true)
		}
		return loadYAMLConfig(k, customPath)
	}

	yamlPath := ProjectConfigPath()
	legacyPath := LegacyProjectConfigPath()

	yamlExists := fileExists(yamlPath)
	legacyExists := fileExists(legacyPath)

	if yamlExists {
		if err := loadYAMLConfig(k, yamlPath); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		warnLegacyExists(warningWriter, legacyPath, yamlPath, legacyExists, skipWarnings)
	} else if legacyExists {
		if err := loadLegacyJSONConfig(k, legacyPath, warningWriter, skipWarnings); err != nil {
			return fmt.Errorf("loading legacy project JSON config: %w", err)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

// loadLegacyJSONConfig loads legacy JSON and warns about migration
func loadLegacyJSONConfig(k *koanf.Koanf, path string, warningWriter io.Writer, skipWarnings bool) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load legacy config %s: %w", path, err)
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Run 'bumplog config > %s' to switch to YAML format.\n\n", ProjectConfigPath())
	}
	return nil
}

// warnLegacyExists warns if legacy JSON exists alongside new YAML
func warnLegacyExists(warningWriter io.Writer, legacyPath, yamlPath string, legacyExists, skipWarnings bool) {
	if legacyExists && !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n\n", legacyPath, yamlPath)
	}
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ChangelogPath = expandHomePath(cfg.ChangelogPath)

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: BUMPLOG_CHANGELOG_PATH -> changelog_path
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// WriteMode maps AtomicWrite to the changelog write mode.
func (c *Configuration) WriteMode() changelog.WriteMode {
	if c.AtomicWrite {
		return changelog.WriteAtomic
	}
	return changelog.WriteInPlace
}

// BumpOptions builds the changelog options described by this configuration.
func (c *Configuration) BumpOptions() changelog.BumpOptions {
	return changelog.BumpOptions{
		Heading:       c.Heading,
		Description:   c.EntryMessage,
		StrictHeading: c.StrictHeading,
		WriteMode:     c.WriteMode(),
	}
}
