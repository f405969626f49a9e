// Package config loads the YAML settings shared by the tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	wikigenre "github.com/dustin/go-wikigenre"
)

// DefaultFile is read when no config path is given.  It's fine for it
// to be missing.
const DefaultFile = "genrescan.yaml"

const (
	// ErrCodeNotFound means an explicitly named config file doesn't exist.
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid means the file couldn't be read or parsed, or a
	// value is out of range.
	ErrCodeInvalid = "config_invalid"
)

// Error is a configuration failure with a stable code.
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the code from err, or "" if it isn't an *Error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Config is the file format.  Pointers and nil slices mean "not set".
type Config struct {
	Extension  string   `yaml:"extension"`
	FieldNames []string `yaml:"field_names"`
	SkipTerms  []string `yaml:"skip_terms"`
	// ExtraSkipTerms are added to the built-in list instead of
	// replacing it.
	ExtraSkipTerms        []string          `yaml:"extra_skip_terms"`
	DropBareRock          *bool             `yaml:"drop_bare_rock"`
	Synonyms              map[string]string `yaml:"synonyms"`
	KeepEraParentheticals *bool             `yaml:"keep_era_parentheticals"`
	EraQualifiers         []string          `yaml:"era_qualifiers"`

	Workers     int    `yaml:"workers"`
	FileTimeout string `yaml:"file_timeout"`
	Top         int    `yaml:"top"`
	Output      string `yaml:"output"`
	Format      string `yaml:"format"`
}

// Effective is the merged configuration the tools act on.
type Effective struct {
	Extension   string
	Policy      wikigenre.Policy
	Workers     int
	FileTimeout time.Duration
	Top         int
	Output      string
	Format      string
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Effective {
	return Effective{
		Extension: wikigenre.DefaultExtension,
		Policy:    wikigenre.DefaultPolicy(),
		Top:       15,
		Output:    "artist_genres.json",
		Format:    "json",
	}
}

// Load reads path and merges it over the defaults.  With path empty,
// DefaultFile is used if it exists.
func Load(path string) (Effective, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if !explicit {
				return Defaults(), nil
			}
			return Effective{}, &Error{Code: ErrCodeNotFound, Path: path, Err: err}
		}
		return Effective{}, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Effective{}, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
	}
	eff, err := c.Apply(Defaults())
	if err != nil {
		return Effective{}, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
	}
	return eff, nil
}

// Apply overlays the set fields of c onto eff.
func (c Config) Apply(eff Effective) (Effective, error) {
	if c.Extension != "" {
		ext := c.Extension
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		eff.Extension = ext
	}
	if c.FieldNames != nil {
		eff.Policy.FieldNames = c.FieldNames
	}
	if c.SkipTerms != nil {
		eff.Policy.SkipTerms = c.SkipTerms
	}
	eff.Policy.SkipTerms = append(eff.Policy.SkipTerms, c.ExtraSkipTerms...)
	if c.DropBareRock != nil {
		eff.Policy.DropBareRock = *c.DropBareRock
	}
	for k, v := range c.Synonyms {
		eff.Policy.Synonyms[k] = v
	}
	if c.KeepEraParentheticals != nil {
		eff.Policy.KeepEraParentheticals = *c.KeepEraParentheticals
	}
	if c.EraQualifiers != nil {
		eff.Policy.EraQualifiers = c.EraQualifiers
	}

	if c.Workers < 0 {
		return eff, fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Workers > 0 {
		eff.Workers = c.Workers
	}
	if c.FileTimeout != "" {
		d, err := time.ParseDuration(c.FileTimeout)
		if err != nil {
			return eff, fmt.Errorf("file_timeout: %w", err)
		}
		eff.FileTimeout = d
	}
	if c.Top < 0 {
		return eff, fmt.Errorf("top must not be negative, got %d", c.Top)
	}
	if c.Top > 0 {
		eff.Top = c.Top
	}
	if c.Output != "" {
		eff.Output = c.Output
	}
	if c.Format != "" {
		if err := CheckFormat(c.Format); err != nil {
			return eff, err
		}
		eff.Format = c.Format
	}
	return eff, nil
}

// CheckFormat validates an output format name.
func CheckFormat(f string) error {
	switch f {
	case "json", "yaml":
		return nil
	}
	return fmt.Errorf("format must be json or yaml, got %q", f)
}
