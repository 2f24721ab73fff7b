// Package config loads appsearch settings from TOML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/poiesic/appsearch/match"
	"github.com/poiesic/appsearch/resources"
	"golang.org/x/text/language"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultStoragePath is where the catalog is stored when no path is set.
const DefaultStoragePath = "./apps_db"

// Config holds all appsearch settings.
type Config struct {
	Search  SearchConfig      `toml:"search"`
	Storage StorageConfig     `toml:"storage"`
	Strings map[string]string `toml:"strings"`
}

// SearchConfig configures the search pipeline.
type SearchConfig struct {
	MaxResults      int    `toml:"max_results"`
	MatchPolicy     string `toml:"match_policy"`
	Language        string `toml:"language"`
	EmptyQuery      string `toml:"empty_query"`
	CallbackWorkers int    `toml:"callback_workers"`
}

// StorageConfig configures catalog persistence.
type StorageConfig struct {
	Path     string `toml:"path"`
	InMemory bool   `toml:"in_memory"`
}

// ParseError reports a malformed configuration document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			MaxResults:  5,
			MatchPolicy: match.PolicyWordPrefix.String(),
			Language:    language.Und.String(),
			EmptyQuery:  "all",
		},
		Storage: StorageConfig{
			Path: DefaultStoragePath,
		},
		Strings: map[string]string{},
	}
}

// Load reads the configuration file at path over the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// Parse reads a TOML document over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	return parse("<data>", data)
}

func parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: source, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("%w: search.max_results must not be negative, got %d", ErrInvalidConfig, c.Search.MaxResults)
	}
	if c.Search.CallbackWorkers < 0 {
		return fmt.Errorf("%w: search.callback_workers must not be negative, got %d", ErrInvalidConfig, c.Search.CallbackWorkers)
	}
	if _, err := c.MatcherOptions(); err != nil {
		return err
	}
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("%w: storage.path is required unless storage.in_memory is set", ErrInvalidConfig)
	}
	return nil
}

// MatcherOptions converts the search settings into matcher options.
func (c *Config) MatcherOptions() (match.Options, error) {
	opts := match.DefaultOptions()

	policy, err := match.ParsePolicy(c.Search.MatchPolicy)
	if err != nil {
		return opts, fmt.Errorf("%w: search.match_policy: %w", ErrInvalidConfig, err)
	}
	opts.Policy = policy

	empty, err := match.ParseEmptyQuery(c.Search.EmptyQuery)
	if err != nil {
		return opts, fmt.Errorf("%w: search.empty_query: %w", ErrInvalidConfig, err)
	}
	opts.EmptyQuery = empty

	if c.Search.Language != "" {
		tag, err := language.Parse(c.Search.Language)
		if err != nil {
			return opts, fmt.Errorf("%w: search.language %q: %w", ErrInvalidConfig, c.Search.Language, err)
		}
		opts.Language = tag
	}
	return opts, nil
}

// StringTable returns the default strings overridden by the [strings] table.
func (c *Config) StringTable() resources.Table {
	return resources.Default().Merge(resources.FromMap(c.Strings))
}
