// Package resources resolves localizable strings used by the search pipeline.
package resources

import (
	"fmt"
	"maps"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/poiesic/appsearch/core"
)

// Lookup resolves a string ID to display text.
type Lookup interface {
	String(id core.StringID) string
}

// Table is a Lookup backed by a map. Unknown IDs resolve to the ID itself.
type Table map[core.StringID]string

var _ Lookup = Table(nil)

// String implements Lookup.
func (t Table) String(id core.StringID) string {
	if s, ok := t[id]; ok {
		return s
	}
	return string(id)
}

// Merge returns a new table holding t overridden by other.
func (t Table) Merge(other Table) Table {
	out := make(Table, len(t)+len(other))
	maps.Copy(out, t)
	maps.Copy(out, other)
	return out
}

// Default returns the built-in English strings.
func Default() Table {
	return Table{
		core.StringSearchCorpusApps: "Apps",
	}
}

// Parse reads a flat TOML document of string IDs to text:
//
//	search_corpus_apps = "Applications"
func Parse(data []byte) (Table, error) {
	var raw map[string]string
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing strings: %w", err)
	}
	return FromMap(raw), nil
}

// Load reads a strings file and merges it over the defaults.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading strings file %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Default().Merge(t), nil
}

// FromMap converts a plain string map into a Table.
func FromMap(m map[string]string) Table {
	t := make(Table, len(m))
	for k, v := range m {
		t[core.StringID(k)] = v
	}
	return t
}
