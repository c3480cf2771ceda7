// Package taxonomy provides the category -> subcategories mapping used to
// validate every ledger write. The mapping is loaded once and read-only
// for the lifetime of the process; reloading means building a new
// Taxonomy and re-injecting it.
package taxonomy

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"ledger/internal/core"
)

// Taxonomy maps each category name to its set of valid subcategories.
// Safe for unsynchronized concurrent reads after construction.
type Taxonomy struct {
	categories map[string][]string
	names      []string // sorted category names for stable error messages
}

// New builds a Taxonomy from an explicit mapping.
func New(categories map[string][]string) *Taxonomy {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return &Taxonomy{categories: categories, names: names}
}

// Load reads the taxonomy from a JSON or YAML file, dispatched on the
// file extension. A load failure degrades to an empty taxonomy (every
// category lookup then fails validation) rather than aborting startup.
func Load(path string) *Taxonomy {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Failed to read taxonomy file, using empty taxonomy",
			"path", path, "error", err)
		return New(map[string][]string{})
	}

	var categories map[string][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &categories)
	default:
		err = json.Unmarshal(data, &categories)
	}
	if err != nil {
		slog.Warn("Failed to parse taxonomy file, using empty taxonomy",
			"path", path, "error", err)
		return New(map[string][]string{})
	}

	slog.Info("Taxonomy loaded", "path", path, "categories", len(categories))
	return New(categories)
}

// Validate checks that category exists and that a non-empty subcategory
// belongs to it. An empty subcategory is always valid. Errors name the
// offending value and enumerate the accepted alternatives.
func (t *Taxonomy) Validate(category, subcategory string) error {
	subs, ok := t.categories[category]
	if !ok {
		return core.Validationf("invalid category %q. Available: %s",
			category, strings.Join(t.names, ", "))
	}
	if subcategory == "" {
		return nil
	}
	for _, s := range subs {
		if s == subcategory {
			return nil
		}
	}
	return core.Validationf("invalid subcategory %q for category %q. Available: %s",
		subcategory, category, strings.Join(subs, ", "))
}

// Categories returns the category names in sorted order.
func (t *Taxonomy) Categories() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Subcategories returns the subcategories registered under category.
func (t *Taxonomy) Subcategories(category string) ([]string, bool) {
	subs, ok := t.categories[category]
	if !ok {
		return nil, false
	}
	out := make([]string, len(subs))
	copy(out, subs)
	return out, true
}

// All returns the full mapping for the read-only introspection resource.
func (t *Taxonomy) All() map[string][]string {
	out := make(map[string][]string, len(t.categories))
	for name, subs := range t.categories {
		cp := make([]string, len(subs))
		copy(cp, subs)
		out[name] = cp
	}
	return out
}
