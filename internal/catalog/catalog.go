package catalog

import (
	"fmt"
	"slices"
)

// catalog holds the fixed category enumeration with precomputed indices.
type catalog struct {
	categories []Category
	themes     []string
	index      map[string]int
	categoryOf map[string]string
}

// c is the package-level catalog, set by init() in seed.go.
var c *catalog

// buildCatalog flattens the category list into a single ordered theme list
// and indexes it by name.
func buildCatalog(categories []Category) *catalog {
	ct := &catalog{
		categories: categories,
		index:      make(map[string]int),
		categoryOf: make(map[string]string),
	}
	for _, cat := range categories {
		for _, name := range cat.Themes {
			if _, dup := ct.index[name]; dup {
				continue
			}
			ct.index[name] = len(ct.themes)
			ct.themes = append(ct.themes, name)
			ct.categoryOf[name] = cat.Name
		}
	}
	return ct
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Name: cat.Name, Themes: slices.Clone(cat.Themes)}
	}
	return out
}

// AllThemes returns every theme name in enumeration order.
func AllThemes() []string {
	return slices.Clone(c.themes)
}

// Count returns the number of themes in the catalog.
func Count() int {
	return len(c.themes)
}

// Contains reports whether name is a catalog theme.
func Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Position returns the zero-based enumeration position of a theme.
// The second result is false for names outside the catalog.
func Position(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// CategoryOf returns the category a theme belongs to.
func CategoryOf(name string) (string, bool) {
	cat, ok := c.categoryOf[name]
	return cat, ok
}

// ThemeAt resolves a 1-based display index to a theme name.
func ThemeAt(index int) (string, error) {
	if index < 1 || index > len(c.themes) {
		return "", fmt.Errorf("theme index %d out of range 1-%d", index, len(c.themes))
	}
	return c.themes[index-1], nil
}
