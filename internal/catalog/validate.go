package catalog

import (
	"fmt"
	"strings"
)

// validateCategories performs structural checks on the category enumeration.
// Returns a combined error describing all problems found, or nil if valid.
func validateCategories(categories []Category) error {
	var errs []string

	catSet := make(map[string]bool, len(categories))
	themeSet := make(map[string]string)

	for _, cat := range categories {
		if strings.TrimSpace(cat.Name) == "" {
			errs = append(errs, "category with empty name")
		}
		if catSet[cat.Name] {
			errs = append(errs, fmt.Sprintf("duplicate category: %q", cat.Name))
		}
		catSet[cat.Name] = true

		if len(cat.Themes) == 0 {
			errs = append(errs, fmt.Sprintf("category %q has no themes", cat.Name))
		}
		for _, name := range cat.Themes {
			if strings.TrimSpace(name) == "" {
				errs = append(errs, fmt.Sprintf("category %q has a theme with empty name", cat.Name))
				continue
			}
			if prev, ok := themeSet[name]; ok {
				errs = append(errs, fmt.Sprintf("theme %q listed in both %q and %q", name, prev, cat.Name))
				continue
			}
			themeSet[name] = cat.Name
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
