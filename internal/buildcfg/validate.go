package buildcfg

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Issue carries structured validation context: the dotted path of the
// offending field and the underlying sentinel error.
type Issue struct {
	Field string
	Err   error
}

func (i *Issue) Error() string {
	if i == nil || i.Err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", i.Field, i.Err)
}

func (i *Issue) Unwrap() error {
	if i == nil {
		return nil
	}
	return i.Err
}

// Issues reports every structural problem in the record. An empty slice
// means the record is valid.
func (c Config) Issues() []Issue {
	var issues []Issue

	if len(c.Content) == 0 {
		issues = append(issues, Issue{Field: "content", Err: ErrMissingContent})
	}
	for idx, pattern := range c.Content {
		if !doublestar.ValidatePattern(normalizePattern(pattern)) {
			issues = append(issues, Issue{
				Field: fmt.Sprintf("content[%d]", idx),
				Err:   fmt.Errorf("%w: %q", ErrInvalidGlob, pattern),
			})
		}
	}

	for name, palette := range c.Theme.Extend.Colors {
		if strings.TrimSpace(name) == "" {
			issues = append(issues, Issue{Field: "theme.extend.colors", Err: ErrEmptyName})
			continue
		}
		for shade, value := range palette {
			field := fmt.Sprintf("theme.extend.colors.%s.%s", name, shade)
			if strings.TrimSpace(shade) == "" {
				issues = append(issues, Issue{Field: fmt.Sprintf("theme.extend.colors.%s", name), Err: ErrEmptyName})
				continue
			}
			if !hexColorPattern.MatchString(value) {
				issues = append(issues, Issue{
					Field: field,
					Err:   fmt.Errorf("%w, got %q", ErrInvalidColor, value),
				})
			}
		}
	}

	return issues
}

// Validate returns nil for a structurally valid record, or all issues joined
// into a single error. Individual issues remain reachable via errors.Is
// against the package sentinels.
func (c Config) Validate() error {
	issues := c.Issues()
	if len(issues) == 0 {
		return nil
	}
	errs := make([]error, len(issues))
	for idx := range issues {
		issue := issues[idx]
		errs[idx] = &issue
	}
	return errors.Join(errs...)
}

// normalizePattern strips the conventional "./" prefix so patterns compare
// against repo-relative slash paths.
func normalizePattern(pattern string) string {
	return strings.TrimPrefix(pattern, "./")
}
