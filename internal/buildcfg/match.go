package buildcfg

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher answers whether a repo-relative path is covered by the record's
// content globs. Patterns form a union; declaration order has no effect on
// the outcome.
type Matcher struct {
	patterns []string
}

// NewMatcher builds a Matcher from the record's content globs. Every pattern
// must be valid glob syntax.
func NewMatcher(cfg Config) (*Matcher, error) {
	patterns := make([]string, 0, len(cfg.Content))
	for _, pattern := range cfg.Content {
		normalized := normalizePattern(pattern)
		if !doublestar.ValidatePattern(normalized) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidGlob, pattern)
		}
		patterns = append(patterns, normalized)
	}
	return &Matcher{patterns: patterns}, nil
}

// Covers reports whether path matches at least one content glob. The path is
// normalized to slash form and stripped of a leading "./" before matching.
func (m *Matcher) Covers(path string) bool {
	candidate := strings.TrimPrefix(filepath.ToSlash(path), "./")
	for _, pattern := range m.patterns {
		if ok, err := doublestar.Match(pattern, candidate); err == nil && ok {
			return true
		}
	}
	return false
}
