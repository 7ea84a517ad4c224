package scanner

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// PatternMatcher handles glob pattern matching for file filtering.
// Patterns follow gitignore-style globbing, including ** for
// recursive matches.
type PatternMatcher struct{}

// NewPatternMatcher creates a new pattern matcher.
func NewPatternMatcher() *PatternMatcher {
	return &PatternMatcher{}
}

// ShouldIncludeFile determines if a file should be included based on patterns.
// Exclude patterns take precedence; when include patterns are present a file
// must match at least one of them.
func (pm *PatternMatcher) ShouldIncludeFile(
	relPath string,
	includePatterns []string,
	excludePatterns []string,
) bool {
	// Normalize path separators to forward slashes for consistent matching
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range excludePatterns {
		if pm.matchesPattern(relPath, pattern) {
			return false
		}
	}

	if len(includePatterns) > 0 {
		for _, pattern := range includePatterns {
			if pm.matchesPattern(relPath, pattern) {
				return true
			}
		}
		return false
	}

	return true
}

// matchesPattern checks if a path matches a glob pattern.
// Invalid patterns never match.
func (pm *PatternMatcher) matchesPattern(path, pattern string) bool {
	match, err := doublestar.Match(pattern, path)
	if err != nil {
		return false
	}
	return match
}

// ValidatePatterns validates that the given patterns are syntactically correct.
func (pm *PatternMatcher) ValidatePatterns(patterns []string) []error {
	var errs []error
	for i, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, &PatternError{
				Pattern: pattern,
				Index:   i,
				Err:     doublestar.ErrBadPattern,
			})
		}
	}
	return errs
}

// PatternError represents an error with a pattern.
type PatternError struct {
	Pattern string
	Index   int
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern at index %d '%s': %v", e.Index, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
