package etl

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover expands glob patterns (with ** support) into a sorted,
// de-duplicated list of source files.
func Discover(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(filepath.ToSlash(pattern))
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// GuessFormat infers a file's layout from its name, following the
// Elections Project naming conventions. Returns "" when the name gives
// no signal and the caller must pass --format explicitly.
func GuessFormat(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "census"), strings.Contains(name, "a5a"), strings.Contains(name, "a5b"):
		return FormatCensus
	case strings.Contains(name, "1980"):
		return FormatMultiYear
	case strings.Contains(name, "2024"):
		return FormatWide2024
	case strings.Contains(name, "2016"), strings.Contains(name, "2020"):
		return FormatSingleYear
	}
	return ""
}

// YearFromName extracts the election year from a single-year file name,
// e.g. "2016 November General Election - Turnout Rates.csv".
func YearFromName(path string) int {
	name := filepath.Base(path)
	for i := 0; i+4 <= len(name); i++ {
		if y := parseYearToken(name[i : i+4]); y != 0 {
			return y
		}
	}
	return 0
}

func parseYearToken(s string) int {
	if len(s) != 4 {
		return 0
	}
	y := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		y = y*10 + int(c-'0')
	}
	if y < 1900 || y > 2100 {
		return 0
	}
	return y
}
