package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stubgen/stubgen/core/logger"
)

// ExpandGlobs resolves a list of glob patterns to a deduplicated, sorted file
// list. Plain paths pass through untouched so callers can mix pre-expanded
// file lists and patterns. `**` matches any number of path segments, the rest
// follows filepath.Match.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		switch {
		case strings.Contains(pattern, "**"):
			matches, err := expandRecursive(pattern)
			if err != nil {
				return nil, err
			}
			logger.Debug("Pattern %s matched %d files", pattern, len(matches))
			for _, m := range matches {
				add(m)
			}
		case strings.ContainsAny(pattern, "*?["):
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, fmt.Errorf("bad glob pattern %s: %w", pattern, err)
			}
			logger.Debug("Pattern %s matched %d files", pattern, len(matches))
			for _, m := range matches {
				if info, err := os.Stat(m); err == nil && !info.IsDir() {
					add(m)
				}
			}
		default:
			add(pattern)
		}
	}

	sort.Strings(files)
	return files, nil
}

// expandRecursive handles patterns containing `**` by walking from the fixed
// prefix and matching each file's relative path segment by segment.
func expandRecursive(pattern string) ([]string, error) {
	root, rest := splitPattern(pattern)

	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("bad glob root %s: %w", root, err)
	}

	patternSegs := strings.Split(filepath.ToSlash(rest), "/")
	var matches []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		pathSegs := strings.Split(filepath.ToSlash(rel), "/")
		ok, err := matchSegments(patternSegs, pathSegs)
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// splitPattern separates the leading literal directory part of a pattern from
// the part containing meta characters. "api/impl/**/*.py" -> ("api/impl", "**/*.py").
func splitPattern(pattern string) (root, rest string) {
	segs := strings.Split(filepath.ToSlash(pattern), "/")
	i := 0
	for ; i < len(segs); i++ {
		if strings.ContainsAny(segs[i], "*?[") {
			break
		}
	}
	if i == 0 {
		return ".", pattern
	}
	return filepath.FromSlash(strings.Join(segs[:i], "/")), strings.Join(segs[i:], "/")
}

func matchSegments(pattern, path []string) (bool, error) {
	if len(pattern) == 0 {
		return len(path) == 0, nil
	}

	if pattern[0] == "**" {
		// `**` may consume zero or more leading path segments.
		for skip := 0; skip <= len(path); skip++ {
			ok, err := matchSegments(pattern[1:], path[skip:])
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}

	if len(path) == 0 {
		return false, nil
	}
	ok, err := filepath.Match(pattern[0], path[0])
	if err != nil {
		return false, fmt.Errorf("bad glob segment %s: %w", pattern[0], err)
	}
	if !ok {
		return false, nil
	}
	return matchSegments(pattern[1:], path[1:])
}
