package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/stubgen/stubgen/core/config"
	"github.com/stubgen/stubgen/core/logger"
	"github.com/stubgen/stubgen/core/walker"
)

// Apply runs the configured find/replace rules over the files matching each
// rule's glob, relative to root. Rules run in order, so later rules see the
// output of earlier ones. Returns the files that were actually changed.
func Apply(root string, rules []config.PatchRule) ([]string, error) {
	changed := make(map[string]bool)

	for i, rule := range rules {
		if rule.Glob == "" || rule.Find == "" {
			return nil, fmt.Errorf("patch rule %d is missing glob or find", i)
		}

		var re *regexp.Regexp
		if rule.Regex {
			var err error
			re, err = regexp.Compile(rule.Find)
			if err != nil {
				return nil, fmt.Errorf("patch rule %d has a bad pattern %q: %w", i, rule.Find, err)
			}
		}

		files, err := walker.ExpandGlobs([]string{filepath.Join(root, rule.Glob)})
		if err != nil {
			return nil, err
		}

		for _, file := range files {
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", file, err)
			}

			src := string(data)
			var patched string
			if re != nil {
				patched = re.ReplaceAllString(src, rule.Replace)
			} else {
				patched = strings.ReplaceAll(src, rule.Find, rule.Replace)
			}

			if patched == src {
				continue
			}
			if err := os.WriteFile(file, []byte(patched), 0644); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", file, err)
			}
			logger.Debug("Patched %s (rule %d)", file, i)
			changed[file] = true
		}
	}

	var out []string
	for f := range changed {
		out = append(out, f)
	}
	sort.Strings(out)
	return out, nil
}
