// Package fragment discovers pull request numbers from towncrier-style
// change fragments.
package fragment

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TemplateStem is the stem of the towncrier template kept alongside the
// fragments. It is never a pull request.
const TemplateStem = "towncrier_template"

// Dir returns the change fragment directory of a project root.
func Dir(projectRoot string) string {
	return filepath.Join(projectRoot, "doc", "source", "upcoming_changes")
}

// Scan returns the pull request numbers encoded in the names of the regular
// files in dir. A file named "123.feature.rst" yields 123. Files whose stem
// is not purely decimal are ignored. An empty result is not an error.
func Scan(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading fragment directory: %w", err)
	}

	numbers := []int{}
	for _, entry := range entries {
		stem, _, _ := strings.Cut(entry.Name(), ".")
		if stem == TemplateStem || !isDigits(stem) {
			continue
		}

		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		n, err := strconv.Atoi(stem)
		if err != nil {
			// Too large for an int; no real PR number looks like that.
			continue
		}
		numbers = append(numbers, n)
	}

	return numbers, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
