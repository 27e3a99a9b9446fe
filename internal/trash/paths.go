package trash

import (
	"path/filepath"
	"sort"
	"strings"
)

// PruneNested drops every path that lies inside another path of the list.
// Order of the survivors is preserved.
func PruneNested(paths []string) []string {
	sorted := make([]string, 0, len(paths))
	for _, p := range paths {
		sorted = append(sorted, filepath.Clean(p))
	}
	sort.Strings(sorted)

	covered := make(map[string]bool)
	var roots []string
	for _, p := range sorted {
		if insideAny(p, roots) {
			covered[p] = true
			continue
		}
		roots = append(roots, p)
	}

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !covered[filepath.Clean(p)] {
			out = append(out, p)
		}
	}
	return out
}

func insideAny(path string, roots []string) bool {
	for _, r := range roots {
		if r == path {
			continue
		}
		prefix := r
		if !strings.HasSuffix(prefix, string(filepath.Separator)) {
			prefix += string(filepath.Separator)
		}
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
