package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rahulvramesh/cleanmac/internal/types"
	"github.com/rahulvramesh/cleanmac/internal/utils"
)

// SearchPath is a directory searched for files related to an application
type SearchPath struct {
	Dir  string
	Type types.FileType
}

// RelatedSearchPaths returns the Library directories searched for leftovers
func RelatedSearchPaths(homeDir string) []SearchPath {
	lib := filepath.Join(homeDir, "Library")
	return []SearchPath{
		{filepath.Join(lib, "Preferences"), types.FileTypePreferences},
		{filepath.Join(lib, "Caches"), types.FileTypeCache},
		{filepath.Join(lib, "Application Support"), types.FileTypeApplicationSupport},
		{filepath.Join(lib, "Logs"), types.FileTypeLogs},
		{filepath.Join(lib, "Containers"), types.FileTypeContainers},
		{filepath.Join(lib, "Saved Application State"), types.FileTypeSavedState},
		{filepath.Join(lib, "Cookies"), types.FileTypeCookies},
		{filepath.Join(lib, "Application Scripts"), types.FileTypeOther},
		{filepath.Join(lib, "Group Containers"), types.FileTypeContainers},
	}
}

// MatchTerms builds the names an application's leftovers may contain.
// Empty terms are dropped since they would match every entry.
func MatchTerms(bundleID, appName string) []string {
	candidates := []string{
		bundleID,
		strings.ToLower(bundleID),
		appName,
		strings.ToLower(appName),
		strings.ReplaceAll(appName, " ", ""),
		strings.ReplaceAll(appName, " ", "-"),
	}
	terms := make([]string, 0, len(candidates))
	for _, term := range candidates {
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// MatchingTerm returns the first term contained in name, ignoring case.
// Containment is a plain substring test, so "Notes" also matches "HotNotes".
func MatchingTerm(name string, terms []string) (string, bool) {
	lower := strings.ToLower(name)
	for _, term := range terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return term, true
		}
	}
	return "", false
}

// FindRelatedFiles locates preferences, caches and other leftovers of an app
func (s *Scanner) FindRelatedFiles(bundleID, appName string) []types.RelatedFile {
	terms := MatchTerms(bundleID, appName)
	if len(terms) == 0 {
		return nil
	}

	var related []types.RelatedFile
	seen := make(map[string]bool)

	for _, sp := range RelatedSearchPaths(s.HomeDir) {
		entries, err := os.ReadDir(sp.Dir)
		if err != nil {
			s.logger.Debug("Skipping search path", zap.String("path", sp.Dir), zap.Error(err))
			continue
		}

		for _, entry := range entries {
			if utils.IsHidden(entry.Name()) {
				continue
			}
			if _, ok := MatchingTerm(entry.Name(), terms); !ok {
				continue
			}

			path := filepath.Join(sp.Dir, entry.Name())
			if seen[path] {
				continue
			}
			size, err := utils.GetDirSize(path)
			if err != nil {
				continue // vanished since listing
			}
			if size == 0 {
				size = utils.FileSize(path)
			}
			seen[path] = true
			related = append(related, types.NewRelatedFile(path, size, sp.Type))
		}
	}

	sort.SliceStable(related, func(i, j int) bool {
		return related[i].Size > related[j].Size
	})
	return related
}
