package scanner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rahulvramesh/cleanmac/internal/types"
	"github.com/rahulvramesh/cleanmac/internal/utils"
)

// SortOption orders the installed application list
type SortOption string

const (
	SortByName      SortOption = "name"
	SortBySize      SortOption = "size"
	SortByTotalSize SortOption = "total"
)

// ParseSortOption maps a user supplied value to a SortOption, defaulting to name
func ParseSortOption(s string) SortOption {
	switch SortOption(strings.ToLower(s)) {
	case SortBySize:
		return SortBySize
	case SortByTotalSize, "total_size", "totalsize":
		return SortByTotalSize
	default:
		return SortByName
	}
}

// ScanApplications enumerates .app bundles in the application directories
// and composes each with its size and related files. Unreadable bundles are
// skipped. The result is sorted by name, ignoring case.
func (s *Scanner) ScanApplications(ctx context.Context) ([]types.InstalledApp, error) {
	var bundles []string
	for _, dir := range s.AppDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.logger.Debug("Skipping application directory", zap.String("path", dir), zap.Error(err))
			continue
		}
		for _, entry := range entries {
			if utils.IsHidden(entry.Name()) || filepath.Ext(entry.Name()) != ".app" {
				continue
			}
			bundles = append(bundles, filepath.Join(dir, entry.Name()))
		}
	}

	apps := make([]*types.InstalledApp, len(bundles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i, bundle := range bundles {
		i, bundle := i, bundle
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			app, err := s.ReadApplication(bundle)
			if err != nil {
				s.logger.Warn("Skipping unreadable bundle", zap.String("path", bundle), zap.Error(err))
				return nil
			}
			apps[i] = &app
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]types.InstalledApp, 0, len(apps))
	for _, app := range apps {
		if app != nil {
			result = append(result, *app)
		}
	}
	SortApps(result, SortByName)

	s.logger.Info("Application scan complete", zap.Int("bundles", len(bundles)), zap.Int("apps", len(result)))
	return result, nil
}

// ReadApplication builds an InstalledApp for a single bundle
func (s *Scanner) ReadApplication(appPath string) (types.InstalledApp, error) {
	info, err := ReadBundleInfo(appPath)
	if err != nil {
		return types.InstalledApp{}, err
	}
	name := info.PreferredName(strings.TrimSuffix(filepath.Base(appPath), filepath.Ext(appPath)))
	size, _ := utils.GetDirSize(appPath)

	return types.InstalledApp{
		ID:               uuid.NewString(),
		Name:             name,
		BundleIdentifier: info.Identifier,
		Path:             appPath,
		Icon:             info.IconPath(appPath),
		Size:             size,
		RelatedFiles:     s.FindRelatedFiles(info.Identifier, name),
	}, nil
}

// SortApps sorts apps in place
func SortApps(apps []types.InstalledApp, by SortOption) {
	switch by {
	case SortBySize:
		sort.SliceStable(apps, func(i, j int) bool { return apps[i].Size > apps[j].Size })
	case SortByTotalSize:
		sort.SliceStable(apps, func(i, j int) bool { return apps[i].TotalSize() > apps[j].TotalSize() })
	default:
		sort.SliceStable(apps, func(i, j int) bool {
			a, b := strings.ToLower(apps[i].Name), strings.ToLower(apps[j].Name)
			if a != b {
				return a < b
			}
			return apps[i].Path < apps[j].Path
		})
	}
}

// FilterApps returns apps whose name contains query, ignoring case
func FilterApps(apps []types.InstalledApp, query string) []types.InstalledApp {
	if query == "" {
		return apps
	}
	q := strings.ToLower(query)
	var filtered []types.InstalledApp
	for _, app := range apps {
		if strings.Contains(strings.ToLower(app.Name), q) {
			filtered = append(filtered, app)
		}
	}
	return filtered
}
