package scanner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rahulvramesh/cleanmac/internal/types"
	"github.com/rahulvramesh/cleanmac/internal/utils"
)

// ScanJunk scans every catalog location concurrently. Locations that do not
// exist or hold nothing are left out; the result is sorted by total size.
func (s *Scanner) ScanJunk(ctx context.Context) ([]types.JunkCategory, error) {
	var (
		mu         sync.Mutex
		categories []types.JunkCategory
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, loc := range s.Locations {
		loc := loc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			category, ok := s.ScanLocation(loc)
			if !ok {
				return nil
			}
			mu.Lock()
			categories = append(categories, category)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortCategories(categories)
	s.logger.Info("Junk scan complete", zap.Int("locations", len(s.Locations)), zap.Int("categories", len(categories)))
	return categories, nil
}

// ScanLocation lists one junk location. ok is false when the location is
// missing or has no non-empty entries.
func (s *Scanner) ScanLocation(loc JunkLocation) (types.JunkCategory, bool) {
	root := utils.ExpandHome(loc.Path, s.HomeDir)
	if _, err := os.Stat(root); err != nil {
		return types.JunkCategory{}, false
	}

	var items []types.JunkItem
	if loc.Whole {
		if size, _ := utils.GetDirSize(root); size > 0 {
			items = append(items, types.NewJunkItem(root, size))
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			s.logger.Debug("Cannot list junk location", zap.String("path", root), zap.Error(err))
			return types.JunkCategory{}, false
		}
		for _, entry := range entries {
			path := filepath.Join(root, entry.Name())
			size, _ := utils.GetDirSize(path)
			if size > 0 {
				items = append(items, types.NewJunkItem(path, size))
			}
		}
	}
	if len(items) == 0 {
		return types.JunkCategory{}, false
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Size > items[j].Size
	})
	return types.JunkCategory{
		ID:          uuid.NewString(),
		Name:        loc.Name,
		Icon:        loc.Icon,
		Description: loc.Description,
		Items:       items,
		Selected:    true,
	}, true
}

// SortCategories orders categories by descending total size
func SortCategories(categories []types.JunkCategory) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].TotalSize() > categories[j].TotalSize()
	})
}
