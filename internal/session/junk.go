package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/rahulvramesh/cleanmac/internal/trash"
	"github.com/rahulvramesh/cleanmac/internal/types"
)

// Junk is the junk category list and clean state
type Junk struct {
	Categories []types.JunkCategory
	Scanning   bool
	Cleaning   bool
	CleanError string
	LastResult *types.DeleteResult

	source  JunkSource
	deleter Deleter
	logger  *zap.Logger
}

// CleanOutcome is the result of cleaning selected junk and rescanning
type CleanOutcome struct {
	Result     types.DeleteResult
	Categories []types.JunkCategory
	Err        error
	ScanErr    error
}

// NewJunk creates a junk session
func NewJunk(source JunkSource, deleter Deleter, logger *zap.Logger) *Junk {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Junk{source: source, deleter: deleter, logger: logger}
}

// Scan lists junk categories
func (j *Junk) Scan(ctx context.Context) ([]types.JunkCategory, error) {
	return j.source.ScanJunk(ctx)
}

// ApplyScan stores a finished scan
func (j *Junk) ApplyScan(categories []types.JunkCategory, err error) {
	j.Scanning = false
	if err != nil {
		j.logger.Error("Junk scan failed", zap.Error(err))
		return
	}
	j.Categories = categories
}

// TotalSelectedSize sums selected items across every category
func (j *Junk) TotalSelectedSize() int64 {
	var total int64
	for _, c := range j.Categories {
		total += c.TotalSize()
	}
	return total
}

// ToggleCategory flips a category and sets every item to match
func (j *Junk) ToggleCategory(categoryID string) {
	for i := range j.Categories {
		c := &j.Categories[i]
		if c.ID != categoryID {
			continue
		}
		c.Selected = !c.Selected
		for k := range c.Items {
			c.Items[k].Selected = c.Selected
		}
		return
	}
}

// ToggleItem flips one item. The category stays selected only while all of
// its items are.
func (j *Junk) ToggleItem(categoryID, itemID string) {
	for i := range j.Categories {
		c := &j.Categories[i]
		if c.ID != categoryID {
			continue
		}
		for k := range c.Items {
			if c.Items[k].ID == itemID {
				c.Items[k].Selected = !c.Items[k].Selected
				break
			}
		}
		c.Selected = allSelected(c.Items)
		return
	}
}

func allSelected(items []types.JunkItem) bool {
	for _, item := range items {
		if !item.Selected {
			return false
		}
	}
	return true
}

// SelectedPaths lists selected item paths in category order.
// Paths inside another selected path are left out since trashing the parent covers them.
func (j *Junk) SelectedPaths() []string {
	var paths []string
	seen := make(map[string]bool)
	for _, c := range j.Categories {
		for _, item := range c.Items {
			if item.Selected && !seen[item.Path] {
				seen[item.Path] = true
				paths = append(paths, item.Path)
			}
		}
	}
	return trash.PruneNested(paths)
}

// BeginClean marks a clean as in progress
func (j *Junk) BeginClean() {
	j.Cleaning = true
	j.CleanError = ""
}

// Clean deletes paths and rescans
func (j *Junk) Clean(ctx context.Context, paths []string) CleanOutcome {
	var outcome CleanOutcome
	if len(paths) > 0 {
		j.logger.Info("Cleaning junk", zap.Int("paths", len(paths)))
		outcome.Result, outcome.Err = j.deleter.Delete(ctx, paths)
	}
	outcome.Categories, outcome.ScanErr = j.source.ScanJunk(ctx)
	return outcome
}

// ApplyClean records a finished clean and the rescan that followed it
func (j *Junk) ApplyClean(outcome CleanOutcome) {
	j.Cleaning = false
	result := outcome.Result
	j.LastResult = &result
	if outcome.Err != nil {
		j.CleanError = outcome.Err.Error()
	}
	if outcome.ScanErr != nil {
		j.logger.Error("Rescan after clean failed", zap.Error(outcome.ScanErr))
		return
	}
	j.Categories = outcome.Categories
}
