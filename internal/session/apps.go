package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rahulvramesh/cleanmac/internal/scanner"
	"github.com/rahulvramesh/cleanmac/internal/system"
	"github.com/rahulvramesh/cleanmac/internal/types"
)

// QuitGrace is how long a force delete waits after asking the app to quit
const QuitGrace = 500 * time.Millisecond

// Apps is the application list and uninstall state
type Apps struct {
	Installed  []types.InstalledApp
	Selected   *types.InstalledApp
	Loading    bool
	Deleting   bool
	SearchText string
	Sort       scanner.SortOption

	DeleteError              string
	ShowFullDiskAccessPrompt bool
	SkippedFilesCount        int
	RunningAppName           string
	ShowRunningAppWarning    bool

	source    AppSource
	deleter   Deleter
	processes system.ProcessChecker
	logger    *zap.Logger
	sleep     func(ctx context.Context, d time.Duration)
}

// DeleteOutcome is the result of uninstalling one application
type DeleteOutcome struct {
	AppID   string
	AppName string
	AppPath string
	Result  types.DeleteResult
	Running bool // nothing was deleted because the app is running
	Err     error
}

// BundleKept reports whether the app bundle itself survived the deletion
func (o DeleteOutcome) BundleKept() bool {
	return o.AppPath != "" && o.Result.IsProtected(o.AppPath)
}

// NewApps creates an application session
func NewApps(source AppSource, deleter Deleter, processes system.ProcessChecker, logger *zap.Logger) *Apps {
	if processes == nil {
		processes = system.NotRunning{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Apps{
		Sort:      scanner.SortByName,
		source:    source,
		deleter:   deleter,
		processes: processes,
		logger:    logger,
		sleep:     sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Load scans for installed applications
func (a *Apps) Load(ctx context.Context) ([]types.InstalledApp, error) {
	return a.source.ScanApplications(ctx)
}

// ApplyLoaded stores a finished scan
func (a *Apps) ApplyLoaded(apps []types.InstalledApp, err error) {
	a.Loading = false
	if err != nil {
		a.logger.Error("Application scan failed", zap.Error(err))
		return
	}
	a.Installed = apps
	if a.Selected != nil {
		if app, ok := a.find(a.Selected.ID); ok {
			a.Selected = &app
		} else {
			a.Selected = nil
		}
	}
}

// Filtered returns installed apps matching SearchText in the current sort order
func (a *Apps) Filtered() []types.InstalledApp {
	matched := scanner.FilterApps(a.Installed, a.SearchText)
	out := make([]types.InstalledApp, len(matched))
	copy(out, matched)
	scanner.SortApps(out, a.Sort)
	return out
}

// Select makes app the current selection
func (a *Apps) Select(app types.InstalledApp) {
	a.Selected = &app
	a.DeleteError = ""
	a.ShowRunningAppWarning = false
}

// SelectByID selects an installed app by ID and reports whether it exists
func (a *Apps) SelectByID(id string) bool {
	app, ok := a.find(id)
	if ok {
		a.Select(app)
	}
	return ok
}

func (a *Apps) find(id string) (types.InstalledApp, bool) {
	for _, app := range a.Installed {
		if app.ID == id {
			return app, true
		}
	}
	return types.InstalledApp{}, false
}

// Relocate searches for the app's related files again
func (a *Apps) Relocate(app types.InstalledApp) []types.RelatedFile {
	return a.source.FindRelatedFiles(app.BundleIdentifier, app.Name)
}

// ApplyRelated replaces the related files of the app with the given ID
func (a *Apps) ApplyRelated(appID string, files []types.RelatedFile) {
	if a.Selected != nil && a.Selected.ID == appID {
		a.Selected.RelatedFiles = files
	}
	for i := range a.Installed {
		if a.Installed[i].ID == appID {
			a.Installed[i].RelatedFiles = files
		}
	}
}

// ToggleFile flips the selection of the selected app's related file at index
func (a *Apps) ToggleFile(index int) {
	if a.Selected == nil || index < 0 || index >= len(a.Selected.RelatedFiles) {
		return
	}
	files := make([]types.RelatedFile, len(a.Selected.RelatedFiles))
	copy(files, a.Selected.RelatedFiles)
	files[index].Selected = !files[index].Selected
	a.Selected.RelatedFiles = files
}

// PathsToDelete lists the selected related files followed by the bundle
func PathsToDelete(app types.InstalledApp) []string {
	var paths []string
	for _, f := range app.RelatedFiles {
		if f.Selected {
			paths = append(paths, f.Path)
		}
	}
	return append(paths, app.Path)
}

// BeginDelete marks a delete as in progress
func (a *Apps) BeginDelete() {
	a.Deleting = true
	a.DeleteError = ""
	a.ShowRunningAppWarning = false
}

// Delete uninstalls app. Without force a running app is left untouched and
// the outcome reports Running. With force the app is asked to quit first.
func (a *Apps) Delete(ctx context.Context, app types.InstalledApp, force bool) DeleteOutcome {
	outcome := DeleteOutcome{AppID: app.ID, AppName: app.Name, AppPath: app.Path}

	if a.processes.IsRunning(ctx, app) {
		if !force {
			outcome.Running = true
			return outcome
		}
		if err := a.processes.Quit(ctx, app); err != nil {
			a.logger.Warn("Quit failed", zap.String("app", app.Name), zap.Error(err))
		}
		a.sleep(ctx, QuitGrace)
	}

	paths := PathsToDelete(app)
	a.logger.Info("Uninstalling", zap.String("app", app.Name), zap.Int("paths", len(paths)))
	outcome.Result, outcome.Err = a.deleter.Delete(ctx, paths)
	return outcome
}

// DeleteSelected uninstalls the current selection
func (a *Apps) DeleteSelected(ctx context.Context, force bool) DeleteOutcome {
	if a.Selected == nil {
		return DeleteOutcome{}
	}
	return a.Delete(ctx, *a.Selected, force)
}

// ApplyDeleteResult records a finished delete. The app leaves the list only
// when the deletion did not fail and its bundle is not among the protected paths.
func (a *Apps) ApplyDeleteResult(outcome DeleteOutcome) {
	a.Deleting = false

	if outcome.Running {
		a.RunningAppName = outcome.AppName
		a.ShowRunningAppWarning = true
		return
	}
	if outcome.Err != nil {
		a.DeleteError = outcome.Err.Error()
		return
	}

	a.ShowRunningAppWarning = false
	if !outcome.BundleKept() {
		kept := make([]types.InstalledApp, 0, len(a.Installed))
		for _, app := range a.Installed {
			if app.ID != outcome.AppID {
				kept = append(kept, app)
			}
		}
		a.Installed = kept
	}
	if a.Selected != nil && a.Selected.ID == outcome.AppID {
		a.Selected = nil
	}

	if outcome.Result.NeedsFullDiskAccess() {
		a.SkippedFilesCount = len(outcome.Result.Protected)
		a.ShowFullDiskAccessPrompt = true
	}
}

// DismissFullDiskAccessPrompt hides the protected-files notice
func (a *Apps) DismissFullDiskAccessPrompt() {
	a.ShowFullDiskAccessPrompt = false
	a.SkippedFilesCount = 0
}
