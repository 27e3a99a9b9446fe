package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulvramesh/cleanmac/internal/scanner"
	"github.com/rahulvramesh/cleanmac/internal/types"
)

type fakeSource struct {
	apps    []types.InstalledApp
	related []types.RelatedFile
	junk    []types.JunkCategory
	err     error
	scans   int
}

func (f *fakeSource) ScanApplications(context.Context) ([]types.InstalledApp, error) {
	return f.apps, f.err
}

func (f *fakeSource) FindRelatedFiles(string, string) []types.RelatedFile {
	return f.related
}

func (f *fakeSource) ScanJunk(context.Context) ([]types.JunkCategory, error) {
	f.scans++
	return f.junk, f.err
}

type fakeDeleter struct {
	paths  [][]string
	result types.DeleteResult
	err    error
}

func (f *fakeDeleter) Delete(_ context.Context, paths []string) (types.DeleteResult, error) {
	f.paths = append(f.paths, paths)
	return f.result, f.err
}

type fakeProcesses struct {
	running bool
	quits   int
}

func (f *fakeProcesses) IsRunning(context.Context, types.InstalledApp) bool { return f.running }

func (f *fakeProcesses) Quit(context.Context, types.InstalledApp) error {
	f.quits++
	f.running = false
	return nil
}

func testApps() []types.InstalledApp {
	return []types.InstalledApp{
		{ID: "a", Name: "alpha", Path: "/Applications/alpha.app", Size: 10},
		{ID: "b", Name: "Beta", Path: "/Applications/Beta.app", Size: 30, RelatedFiles: []types.RelatedFile{
			{ID: "b1", Path: "/lib/b1", Size: 100, Selected: true},
			{ID: "b2", Path: "/lib/b2", Size: 5, Selected: false},
			{ID: "b3", Path: "/lib/b3", Size: 1, Selected: true},
		}},
		{ID: "c", Name: "gamma", Path: "/Applications/gamma.app", Size: 20},
	}
}

func loadedApps(t *testing.T, deleter Deleter, procs *fakeProcesses) *Apps {
	t.Helper()
	source := &fakeSource{apps: testApps()}
	a := NewApps(source, deleter, procs, nil)
	a.sleep = func(context.Context, time.Duration) {}
	a.Loading = true
	apps, err := a.Load(context.Background())
	a.ApplyLoaded(apps, err)
	require.False(t, a.Loading)
	require.Len(t, a.Installed, 3)
	return a
}

func names(apps []types.InstalledApp) []string {
	out := make([]string, len(apps))
	for i, app := range apps {
		out[i] = app.Name
	}
	return out
}

func TestApps_FilteredAndSorted(t *testing.T) {
	a := loadedApps(t, &fakeDeleter{}, &fakeProcesses{})

	assert.Equal(t, []string{"alpha", "Beta", "gamma"}, names(a.Filtered()))

	a.Sort = scanner.SortBySize
	assert.Equal(t, []string{"Beta", "gamma", "alpha"}, names(a.Filtered()))

	a.Sort = scanner.SortByTotalSize
	assert.Equal(t, "Beta", a.Filtered()[0].Name)

	a.SearchText = "MM"
	a.Sort = scanner.SortByName
	assert.Equal(t, []string{"gamma"}, names(a.Filtered()))

	// Filtering never reorders the underlying list.
	assert.Equal(t, []string{"alpha", "Beta", "gamma"}, names(a.Installed))
}

func TestApps_LoadError(t *testing.T) {
	a := NewApps(&fakeSource{err: errors.New("boom")}, &fakeDeleter{}, nil, nil)
	a.Loading = true
	apps, err := a.Load(context.Background())
	a.ApplyLoaded(apps, err)
	assert.False(t, a.Loading)
	assert.Empty(t, a.Installed)
}

func TestPathsToDelete(t *testing.T) {
	app := testApps()[1]
	assert.Equal(t, []string{"/lib/b1", "/lib/b3", "/Applications/Beta.app"}, PathsToDelete(app))
	assert.Equal(t, []string{"/Applications/alpha.app"}, PathsToDelete(testApps()[0]))
}

func TestApps_ToggleFile(t *testing.T) {
	a := loadedApps(t, &fakeDeleter{}, &fakeProcesses{})
	require.True(t, a.SelectByID("b"))

	a.ToggleFile(1)
	a.ToggleFile(0)
	a.ToggleFile(99)
	a.ToggleFile(-1)
	assert.False(t, a.Selected.RelatedFiles[0].Selected)
	assert.True(t, a.Selected.RelatedFiles[1].Selected)
	assert.Equal(t, []string{"/lib/b2", "/lib/b3", "/Applications/Beta.app"}, PathsToDelete(*a.Selected))

	// The installed list keeps its own copy.
	assert.True(t, a.Installed[1].RelatedFiles[0].Selected)

	assert.False(t, a.SelectByID("missing"))
}

func TestApps_Relocate(t *testing.T) {
	source := &fakeSource{apps: testApps(), related: []types.RelatedFile{{ID: "n", Path: "/new"}}}
	a := NewApps(source, &fakeDeleter{}, nil, nil)
	apps, _ := a.Load(context.Background())
	a.ApplyLoaded(apps, nil)
	require.True(t, a.SelectByID("a"))

	files := a.Relocate(*a.Selected)
	a.ApplyRelated("a", files)
	assert.Equal(t, "/new", a.Selected.RelatedFiles[0].Path)
	assert.Equal(t, "/new", a.Installed[0].RelatedFiles[0].Path)
}

func TestApps_DeleteSuccess(t *testing.T) {
	deleter := &fakeDeleter{result: types.DeleteResult{Removed: []string{"/Applications/Beta.app"}}}
	a := loadedApps(t, deleter, &fakeProcesses{})
	require.True(t, a.SelectByID("b"))

	a.BeginDelete()
	assert.True(t, a.Deleting)
	outcome := a.DeleteSelected(context.Background(), false)
	a.ApplyDeleteResult(outcome)

	assert.False(t, a.Deleting)
	assert.Nil(t, a.Selected)
	assert.Equal(t, []string{"alpha", "gamma"}, names(a.Installed))
	assert.Empty(t, a.DeleteError)
	assert.False(t, a.ShowFullDiskAccessPrompt)
	require.Len(t, deleter.paths, 1)
	assert.Equal(t, []string{"/lib/b1", "/lib/b3", "/Applications/Beta.app"}, deleter.paths[0])
}

func TestApps_DeleteProtected(t *testing.T) {
	deleter := &fakeDeleter{result: types.DeleteResult{Protected: []string{"/lib/b1", "/lib/b3"}}}
	a := loadedApps(t, deleter, &fakeProcesses{})
	require.True(t, a.SelectByID("b"))

	a.ApplyDeleteResult(a.DeleteSelected(context.Background(), false))
	assert.True(t, a.ShowFullDiskAccessPrompt)
	assert.Equal(t, 2, a.SkippedFilesCount)
	assert.Len(t, a.Installed, 2)

	a.DismissFullDiskAccessPrompt()
	assert.False(t, a.ShowFullDiskAccessPrompt)
	assert.Zero(t, a.SkippedFilesCount)
}

func TestApps_DeleteProtectedBundleStaysListed(t *testing.T) {
	deleter := &fakeDeleter{result: types.DeleteResult{
		Requested: []string{"/Applications/gamma.app"},
		Protected: []string{"/Applications/gamma.app"},
	}}
	a := loadedApps(t, deleter, &fakeProcesses{})
	require.True(t, a.SelectByID("c"))

	outcome := a.DeleteSelected(context.Background(), false)
	assert.Equal(t, "/Applications/gamma.app", outcome.AppPath)
	assert.True(t, outcome.BundleKept())
	a.ApplyDeleteResult(outcome)

	assert.Empty(t, a.DeleteError)
	assert.Equal(t, []string{"alpha", "Beta", "gamma"}, names(a.Installed))
	assert.True(t, a.ShowFullDiskAccessPrompt)
	assert.Equal(t, 1, a.SkippedFilesCount)
}

func TestApps_DeleteError(t *testing.T) {
	deleter := &fakeDeleter{err: errors.New("admin deletion failed: boom")}
	a := loadedApps(t, deleter, &fakeProcesses{})
	require.True(t, a.SelectByID("b"))

	a.BeginDelete()
	a.ApplyDeleteResult(a.DeleteSelected(context.Background(), false))
	assert.Equal(t, "admin deletion failed: boom", a.DeleteError)
	assert.Len(t, a.Installed, 3)
	require.NotNil(t, a.Selected)
	assert.False(t, a.Deleting)
}

func TestApps_RunningApp(t *testing.T) {
	deleter := &fakeDeleter{}
	procs := &fakeProcesses{running: true}
	a := loadedApps(t, deleter, procs)
	require.True(t, a.SelectByID("a"))

	a.ApplyDeleteResult(a.DeleteSelected(context.Background(), false))
	assert.True(t, a.ShowRunningAppWarning)
	assert.Equal(t, "alpha", a.RunningAppName)
	assert.Empty(t, deleter.paths)
	assert.Len(t, a.Installed, 3)

	var slept time.Duration
	a.sleep = func(_ context.Context, d time.Duration) { slept = d }
	a.BeginDelete()
	assert.False(t, a.ShowRunningAppWarning)
	a.ApplyDeleteResult(a.DeleteSelected(context.Background(), true))
	assert.Equal(t, 1, procs.quits)
	assert.Equal(t, QuitGrace, slept)
	assert.Len(t, deleter.paths, 1)
	assert.Len(t, a.Installed, 2)
}

func TestApps_DeleteWithoutSelection(t *testing.T) {
	deleter := &fakeDeleter{}
	a := loadedApps(t, deleter, &fakeProcesses{})
	outcome := a.DeleteSelected(context.Background(), false)
	assert.Empty(t, outcome.AppID)
	assert.Empty(t, deleter.paths)
}

func testCategories() []types.JunkCategory {
	return []types.JunkCategory{
		{ID: "c1", Name: "Caches", Selected: true, Items: []types.JunkItem{
			{ID: "i1", Path: "/c/1", Size: 10, Selected: true},
			{ID: "i2", Path: "/c/2", Size: 20, Selected: true},
		}},
		{ID: "c2", Name: "Logs", Selected: true, Items: []types.JunkItem{
			{ID: "i3", Path: "/l/3", Size: 5, Selected: true},
		}},
	}
}

func TestJunk_Toggles(t *testing.T) {
	j := NewJunk(&fakeSource{junk: testCategories()}, &fakeDeleter{}, nil)
	j.Scanning = true
	cats, err := j.Scan(context.Background())
	j.ApplyScan(cats, err)
	require.False(t, j.Scanning)
	assert.Equal(t, int64(35), j.TotalSelectedSize())

	j.ToggleItem("c1", "i1")
	assert.False(t, j.Categories[0].Selected)
	assert.Equal(t, int64(25), j.TotalSelectedSize())

	j.ToggleItem("c1", "i1")
	assert.True(t, j.Categories[0].Selected)

	j.ToggleCategory("c1")
	assert.False(t, j.Categories[0].Selected)
	for _, item := range j.Categories[0].Items {
		assert.False(t, item.Selected)
	}
	assert.Equal(t, []string{"/l/3"}, j.SelectedPaths())

	j.ToggleCategory("c1")
	assert.Equal(t, []string{"/c/1", "/c/2", "/l/3"}, j.SelectedPaths())

	j.ToggleItem("nope", "i1")
	j.ToggleCategory("nope")
	assert.Equal(t, int64(35), j.TotalSelectedSize())
}

func TestJunk_ToggleItemKeepsCategoryInSync(t *testing.T) {
	j := NewJunk(&fakeSource{}, &fakeDeleter{}, nil)
	j.ApplyScan(testCategories(), nil)

	sequence := []string{"i1", "i2", "i1", "i2", "i2", "i1"}
	for _, id := range sequence {
		j.ToggleItem("c1", id)
		c := j.Categories[0]
		want := c.Items[0].Selected && c.Items[1].Selected
		assert.Equal(t, want, c.Selected, "after toggling %s", id)
	}
}

func TestJunk_Clean(t *testing.T) {
	rescanned := []types.JunkCategory{testCategories()[1]}
	source := &fakeSource{junk: rescanned}
	deleter := &fakeDeleter{result: types.DeleteResult{Removed: []string{"/c/1", "/c/2"}}}
	j := NewJunk(source, deleter, nil)
	j.ApplyScan(testCategories(), nil)
	j.ToggleCategory("c2")

	j.BeginClean()
	assert.True(t, j.Cleaning)
	j.ApplyClean(j.Clean(context.Background(), j.SelectedPaths()))

	assert.False(t, j.Cleaning)
	assert.Empty(t, j.CleanError)
	require.Len(t, deleter.paths, 1)
	assert.Equal(t, []string{"/c/1", "/c/2"}, deleter.paths[0])
	assert.Equal(t, 1, source.scans)
	assert.Equal(t, rescanned, j.Categories)
	require.NotNil(t, j.LastResult)
	assert.Len(t, j.LastResult.Removed, 2)
}

func TestJunk_CleanError(t *testing.T) {
	deleter := &fakeDeleter{err: errors.New("finder deletion failed")}
	j := NewJunk(&fakeSource{junk: testCategories()}, deleter, nil)
	j.ApplyScan(testCategories(), nil)

	j.ApplyClean(j.Clean(context.Background(), j.SelectedPaths()))
	assert.Equal(t, "finder deletion failed", j.CleanError)
	assert.Len(t, j.Categories, 2)
}

func TestJunk_CleanNothingSelected(t *testing.T) {
	source := &fakeSource{}
	deleter := &fakeDeleter{}
	j := NewJunk(source, deleter, nil)

	j.ApplyClean(j.Clean(context.Background(), nil))
	assert.Empty(t, deleter.paths)
	assert.Equal(t, 1, source.scans)
}

func TestJunk_SelectedPathsSkipsNestedItems(t *testing.T) {
	j := NewJunk(&fakeSource{}, &fakeDeleter{}, nil)
	j.ApplyScan([]types.JunkCategory{
		{ID: "caches", Name: "User Caches", Selected: true, Items: []types.JunkItem{
			{ID: "brew", Path: "/home/Library/Caches/Homebrew", Selected: true},
			{ID: "safari", Path: "/home/Library/Caches/com.apple.Safari", Selected: true},
		}},
		{ID: "homebrew", Name: "Homebrew Cache", Selected: true, Items: []types.JunkItem{
			{ID: "downloads", Path: "/home/Library/Caches/Homebrew/downloads", Selected: true},
		}},
		{ID: "other", Name: "Other", Selected: true, Items: []types.JunkItem{
			{ID: "sibling", Path: "/home/Library/Caches/Homebrew2", Selected: true},
			{ID: "dup", Path: "/home/Library/Caches/com.apple.Safari", Selected: true},
		}},
	}, nil)

	assert.Equal(t, []string{
		"/home/Library/Caches/Homebrew",
		"/home/Library/Caches/com.apple.Safari",
		"/home/Library/Caches/Homebrew2",
	}, j.SelectedPaths())

	j.ToggleItem("caches", "brew")
	assert.Equal(t, []string{
		"/home/Library/Caches/com.apple.Safari",
		"/home/Library/Caches/Homebrew/downloads",
		"/home/Library/Caches/Homebrew2",
	}, j.SelectedPaths())
}
