package types

import "github.com/charmbracelet/bubbles/table"

// Messages

type AppsLoadedMsg struct {
	Apps []InstalledApp
	Err  error
}

type RelatedFilesMsg struct {
	AppID string
	Files []RelatedFile
}

type JunkScanCompleteMsg struct {
	Categories []JunkCategory
	Err        error
}

// AppDeleteCompleteMsg carries the outcome of uninstalling one app
type AppDeleteCompleteMsg struct {
	AppID   string
	AppName string
	AppPath string
	Result  DeleteResult
	Running bool // the app was running and nothing was deleted
	Err     error
}

// JunkCleanCompleteMsg carries the outcome of cleaning selected junk and
// the rescan that follows it
type JunkCleanCompleteMsg struct {
	Result     DeleteResult
	Categories []JunkCategory
	Err        error
	ScanErr    error
}

type AccessProbeMsg struct {
	Granted bool
}

type DiskUsageMsg struct {
	Table       table.Model
	HomeTotal   int64
	HomeFree    int64
	UsedPercent float64
}

type ErrMsg struct{ Err error }

func (e ErrMsg) Error() string { return e.Err.Error() }
