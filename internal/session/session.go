// Package session holds the state the interactive front end renders.
//
// Methods that touch the disk or run scripts never mutate the session; they
// return an outcome that the owner applies with the matching Apply method.
// The TUI runs the former inside tea.Cmd goroutines and the latter in Update,
// so a session only ever has one writer.
package session

import (
	"context"

	"github.com/rahulvramesh/cleanmac/internal/types"
)

// AppSource discovers applications and their related files
type AppSource interface {
	ScanApplications(ctx context.Context) ([]types.InstalledApp, error)
	FindRelatedFiles(bundleID, appName string) []types.RelatedFile
}

// JunkSource discovers junk categories
type JunkSource interface {
	ScanJunk(ctx context.Context) ([]types.JunkCategory, error)
}

// Deleter removes paths, escalating as needed
type Deleter interface {
	Delete(ctx context.Context, paths []string) (types.DeleteResult, error)
}
