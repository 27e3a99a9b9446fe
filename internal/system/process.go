package system

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rahulvramesh/cleanmac/internal/trash"
	"github.com/rahulvramesh/cleanmac/internal/types"
)

// ProcessChecker detects and stops running applications
type ProcessChecker interface {
	IsRunning(ctx context.Context, app types.InstalledApp) bool
	Quit(ctx context.Context, app types.InstalledApp) error
}

// Processes finds app processes with pgrep and quits them through AppleScript
type Processes struct {
	Runner trash.ScriptRunner
}

var _ ProcessChecker = Processes{}

// IsRunning reports whether any process executes from the app's bundle
func (p Processes) IsRunning(ctx context.Context, app types.InstalledApp) bool {
	if app.Path == "" {
		return false
	}
	pattern := filepath.Join(app.Path, "Contents", "MacOS") + "/"
	// pgrep exits 1 when nothing matches
	return execCommandContext(ctx, "pgrep", "-f", pattern).Run() == nil
}

// Quit asks the application to quit by bundle identifier
func (p Processes) Quit(ctx context.Context, app types.InstalledApp) error {
	if p.Runner == nil {
		return errors.New("no script runner")
	}
	id := strings.ReplaceAll(app.BundleIdentifier, `"`, `\"`)
	if _, err := p.Runner.Run(ctx, `tell application id "`+id+`" to quit`); err != nil {
		return fmt.Errorf("quit %s: %w", app.Name, err)
	}
	return nil
}

// NotRunning reports every app as stopped
type NotRunning struct{}

func (NotRunning) IsRunning(context.Context, types.InstalledApp) bool { return false }
func (NotRunning) Quit(context.Context, types.InstalledApp) error     { return nil }
