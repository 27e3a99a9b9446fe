package trash

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rahulvramesh/cleanmac/internal/types"
)

var execCommandContext = exec.CommandContext

// ScriptRunner executes an AppleScript program and returns what it printed
type ScriptRunner interface {
	Run(ctx context.Context, script string) (string, error)
}

// OSAScriptRunner runs scripts through /usr/bin/osascript
type OSAScriptRunner struct {
	Binary string
}

var _ ScriptRunner = OSAScriptRunner{}

// Run executes script. There is no timeout: an administrator prompt may
// legitimately wait for the user.
func (r OSAScriptRunner) Run(ctx context.Context, script string) (string, error) {
	bin := r.Binary
	if bin == "" {
		bin = "osascript"
	}

	//nolint:gosec // G204: scripts are built from quoted paths only
	cmd := execCommandContext(ctx, bin, "-e", script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return stdout.String(), fmt.Errorf("%s: %w", msg, err)
	}
	return stdout.String(), nil
}

// ScriptError is a scripting failure other than the user cancelling a prompt
type ScriptError struct {
	Tier    types.Tier
	Message string
	Output  string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s deletion failed: %s", e.Tier, e.Message)
}

// IsCancelled reports whether err came from the user dismissing a prompt
func IsCancelled(err error) bool {
	if err == nil {
		return false
	}
	var se *ScriptError
	msg := err.Error()
	if errors.As(err, &se) {
		msg = se.Message
	}
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "(-128)") ||
		strings.Contains(lower, "user canceled") ||
		strings.Contains(lower, "user cancelled")
}
