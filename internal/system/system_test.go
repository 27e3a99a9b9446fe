package system

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulvramesh/cleanmac/internal/types"
)

func TestParseDF(t *testing.T) {
	out := `Filesystem     1024-blocks      Used Available Capacity  Mounted on
/dev/disk3s1s1   482797652  10250348 226718040     5%    /
/dev/disk3s5     482797652 240043568 226718040    52%    /System/Volumes/Data
map auto_home            0         0         0   100%    /System/Volumes/Data/home
/dev/disk5s1      1000000    250000    750000    25%    /Volumes/My Disk
garbage line
`
	vols := ParseDF(out)
	// The automounter line has a space in its name and no numeric columns.
	require.Len(t, vols, 3)
	assert.Equal(t, "/", vols[0].MountPoint)
	assert.Equal(t, "/dev/disk3s1s1", vols[0].Filesystem)
	assert.Equal(t, int64(482797652*1024), vols[0].Total)
	assert.Equal(t, "/Volumes/My Disk", vols[2].MountPoint)
	assert.InDelta(t, 25.0, vols[2].UsedPercent(), 0.001)
}

type recordingRunner struct {
	scripts []string
	err     error
}

func (r *recordingRunner) Run(_ context.Context, script string) (string, error) {
	r.scripts = append(r.scripts, script)
	return "", r.err
}

func TestProcesses(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no sh")
	}
	orig := execCommandContext
	t.Cleanup(func() { execCommandContext = orig })

	app := types.InstalledApp{Name: "Foo", BundleIdentifier: "com.example.foo", Path: "/Applications/Foo.app"}

	var args []string
	execCommandContext = func(ctx context.Context, name string, a ...string) *exec.Cmd {
		args = append([]string{name}, a...)
		return exec.CommandContext(ctx, "sh", "-c", "exit 0")
	}
	p := Processes{Runner: &recordingRunner{}}
	assert.True(t, p.IsRunning(context.Background(), app))
	assert.Equal(t, []string{"pgrep", "-f", "/Applications/Foo.app/Contents/MacOS/"}, args)

	execCommandContext = func(ctx context.Context, name string, a ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", "exit 1")
	}
	assert.False(t, p.IsRunning(context.Background(), app))
	assert.False(t, p.IsRunning(context.Background(), types.InstalledApp{}))

	runner := &recordingRunner{}
	require.NoError(t, Processes{Runner: runner}.Quit(context.Background(), app))
	assert.Equal(t, []string{`tell application id "com.example.foo" to quit`}, runner.scripts)

	err := Processes{Runner: &recordingRunner{err: errors.New("not running")}}.Quit(context.Background(), app)
	assert.ErrorContains(t, err, "quit Foo")
}
