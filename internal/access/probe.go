// Package access detects whether the process has been granted Full Disk Access.
package access

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var (
	osWriteFile = os.WriteFile
	osRemove    = os.Remove
)

// Prober reports whether elevated file-system access is available
type Prober interface {
	HasElevatedAccess() bool
}

// FileProbe infers access by writing and removing a marker file inside a
// directory that is normally restricted. It can report false when only the
// probe directory is restricted.
type FileProbe struct {
	Dir string
}

var _ Prober = FileProbe{}

// NewFileProbe probes ~/Library/Containers of the given home directory
func NewFileProbe(homeDir string) FileProbe {
	return FileProbe{Dir: filepath.Join(homeDir, "Library", "Containers")}
}

func (p FileProbe) HasElevatedAccess() bool {
	marker := filepath.Join(p.Dir, ".test_fda_"+uuid.NewString())
	if err := osWriteFile(marker, []byte("test"), 0o600); err != nil {
		return false
	}
	return osRemove(marker) == nil
}

// Static always answers the same way
type Static bool

func (s Static) HasElevatedAccess() bool {
	return bool(s)
}
