package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	osRename   = os.Rename
	osLstat    = os.Lstat
	osMkdirAll = os.MkdirAll
)

// Mover moves a single path to the Trash
type Mover interface {
	MoveToTrash(path string) error
	TrashDir() string
}

// HomeTrash moves items into a user's ~/.Trash by renaming them
type HomeTrash struct {
	Dir string
}

var _ Mover = HomeTrash{}

// NewHomeTrash returns the Trash of the given home directory
func NewHomeTrash(homeDir string) HomeTrash {
	return HomeTrash{Dir: filepath.Join(homeDir, ".Trash")}
}

func (t HomeTrash) TrashDir() string {
	return t.Dir
}

// MoveToTrash renames path into the Trash under a name that does not clash
// with anything already there. A rename across volumes fails, which leaves
// the path for a stronger strategy.
func (t HomeTrash) MoveToTrash(path string) error {
	if err := osMkdirAll(t.Dir, 0o700); err != nil {
		return fmt.Errorf("create trash dir: %w", err)
	}
	dst := t.destination(filepath.Base(path))
	if err := osRename(path, dst); err != nil {
		return fmt.Errorf("move %s to trash: %w", path, err)
	}
	return nil
}

func (t HomeTrash) destination(name string) string {
	dst := filepath.Join(t.Dir, name)
	if _, err := osLstat(dst); err != nil {
		return dst
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 2; ; i++ {
		dst = filepath.Join(t.Dir, stem+" "+strconv.Itoa(i)+ext)
		if _, err := osLstat(dst); err != nil {
			return dst
		}
	}
}
