package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

var osLstat = os.Lstat

// GetDirSize calculates the on-disk size of a file or directory tree.
// Hidden descendants are skipped and unreadable entries count as zero.
// Symlinks are not followed, so a link contributes only its own size.
func GetDirSize(path string) (int64, error) {
	info, err := osLstat(path)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return fileSize(info), nil
	}

	var size int64
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip entries we can't access
		}
		if p == path {
			return nil
		}
		if IsHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		size += fileSize(fi)
		return nil
	})
	return size, nil
}

// FileSize returns the logical size recorded for path, or 0
func FileSize(path string) int64 {
	info, err := osLstat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// Exists reports whether anything exists at path, without following symlinks
func Exists(path string) bool {
	_, err := osLstat(path)
	return err == nil
}

// IsHidden reports whether a file name is a dot file
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// TruncatePath truncates a path if it's too long
func TruncatePath(path string, maxLen int) string {
	if maxLen <= 3 || len(path) <= maxLen {
		return path
	}
	return path[:maxLen-3] + "..."
}

// FormatFileSize formats file size using humanize
func FormatFileSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.Bytes(uint64(size))
}

// ExpandHome expands a leading ~ against home
func ExpandHome(p, home string) string {
	if p == "" || home == "" {
		return p
	}
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, strings.TrimPrefix(p, "~/"))
	}
	return p
}

// ContractHome replaces a leading home directory with ~
func ContractHome(p, home string) string {
	if home == "" {
		return p
	}
	if p == home {
		return "~"
	}
	if strings.HasPrefix(p, home+string(filepath.Separator)) {
		return "~" + strings.TrimPrefix(p, home)
	}
	return p
}
