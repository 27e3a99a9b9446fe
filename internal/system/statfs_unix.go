//go:build !windows

package system

import (
	"fmt"

	"golang.org/x/sys/unix"
)

var unixStatfs = unix.Statfs

// DiskUsage returns the capacity of the volume holding path
func DiskUsage(path string) (Usage, error) {
	var st unix.Statfs_t
	if err := unixStatfs(path, &st); err != nil {
		return Usage{}, fmt.Errorf("statfs %s: %w", path, err)
	}
	bsize := int64(st.Bsize)
	total := int64(st.Blocks) * bsize
	free := int64(st.Bavail) * bsize
	return Usage{
		MountPoint: path,
		Total:      total,
		Free:       free,
		Used:       total - int64(st.Bfree)*bsize,
	}, nil
}
