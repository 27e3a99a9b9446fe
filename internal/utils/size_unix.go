//go:build !windows

package utils

import (
	"io/fs"
	"syscall"
)

// fileSize prefers the allocated size (st_blocks are 512-byte units) and
// falls back to the logical size when no blocks are reported.
func fileSize(info fs.FileInfo) int64 {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok || stat.Blocks <= 0 {
		return info.Size()
	}
	return int64(stat.Blocks) * 512
}
