//go:build windows

package utils

import "io/fs"

func fileSize(info fs.FileInfo) int64 {
	return info.Size()
}
