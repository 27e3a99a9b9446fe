package system

import "errors"

// DiskUsage is not supported on Windows
func DiskUsage(path string) (Usage, error) {
	return Usage{}, errors.New("disk usage is not supported on this platform")
}
