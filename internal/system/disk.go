package system

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var execCommandContext = exec.CommandContext

// Usage is the capacity of a mounted volume in bytes
type Usage struct {
	Filesystem string `json:"filesystem,omitempty" yaml:"filesystem,omitempty"`
	MountPoint string `json:"mount_point" yaml:"mount_point"`
	Total      int64  `json:"total" yaml:"total"`
	Free       int64  `json:"free" yaml:"free"`
	Used       int64  `json:"used" yaml:"used"`
}

// UsedPercent returns used space as a percentage of total
func (u Usage) UsedPercent() float64 {
	if u.Total <= 0 {
		return 0
	}
	return float64(u.Used) / float64(u.Total) * 100
}

// ListVolumes reports every mounted volume using POSIX df output
func ListVolumes(ctx context.Context) ([]Usage, error) {
	out, err := execCommandContext(ctx, "df", "-k", "-P").Output()
	if err != nil {
		return nil, fmt.Errorf("df: %w", err)
	}
	return ParseDF(string(out)), nil
}

// ParseDF parses `df -k -P` output, skipping the header and malformed lines
func ParseDF(output string) []Usage {
	var volumes []Usage
	sc := bufio.NewScanner(strings.NewReader(output))
	first := true
	for sc.Scan() {
		if first {
			first = false
			continue // Skip header
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 6 {
			continue
		}
		total, err1 := strconv.ParseInt(fields[1], 10, 64)
		used, err2 := strconv.ParseInt(fields[2], 10, 64)
		avail, err3 := strconv.ParseInt(fields[3], 10, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		volumes = append(volumes, Usage{
			Filesystem: fields[0],
			MountPoint: strings.Join(fields[5:], " "),
			Total:      total * 1024,
			Used:       used * 1024,
			Free:       avail * 1024,
		})
	}
	return volumes
}
