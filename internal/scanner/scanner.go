package scanner

import (
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

// Scanner discovers installed applications, their leftovers and junk locations
type Scanner struct {
	HomeDir   string
	AppDirs   []string
	Locations []JunkLocation
	Workers   int
	logger    *zap.Logger
}

// NewScanner creates a scanner rooted at homeDir (the current user's home when empty)
func NewScanner(homeDir string, logger *zap.Logger) *Scanner {
	if homeDir == "" {
		homeDir, _ = os.UserHomeDir()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		HomeDir:   homeDir,
		AppDirs:   DefaultAppDirs(homeDir),
		Locations: DefaultJunkLocations(),
		Workers:   runtime.NumCPU(),
		logger:    logger,
	}
}

// DefaultAppDirs returns the system and per-user application directories
func DefaultAppDirs(homeDir string) []string {
	return []string{
		"/Applications",
		filepath.Join(homeDir, "Applications"),
	}
}

func (s *Scanner) workers() int {
	if s.Workers <= 0 {
		return 4
	}
	return s.Workers
}
