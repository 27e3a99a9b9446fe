package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/rahulvramesh/cleanmac/internal/scanner"
	"github.com/rahulvramesh/cleanmac/internal/utils"
)

// Config represents the cleaner configuration
type Config struct {
	Home    string   `mapstructure:"home"`     // home directory to scan
	AppDirs []string `mapstructure:"app_dirs"` // directories holding .app bundles
	Workers int      `mapstructure:"workers"`  // concurrent bundle readers
	Sort    string   `mapstructure:"sort"`     // name, size, total

	Junk JunkConfig `mapstructure:"junk"`

	Verbose bool   `mapstructure:"verbose"`  // development logging
	LogFile string `mapstructure:"log_file"` // log destination while the TUI owns the terminal
}

// JunkConfig controls the junk catalog
type JunkConfig struct {
	Extended  bool                   `mapstructure:"extended"`  // include package manager caches
	Locations []scanner.JunkLocation `mapstructure:"locations"` // extra user-defined locations
}

// DefaultPath returns ~/.config/cleanmac/config.yaml
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cleanmac", "config.yaml")
}

// Load reads configuration from defaults, an optional YAML file and
// CLEANMAC_ environment variables. A missing file at path is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	home, _ := os.UserHomeDir()
	v.SetDefault("home", home)
	v.SetDefault("app_dirs", []string{})
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("sort", string(scanner.SortByName))
	v.SetDefault("junk.extended", false)
	v.SetDefault("verbose", false)
	v.SetDefault("log_file", filepath.Join(os.TempDir(), "cleanmac.log"))

	// Read environment variables
	v.SetEnvPrefix("CLEANMAC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Home == "" {
		cfg.Home = home
	}
	return &cfg, nil
}

// ApplicationDirs returns the configured app directories or the defaults
func (c *Config) ApplicationDirs() []string {
	if len(c.AppDirs) == 0 {
		return scanner.DefaultAppDirs(c.Home)
	}
	dirs := make([]string, len(c.AppDirs))
	for i, d := range c.AppDirs {
		dirs[i] = utils.ExpandHome(d, c.Home)
	}
	return dirs
}

// JunkLocations returns the catalog to scan: the built-in locations, the
// extended set when enabled, then any user-defined entries
func (c *Config) JunkLocations() []scanner.JunkLocation {
	locs := scanner.DefaultJunkLocations()
	if c.Junk.Extended {
		locs = append(locs, scanner.ExtendedJunkLocations()...)
	}
	for _, loc := range c.Junk.Locations {
		if loc.Path == "" {
			continue
		}
		if loc.Name == "" {
			loc.Name = filepath.Base(loc.Path)
		}
		if loc.Icon == "" {
			loc.Icon = "🗑️"
		}
		locs = append(locs, loc)
	}
	return locs
}

// Apply copies the configuration onto a scanner
func (c *Config) Apply(s *scanner.Scanner) {
	s.HomeDir = c.Home
	s.AppDirs = c.ApplicationDirs()
	s.Locations = c.JunkLocations()
	if c.Workers > 0 {
		s.Workers = c.Workers
	}
}
