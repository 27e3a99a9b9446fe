package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"howett.net/plist"
)

// BundleInfo holds the Info.plist keys used to identify an application
type BundleInfo struct {
	Identifier  string `plist:"CFBundleIdentifier"`
	DisplayName string `plist:"CFBundleDisplayName"`
	Name        string `plist:"CFBundleName"`
	IconFile    string `plist:"CFBundleIconFile"`
}

var osReadFile = os.ReadFile

// ReadBundleInfo reads Contents/Info.plist of an application bundle.
// A bundle without Info.plist gets identifiers derived from its file name;
// a plist that exists but cannot be decoded is reported as an error.
func ReadBundleInfo(appPath string) (BundleInfo, error) {
	base := strings.TrimSuffix(filepath.Base(appPath), filepath.Ext(appPath))

	var info BundleInfo
	data, err := osReadFile(filepath.Join(appPath, "Contents", "Info.plist"))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return BundleInfo{}, fmt.Errorf("read Info.plist of %s: %w", appPath, err)
	default:
		if _, err := plist.Unmarshal(data, &info); err != nil {
			return BundleInfo{}, fmt.Errorf("decode Info.plist of %s: %w", appPath, err)
		}
	}

	if strings.TrimSpace(info.Identifier) == "" {
		info.Identifier = base
	}
	return info, nil
}

// PreferredName returns the display name, then the short name, then fallback
func (b BundleInfo) PreferredName(fallback string) string {
	if b.DisplayName != "" {
		return b.DisplayName
	}
	if b.Name != "" {
		return b.Name
	}
	return fallback
}

// IconPath resolves CFBundleIconFile inside the bundle's resources, or ""
func (b BundleInfo) IconPath(appPath string) string {
	if b.IconFile == "" {
		return ""
	}
	name := b.IconFile
	if filepath.Ext(name) == "" {
		name += ".icns"
	}
	p := filepath.Join(appPath, "Contents", "Resources", name)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}
