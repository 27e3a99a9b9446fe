package types

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/rahulvramesh/cleanmac/internal/utils"
)

// FileType is the category of a file related to an installed application
type FileType string

const (
	FileTypePreferences        FileType = "Preferences"
	FileTypeCache              FileType = "Caches"
	FileTypeApplicationSupport FileType = "Application Support"
	FileTypeLogs               FileType = "Logs"
	FileTypeContainers         FileType = "Containers"
	FileTypeSavedState         FileType = "Saved Application State"
	FileTypeCookies            FileType = "Cookies"
	FileTypeCrashReports       FileType = "Crash Reports"
	FileTypeOther              FileType = "Other"
)

// AllFileTypes lists every FileType in display order
var AllFileTypes = []FileType{
	FileTypePreferences,
	FileTypeCache,
	FileTypeApplicationSupport,
	FileTypeLogs,
	FileTypeContainers,
	FileTypeSavedState,
	FileTypeCookies,
	FileTypeCrashReports,
	FileTypeOther,
}

// Icon returns the presentation tag for the file type
func (t FileType) Icon() string {
	switch t {
	case FileTypePreferences:
		return "⚙️"
	case FileTypeCache:
		return "🔄"
	case FileTypeApplicationSupport:
		return "📁"
	case FileTypeLogs:
		return "📄"
	case FileTypeContainers:
		return "📦"
	case FileTypeSavedState:
		return "↩️"
	case FileTypeCookies:
		return "🍪"
	case FileTypeCrashReports:
		return "⚠️"
	default:
		return "📃"
	}
}

// RelatedFile is a file outside an app bundle that belongs to the app
type RelatedFile struct {
	ID       string   `json:"id" yaml:"id"`
	Path     string   `json:"path" yaml:"path"`
	Size     int64    `json:"size" yaml:"size"`
	Type     FileType `json:"type" yaml:"type"`
	Selected bool     `json:"selected" yaml:"selected"`
}

// NewRelatedFile creates a related file, selected for deletion
func NewRelatedFile(path string, size int64, fileType FileType) RelatedFile {
	return RelatedFile{
		ID:       uuid.NewString(),
		Path:     path,
		Size:     size,
		Type:     fileType,
		Selected: true,
	}
}

// DisplayPath returns the path with home replaced by ~
func (f RelatedFile) DisplayPath(home string) string {
	return utils.ContractHome(f.Path, home)
}

// InstalledApp is an application bundle found on disk
type InstalledApp struct {
	ID               string        `json:"id" yaml:"id"`
	Name             string        `json:"name" yaml:"name"`
	BundleIdentifier string        `json:"bundle_identifier" yaml:"bundle_identifier"`
	Path             string        `json:"path" yaml:"path"`
	Icon             string        `json:"icon,omitempty" yaml:"icon,omitempty"`
	Size             int64         `json:"size" yaml:"size"`
	RelatedFiles     []RelatedFile `json:"related_files" yaml:"related_files"`
}

// TotalSize is the bundle size plus the size of every related file
func (a InstalledApp) TotalSize() int64 {
	total := a.Size
	for _, f := range a.RelatedFiles {
		total += f.Size
	}
	return total
}

// JunkItem is a single removable entry inside a junk location
type JunkItem struct {
	ID       string `json:"id" yaml:"id"`
	Path     string `json:"path" yaml:"path"`
	Size     int64  `json:"size" yaml:"size"`
	Selected bool   `json:"selected" yaml:"selected"`
}

// NewJunkItem creates a junk item, selected for deletion
func NewJunkItem(path string, size int64) JunkItem {
	return JunkItem{
		ID:       uuid.NewString(),
		Path:     path,
		Size:     size,
		Selected: true,
	}
}

// Name returns the last path element
func (i JunkItem) Name() string {
	return filepath.Base(i.Path)
}

// JunkCategory groups junk items found under one well-known location
type JunkCategory struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Icon        string     `json:"icon" yaml:"icon"`
	Description string     `json:"description" yaml:"description"`
	Items       []JunkItem `json:"items" yaml:"items"`
	Selected    bool       `json:"selected" yaml:"selected"`
}

// TotalSize sums selected items only
func (c JunkCategory) TotalSize() int64 {
	var total int64
	for _, item := range c.Items {
		if item.Selected {
			total += item.Size
		}
	}
	return total
}

// Tier identifies the deletion strategy that resolved a path
type Tier int

const (
	TierNone Tier = iota
	TierDirect
	TierFinder
	TierAdmin
)

func (t Tier) String() string {
	switch t {
	case TierDirect:
		return "trash"
	case TierFinder:
		return "finder"
	case TierAdmin:
		return "admin"
	default:
		return "none"
	}
}

// DeleteResult reports what happened to each requested path
type DeleteResult struct {
	Requested []string        `json:"requested" yaml:"requested"`
	Removed   []string        `json:"removed" yaml:"removed"`
	Missing   []string        `json:"missing,omitempty" yaml:"missing,omitempty"`
	Protected []string        `json:"protected,omitempty" yaml:"protected,omitempty"`
	Tiers     map[string]Tier `json:"-" yaml:"-"`
}

// NeedsFullDiskAccess reports whether any path could not be removed
func (r DeleteResult) NeedsFullDiskAccess() bool {
	return len(r.Protected) > 0
}

// IsProtected reports whether path ended up in the protected list
func (r DeleteResult) IsProtected(path string) bool {
	for _, p := range r.Protected {
		if p == path {
			return true
		}
	}
	return false
}
