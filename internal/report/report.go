package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/rahulvramesh/cleanmac/internal/system"
	"github.com/rahulvramesh/cleanmac/internal/types"
	"github.com/rahulvramesh/cleanmac/internal/utils"
)

// Format selects how results are written
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an --output value
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
)

// Writer renders results in one format
type Writer struct {
	Out    io.Writer
	Format Format
	Home   string // contracted to ~ in text output
}

// New creates a Writer
func New(out io.Writer, format Format, home string) *Writer {
	return &Writer{Out: out, Format: format, Home: home}
}

func (w *Writer) encode(v any) error {
	switch w.Format {
	case FormatJSON:
		encoder := json.NewEncoder(w.Out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case FormatYAML:
		encoder := yaml.NewEncoder(w.Out)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("no encoder for %q", w.Format)
}

func (w *Writer) printf(format string, a ...any) {
	fmt.Fprintf(w.Out, format, a...)
}

func (w *Writer) path(p string) string {
	return utils.ContractHome(p, w.Home)
}

// Apps writes the installed application list
func (w *Writer) Apps(apps []types.InstalledApp) error {
	if w.Format != FormatText {
		if apps == nil {
			apps = []types.InstalledApp{}
		}
		return w.encode(apps)
	}
	if len(apps) == 0 {
		w.printf("%s\n", dimStyle.Render("No applications found"))
		return nil
	}
	var total int64
	w.printf("%s\n", headerStyle.Render(fmt.Sprintf("%-36s %10s %10s %6s", "Application", "Bundle", "Total", "Files")))
	for _, app := range apps {
		total += app.TotalSize()
		w.printf("%-36s %10s %10s %6d\n",
			utils.TruncatePath(app.Name, 36),
			utils.FormatFileSize(app.Size),
			utils.FormatFileSize(app.TotalSize()),
			len(app.RelatedFiles))
	}
	w.printf("\n%d applications, %s\n", len(apps), utils.FormatFileSize(total))
	return nil
}

// App writes one application with its related files
func (w *Writer) App(app types.InstalledApp) error {
	if w.Format != FormatText {
		return w.encode(app)
	}
	w.printf("%s\n", headerStyle.Render(app.Name))
	w.printf("  Bundle ID: %s\n", app.BundleIdentifier)
	w.printf("  Path:      %s\n", w.path(app.Path))
	w.printf("  Size:      %s\n", utils.FormatFileSize(app.Size))
	w.printf("  Total:     %s\n\n", utils.FormatFileSize(app.TotalSize()))
	if len(app.RelatedFiles) == 0 {
		w.printf("%s\n", dimStyle.Render("  No related files"))
		return nil
	}
	for _, f := range app.RelatedFiles {
		w.printf("  %s %-24s %10s  %s\n", f.Type.Icon(), f.Type, utils.FormatFileSize(f.Size), w.path(f.Path))
	}
	return nil
}

// Junk writes junk categories with their items
func (w *Writer) Junk(categories []types.JunkCategory) error {
	if w.Format != FormatText {
		if categories == nil {
			categories = []types.JunkCategory{}
		}
		return w.encode(categories)
	}
	if len(categories) == 0 {
		w.printf("%s\n", successStyle.Render("No junk found"))
		return nil
	}
	var total int64
	for _, c := range categories {
		total += c.TotalSize()
		w.printf("%s %s\n", c.Icon, headerStyle.Render(fmt.Sprintf("%s (%s)", c.Name, utils.FormatFileSize(c.TotalSize()))))
		w.printf("  %s\n", dimStyle.Render(c.Description))
		for _, item := range c.Items {
			w.printf("    %10s  %s\n", utils.FormatFileSize(item.Size), w.path(item.Path))
		}
	}
	w.printf("\nTotal: %s\n", utils.FormatFileSize(total))
	return nil
}

// Deletion writes the outcome of a delete request
func (w *Writer) Deletion(result types.DeleteResult) error {
	if w.Format != FormatText {
		return w.encode(result)
	}
	w.printf("%s\n", successStyle.Render(fmt.Sprintf("Moved %d of %d items to Trash", len(result.Removed), len(result.Requested))))
	if len(result.Missing) > 0 {
		w.printf("%s\n", dimStyle.Render(fmt.Sprintf("%d items were already gone", len(result.Missing))))
	}
	if result.NeedsFullDiskAccess() {
		w.printf("%s\n", warningStyle.Render(fmt.Sprintf("%d protected items could not be deleted:", len(result.Protected))))
		for _, p := range result.Protected {
			w.printf("  %s\n", w.path(p))
		}
		w.printf("%s\n", dimStyle.Render("Grant Full Disk Access in System Settings > Privacy & Security, then try again."))
	}
	return nil
}

// Access writes the Full Disk Access probe result
func (w *Writer) Access(granted bool) error {
	if w.Format != FormatText {
		return w.encode(map[string]bool{"full_disk_access": granted})
	}
	if granted {
		w.printf("%s\n", successStyle.Render("Full Disk Access: granted"))
	} else {
		w.printf("%s\n", warningStyle.Render("Full Disk Access: not granted"))
	}
	return nil
}

// Disk writes volume usage
func (w *Writer) Disk(volumes []system.Usage) error {
	if w.Format != FormatText {
		if volumes == nil {
			volumes = []system.Usage{}
		}
		return w.encode(volumes)
	}
	w.printf("%s\n", headerStyle.Render(fmt.Sprintf("%-30s %10s %10s %10s %6s", "Mounted on", "Size", "Used", "Avail", "Use%")))
	for _, v := range volumes {
		w.printf("%-30s %10s %10s %10s %5.0f%%\n",
			utils.TruncatePath(v.MountPoint, 30),
			utils.FormatFileSize(v.Total),
			utils.FormatFileSize(v.Used),
			utils.FormatFileSize(v.Free),
			v.UsedPercent())
	}
	return nil
}
