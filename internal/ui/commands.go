package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rahulvramesh/cleanmac/internal/access"
	"github.com/rahulvramesh/cleanmac/internal/session"
	"github.com/rahulvramesh/cleanmac/internal/system"
	"github.com/rahulvramesh/cleanmac/internal/types"
	"github.com/rahulvramesh/cleanmac/internal/utils"
)

// Command functions

func loadApps(ctx context.Context, apps *session.Apps) tea.Cmd {
	return func() tea.Msg {
		list, err := apps.Load(ctx)
		return types.AppsLoadedMsg{Apps: list, Err: err}
	}
}

func findRelated(apps *session.Apps, app types.InstalledApp) tea.Cmd {
	return func() tea.Msg {
		return types.RelatedFilesMsg{AppID: app.ID, Files: apps.Relocate(app)}
	}
}

func deleteApp(ctx context.Context, apps *session.Apps, app types.InstalledApp, force bool) tea.Cmd {
	return func() tea.Msg {
		outcome := apps.Delete(ctx, app, force)
		return types.AppDeleteCompleteMsg{
			AppID:   outcome.AppID,
			AppName: outcome.AppName,
			AppPath: outcome.AppPath,
			Result:  outcome.Result,
			Running: outcome.Running,
			Err:     outcome.Err,
		}
	}
}

func scanJunk(ctx context.Context, junk *session.Junk) tea.Cmd {
	return func() tea.Msg {
		categories, err := junk.Scan(ctx)
		return types.JunkScanCompleteMsg{Categories: categories, Err: err}
	}
}

func cleanJunk(ctx context.Context, junk *session.Junk, paths []string) tea.Cmd {
	return func() tea.Msg {
		outcome := junk.Clean(ctx, paths)
		return types.JunkCleanCompleteMsg{
			Result:     outcome.Result,
			Categories: outcome.Categories,
			Err:        outcome.Err,
			ScanErr:    outcome.ScanErr,
		}
	}
}

func probeAccess(p access.Prober) tea.Cmd {
	return func() tea.Msg {
		return types.AccessProbeMsg{Granted: p.HasElevatedAccess()}
	}
}

func showDiskUsage(ctx context.Context, home string) tea.Cmd {
	return func() tea.Msg {
		volumes, err := system.ListVolumes(ctx)
		if err != nil {
			return types.ErrMsg{Err: err}
		}
		if len(volumes) == 0 {
			return types.ErrMsg{Err: fmt.Errorf("no disk usage data")}
		}

		var rows []table.Row
		for _, v := range volumes {
			filesystem := v.Filesystem
			// Truncate long filesystem names
			if len(filesystem) > 25 {
				filesystem = filesystem[:22] + "..."
			}
			rows = append(rows, table.Row{
				filesystem,
				utils.FormatFileSize(v.Total),
				utils.FormatFileSize(v.Used),
				utils.FormatFileSize(v.Free),
				fmt.Sprintf("%.0f%%", v.UsedPercent()),
				v.MountPoint,
			})
		}

		columns := []table.Column{
			{Title: "Filesystem", Width: 25},
			{Title: "Size", Width: 9},
			{Title: "Used", Width: 9},
			{Title: "Avail", Width: 9},
			{Title: "Capacity", Width: 10},
			{Title: "Mounted on", Width: 40},
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(true),
			table.WithHeight(min(len(rows)+1, 15)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(false)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(s)

		msg := types.DiskUsageMsg{Table: t}
		if usage, err := system.DiskUsage(home); err == nil {
			msg.HomeTotal = usage.Total
			msg.HomeFree = usage.Free
			msg.UsedPercent = usage.UsedPercent()
		}
		return msg
	}
}
