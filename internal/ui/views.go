package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rahulvramesh/cleanmac/internal/utils"
)

// View renders the UI
func (m Model) View() string {
	var s strings.Builder

	// Header with padding
	header := TitleStyle.Render("🧹 Mac Cleaner")
	s.WriteString("\n")
	s.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, header))
	s.WriteString("\n\n\n")

	var content string
	switch m.state {
	case stateMenu:
		content = m.renderMenu()
	case stateLoading, stateDeleting, stateCleaning:
		content = m.renderBusy()
	case stateApps:
		content = m.renderApps()
	case stateAppDetail, stateConfirm:
		content = m.renderAppDetail()
	case stateJunk, stateConfirmClean:
		content = m.renderJunk()
	case stateDiskUsage:
		content = m.renderDiskUsage()
	case stateAccess:
		content = m.renderAccess()
	}

	paddedContent := lipgloss.NewStyle().Padding(0, 3).Render(content)
	s.WriteString(paddedContent)

	if m.err != nil {
		s.WriteString("\n\n")
		errMsg := lipgloss.NewStyle().Padding(0, 3).Render(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString(errMsg)
	}

	s.WriteString("\n\n")
	return s.String()
}

func (m Model) renderMenu() string {
	var s strings.Builder

	s.WriteString(HeaderStyle.Render("Main Menu"))
	s.WriteString("\n\n\n")

	for i, item := range menuItems {
		s.WriteString(cursorRow(m.menuChoice == i, item) + "\n\n")
	}

	s.WriteString("\n\n")
	s.WriteString(DimStyle.Render("Use ↑/↓ or j/k to navigate, Enter to select, q to quit"))

	return s.String()
}

func (m Model) renderBusy() string {
	var s strings.Builder

	title := "Scanning..."
	switch m.state {
	case stateDeleting:
		title = "Uninstalling..."
	case stateCleaning:
		title = "Cleaning Files..."
	}
	s.WriteString(HeaderStyle.Render(title))
	s.WriteString("\n\n\n")
	s.WriteString("  " + m.spinner.View() + " " + m.message)
	s.WriteString("\n\n\n")
	if m.state != stateLoading {
		s.WriteString(DimStyle.Render("macOS may ask for Finder automation or an administrator password."))
	} else {
		s.WriteString(DimStyle.Render("Please wait, scanning your directories..."))
	}

	return s.String()
}

// scrollInfo renders the "[a-b of n]" indicator when a list overflows
func scrollInfo(start, end, total, viewport int) string {
	if total <= viewport {
		return ""
	}
	info := DimStyle.Render(fmt.Sprintf("[%d-%d of %d]", start+1, end, total))
	if start > 0 {
		info += DimStyle.Render(" ↑")
	}
	if end < total {
		info += DimStyle.Render(" ↓")
	}
	return "  " + info + "\n\n"
}

func (m Model) renderApps() string {
	var s strings.Builder

	apps := m.apps.Filtered()
	s.WriteString(HeaderStyle.Render(fmt.Sprintf("Applications (%d)", len(apps))))
	s.WriteString("  " + DimStyle.Render("sorted by "+string(m.apps.Sort)))
	s.WriteString("\n\n")

	if m.searching || m.apps.SearchText != "" {
		s.WriteString("  " + m.search.View() + "\n\n")
	}
	if m.message != "" {
		s.WriteString("  " + SuccessStyle.Render(m.message) + "\n\n")
	}
	if m.apps.ShowFullDiskAccessPrompt {
		notice := WarningStyle.Render(fmt.Sprintf("⚠️  %d protected items could not be deleted.", m.apps.SkippedFilesCount)) + "\n" +
			DimStyle.Render("Grant Full Disk Access in System Settings > Privacy & Security. Press any key.")
		s.WriteString(NoticeStyle.Render(notice) + "\n\n")
	}

	if len(apps) == 0 {
		s.WriteString("  " + WarningStyle.Render("No applications found"))
		s.WriteString("\n\n")
		s.WriteString(DimStyle.Render("/: Search • r: Rescan • ESC: Back"))
		return s.String()
	}

	viewport := m.viewport()
	start := m.appOffset
	end := min(start+viewport, len(apps))
	s.WriteString(scrollInfo(start, end, len(apps), viewport))

	nameWidth := max(10, min(40, m.width-40))
	for i := start; i < end; i++ {
		app := apps[i]
		line := fmt.Sprintf("%-*s %10s %10s",
			nameWidth,
			utils.TruncatePath(app.Name, nameWidth),
			utils.FormatFileSize(app.Size),
			utils.FormatFileSize(app.TotalSize()),
		)
		s.WriteString(cursorRow(m.appChoice == i, line) + "\n")
	}

	s.WriteString("\n")
	s.WriteString(DimStyle.Render("↑/↓ Navigate • Enter: Details • /: Search • s: Sort • r: Rescan • ESC: Back"))
	return s.String()
}

func (m Model) renderAppDetail() string {
	var s strings.Builder

	app := m.apps.Selected
	if app == nil {
		return ""
	}

	s.WriteString(HeaderStyle.Render("📦 " + app.Name))
	s.WriteString("\n")
	s.WriteString("  " + DimStyle.Render(app.BundleIdentifier) + "\n")
	s.WriteString("  " + DimStyle.Render(utils.ContractHome(app.Path, m.home)+" • "+utils.FormatFileSize(app.Size)) + "\n\n")

	if m.apps.DeleteError != "" {
		s.WriteString("  " + ErrorStyle.Render(m.apps.DeleteError) + "\n\n")
	}
	if m.apps.ShowRunningAppWarning {
		notice := WarningStyle.Render(fmt.Sprintf("⚠️  %s is running.", m.apps.RunningAppName)) + "\n" +
			DimStyle.Render("f: Quit it and delete • ESC: Cancel")
		s.WriteString(NoticeStyle.Render(notice) + "\n\n")
	}

	files := app.RelatedFiles
	if len(files) == 0 {
		s.WriteString("  " + DimStyle.Render("No related files found") + "\n\n")
	} else {
		viewport := m.viewport()
		start := m.fileOffset
		end := min(start+viewport, len(files))
		s.WriteString(scrollInfo(start, end, len(files), viewport))

		pathWidth := max(20, min(60, m.width-40))
		for i := start; i < end; i++ {
			f := files[i]
			line := fmt.Sprintf("%s %s %-*s %10s",
				checkbox(f.Selected),
				f.Type.Icon(),
				pathWidth,
				utils.TruncatePath(f.DisplayPath(m.home), pathWidth),
				utils.FormatFileSize(f.Size),
			)
			s.WriteString(cursorRow(m.fileChoice == i, line) + "\n")
		}
		s.WriteString("\n")
	}

	selected := app.Size
	for _, f := range files {
		if f.Selected {
			selected += f.Size
		}
	}
	s.WriteString("  " + SuccessStyle.Render("Will free: "+utils.FormatFileSize(selected)) + "\n\n")

	if m.state == stateConfirm {
		s.WriteString(WarningStyle.Render(fmt.Sprintf("Move %s and the selected files to Trash? (y/n)", app.Name)))
		return s.String()
	}
	s.WriteString(DimStyle.Render("↑/↓ Navigate • Space: Toggle • d: Delete • ESC: Back"))
	return s.String()
}

func (m Model) renderJunk() string {
	var s strings.Builder

	s.WriteString(HeaderStyle.Render("System Junk"))
	s.WriteString("\n\n")
	if m.message != "" {
		s.WriteString("  " + SuccessStyle.Render(m.message) + "\n")
	}
	if m.junk.CleanError != "" {
		s.WriteString("  " + ErrorStyle.Render(m.junk.CleanError) + "\n")
	}
	if r := m.junk.LastResult; r != nil && r.NeedsFullDiskAccess() {
		s.WriteString("  " + WarningStyle.Render(fmt.Sprintf("⚠️  %d protected items could not be deleted. Grant Full Disk Access and retry.", len(r.Protected))) + "\n")
	}
	s.WriteString("\n")

	if len(m.junk.Categories) == 0 {
		s.WriteString("  " + SuccessStyle.Render("No junk found"))
		s.WriteString("\n\n")
		s.WriteString(DimStyle.Render("r: Rescan • ESC: Back"))
		return s.String()
	}

	rows := m.junkRows()
	viewport := m.viewport()
	start := m.junkOffset
	end := min(start+viewport, len(rows))
	s.WriteString(scrollInfo(start, end, len(rows), viewport))

	nameWidth := max(20, min(45, m.width-35))
	for i := start; i < end; i++ {
		row := rows[i]
		c := m.junk.Categories[row.category]
		var line string
		if row.item < 0 {
			arrow := "▶"
			if m.expanded[c.ID] {
				arrow = "▼"
			}
			line = fmt.Sprintf("%s %s %s %-*s %5d %10s",
				arrow,
				checkbox(c.Selected),
				c.Icon,
				nameWidth-3,
				utils.TruncatePath(c.Name, nameWidth-3),
				len(c.Items),
				utils.FormatFileSize(c.TotalSize()),
			)
		} else {
			item := c.Items[row.item]
			line = fmt.Sprintf("    %s %-*s %10s",
				checkbox(item.Selected),
				nameWidth,
				utils.TruncatePath(item.Name(), nameWidth),
				utils.FormatFileSize(item.Size),
			)
		}
		s.WriteString(cursorRow(m.junkChoice == i, line) + "\n")
	}

	s.WriteString("\n")
	s.WriteString("    " + SuccessStyle.Render("Selected: "+utils.FormatFileSize(m.junk.TotalSelectedSize())) + "\n\n")

	if m.state == stateConfirmClean {
		s.WriteString(WarningStyle.Render(fmt.Sprintf("Move %d selected items to Trash? (y/n)", len(m.junk.SelectedPaths()))))
		return s.String()
	}
	s.WriteString(DimStyle.Render("↑/↓ Navigate • Space: Toggle • Enter: Expand • c: Clean • r: Rescan • ESC: Back"))
	return s.String()
}

func (m Model) renderDiskUsage() string {
	var s strings.Builder

	s.WriteString(HeaderStyle.Render("Disk Usage Report"))
	s.WriteString("\n\n\n")
	if m.homeTotal > 0 {
		s.WriteString(fmt.Sprintf("  Home volume: %s free of %s\n  ",
			utils.FormatFileSize(m.homeFree), utils.FormatFileSize(m.homeTotal)))
		s.WriteString(m.progress.ViewAs(m.homeUsed / 100))
		s.WriteString("\n\n")
	}
	s.WriteString(m.diskUsageTable.View())
	s.WriteString("\n\n\n")
	s.WriteString(DimStyle.Render("Use ↑/↓ or j/k to navigate, ESC or q to go back to menu"))

	return s.String()
}

func (m Model) renderAccess() string {
	var s strings.Builder

	s.WriteString(HeaderStyle.Render("Full Disk Access"))
	s.WriteString("\n\n\n")
	if m.accessGranted {
		s.WriteString("  " + SuccessStyle.Render("✅ Full Disk Access is granted"))
	} else {
		s.WriteString("  " + WarningStyle.Render("⚠️  Full Disk Access is not granted"))
		s.WriteString("\n\n")
		s.WriteString("  " + DimStyle.Render("Some application data under ~/Library/Containers cannot be removed."))
		s.WriteString("\n")
		s.WriteString("  " + DimStyle.Render("Open System Settings > Privacy & Security > Full Disk Access and add your terminal."))
	}
	s.WriteString("\n\n\n")
	s.WriteString(DimStyle.Render("Press Enter or ESC to go back"))
	return s.String()
}
