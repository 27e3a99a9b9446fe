package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rahulvramesh/cleanmac/internal/scanner"
	"github.com/rahulvramesh/cleanmac/internal/session"
	"github.com/rahulvramesh/cleanmac/internal/types"
	"github.com/rahulvramesh/cleanmac/internal/utils"
)

var sortCycle = []scanner.SortOption{scanner.SortByName, scanner.SortBySize, scanner.SortByTotalSize}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(60, max(10, msg.Width-10))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case types.AppsLoadedMsg:
		m.apps.ApplyLoaded(msg.Apps, msg.Err)
		if msg.Err != nil {
			m.err = msg.Err
			m.state = stateMenu
			return m, nil
		}
		m.state = stateApps
		m.message = ""
		m.appChoice, m.appOffset = 0, 0
		return m, nil

	case types.RelatedFilesMsg:
		m.apps.ApplyRelated(msg.AppID, msg.Files)
		return m, nil

	case types.AppDeleteCompleteMsg:
		outcome := session.DeleteOutcome{
			AppID:   msg.AppID,
			AppName: msg.AppName,
			AppPath: msg.AppPath,
			Result:  msg.Result,
			Running: msg.Running,
			Err:     msg.Err,
		}
		m.apps.ApplyDeleteResult(outcome)
		switch {
		case msg.Running, msg.Err != nil:
			m.state = stateAppDetail
		default:
			m.state = stateApps
			m.message = fmt.Sprintf("✅ Moved %s to Trash (%d items)", msg.AppName, len(msg.Result.Removed))
			if outcome.BundleKept() {
				m.message = fmt.Sprintf("⚠️  %s could not be moved to Trash (%d items removed)", msg.AppName, len(msg.Result.Removed))
			}
			m.appChoice = min(m.appChoice, max(0, len(m.apps.Filtered())-1))
			m.appOffset = follow(m.appChoice, m.appOffset, m.viewport())
		}
		return m, nil

	case types.JunkScanCompleteMsg:
		m.junk.ApplyScan(msg.Categories, msg.Err)
		if msg.Err != nil {
			m.err = msg.Err
			m.state = stateMenu
			return m, nil
		}
		m.state = stateJunk
		m.message = ""
		m.junkChoice, m.junkOffset = 0, 0
		return m, nil

	case types.JunkCleanCompleteMsg:
		m.junk.ApplyClean(session.CleanOutcome{
			Result:     msg.Result,
			Categories: msg.Categories,
			Err:        msg.Err,
			ScanErr:    msg.ScanErr,
		})
		m.state = stateJunk
		m.message = ""
		m.junkChoice, m.junkOffset = 0, 0
		if msg.Err == nil {
			m.message = fmt.Sprintf("✅ Moved %d items to Trash", len(msg.Result.Removed))
		}
		return m, nil

	case types.AccessProbeMsg:
		m.accessGranted = msg.Granted
		m.state = stateAccess
		return m, nil

	case types.DiskUsageMsg:
		m.diskUsageTable = msg.Table
		m.homeTotal = msg.HomeTotal
		m.homeFree = msg.HomeFree
		m.homeUsed = msg.UsedPercent
		m.state = stateDiskUsage
		return m, nil

	case types.ErrMsg:
		m.err = msg
		m.logger.Error("Command failed", zap.Error(msg.Err))
		if m.state == stateLoading {
			m.state = stateMenu
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.updateMenu(msg)
	case stateApps:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateApps(msg)
	case stateAppDetail:
		return m.updateAppDetail(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	case stateJunk:
		return m.updateJunk(msg)
	case stateConfirmClean:
		return m.updateConfirmClean(msg)
	case stateDiskUsage:
		switch msg.String() {
		case "q", "esc":
			return m.toMenu(), nil
		}
		var cmd tea.Cmd
		m.diskUsageTable, cmd = m.diskUsageTable.Update(msg)
		return m, cmd
	case stateAccess:
		switch msg.String() {
		case "q", "esc", "enter":
			return m.toMenu(), nil
		}
	}
	return m, nil
}

func (m Model) toMenu() Model {
	m.state = stateMenu
	m.menuChoice = 0
	m.message = ""
	m.err = nil
	return m
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.menuChoice > 0 {
			m.menuChoice--
		}
	case "down", "j":
		if m.menuChoice < len(menuItems)-1 {
			m.menuChoice++
		}
	case "enter":
		m.err = nil
		switch m.menuChoice {
		case 0: // Applications
			if m.apps.Installed != nil {
				m.state = stateApps
				return m, nil
			}
			return m.startLoadApps()
		case 1: // System Junk
			return m.startScanJunk()
		case 2: // Disk Usage
			return m, showDiskUsage(m.ctx, m.home)
		case 3: // Full Disk Access
			return m, probeAccess(m.prober)
		case 4: // Exit
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) startLoadApps() (tea.Model, tea.Cmd) {
	m.state = stateLoading
	m.message = "Scanning applications..."
	m.apps.Loading = true
	return m, tea.Batch(m.spinner.Tick, loadApps(m.ctx, m.apps))
}

func (m Model) startScanJunk() (tea.Model, tea.Cmd) {
	m.state = stateLoading
	m.message = "Scanning junk locations..."
	m.junk.Scanning = true
	return m, tea.Batch(m.spinner.Tick, scanJunk(m.ctx, m.junk))
}

func (m Model) updateApps(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.apps.ShowFullDiskAccessPrompt {
		m.apps.DismissFullDiskAccessPrompt()
		return m, nil
	}

	apps := m.apps.Filtered()
	switch msg.String() {
	case "q", "esc":
		return m.toMenu(), nil
	case "up", "k":
		if m.appChoice > 0 {
			m.appChoice--
		}
	case "down", "j":
		if m.appChoice < len(apps)-1 {
			m.appChoice++
		}
	case "/":
		m.searching = true
		m.search.SetValue(m.apps.SearchText)
		return m, m.search.Focus()
	case "s":
		for i, opt := range sortCycle {
			if opt == m.apps.Sort {
				m.apps.Sort = sortCycle[(i+1)%len(sortCycle)]
				break
			}
		}
		m.appChoice, m.appOffset = 0, 0
	case "r":
		return m.startLoadApps()
	case "enter":
		if m.appChoice < len(apps) {
			app := apps[m.appChoice]
			m.apps.Select(app)
			m.state = stateAppDetail
			m.fileChoice, m.fileOffset = 0, 0
			m.message = ""
			return m, findRelated(m.apps, app)
		}
	}
	m.appOffset = follow(m.appChoice, m.appOffset, m.viewport())
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.apps.SearchText = ""
		m.appChoice, m.appOffset = 0, 0
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.apps.SearchText = m.search.Value()
	m.appChoice, m.appOffset = 0, 0
	return m, cmd
}

func (m Model) updateAppDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := m.apps.Selected
	if sel == nil {
		m.state = stateApps
		return m, nil
	}

	if m.apps.ShowRunningAppWarning {
		switch msg.String() {
		case "f":
			app := *sel
			m.apps.BeginDelete()
			m.state = stateDeleting
			m.message = fmt.Sprintf("Quitting %s and moving it to Trash...", app.Name)
			return m, tea.Batch(m.spinner.Tick, deleteApp(m.ctx, m.apps, app, true))
		case "esc", "n", "q":
			m.apps.ShowRunningAppWarning = false
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.apps.Selected = nil
		m.state = stateApps
		return m, nil
	case "up", "k":
		if m.fileChoice > 0 {
			m.fileChoice--
		}
	case "down", "j":
		if m.fileChoice < len(sel.RelatedFiles)-1 {
			m.fileChoice++
		}
	case " ":
		m.apps.ToggleFile(m.fileChoice)
	case "d", "D":
		m.state = stateConfirm
	}
	m.fileOffset = follow(m.fileChoice, m.fileOffset, m.viewport())
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		app := *m.apps.Selected
		m.apps.BeginDelete()
		m.state = stateDeleting
		m.message = fmt.Sprintf("Moving %s to Trash...", app.Name)
		return m, tea.Batch(m.spinner.Tick, deleteApp(m.ctx, m.apps, app, false))
	case "n", "N", "esc", "q":
		m.state = stateAppDetail
	}
	return m, nil
}

func (m Model) updateJunk(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.junkRows()
	switch msg.String() {
	case "q", "esc":
		return m.toMenu(), nil
	case "up", "k":
		if m.junkChoice > 0 {
			m.junkChoice--
		}
	case "down", "j":
		if m.junkChoice < len(rows)-1 {
			m.junkChoice++
		}
	case "enter", "right", "l", "left", "h":
		if m.junkChoice < len(rows) {
			row := rows[m.junkChoice]
			c := m.junk.Categories[row.category]
			m.expanded[c.ID] = !m.expanded[c.ID]
			if row.item >= 0 {
				m.junkChoice = m.rowIndex(row.category)
			}
		}
	case " ":
		if m.junkChoice < len(rows) {
			row := rows[m.junkChoice]
			c := m.junk.Categories[row.category]
			if row.item < 0 {
				m.junk.ToggleCategory(c.ID)
			} else {
				m.junk.ToggleItem(c.ID, c.Items[row.item].ID)
			}
		}
	case "r":
		return m.startScanJunk()
	case "c", "D":
		if len(m.junk.SelectedPaths()) > 0 {
			m.state = stateConfirmClean
		}
	}
	m.junkOffset = follow(m.junkChoice, m.junkOffset, m.viewport())
	return m, nil
}

// rowIndex returns the row of category ci's header
func (m Model) rowIndex(ci int) int {
	for i, row := range m.junkRows() {
		if row.category == ci && row.item < 0 {
			return i
		}
	}
	return 0
}

func (m Model) updateConfirmClean(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		paths := m.junk.SelectedPaths()
		m.junk.BeginClean()
		m.state = stateCleaning
		m.message = fmt.Sprintf("Moving %d items (%s) to Trash...", len(paths), utils.FormatFileSize(m.junk.TotalSelectedSize()))
		return m, tea.Batch(m.spinner.Tick, cleanJunk(m.ctx, m.junk, paths))
	case "n", "N", "esc", "q":
		m.state = stateJunk
	}
	return m, nil
}
