package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/rahulvramesh/cleanmac/internal/access"
	"github.com/rahulvramesh/cleanmac/internal/session"
)

// Screens
const (
	stateMenu         = "menu"
	stateLoading      = "loading"
	stateApps         = "apps"
	stateAppDetail    = "appdetail"
	stateConfirm      = "confirm"
	stateDeleting     = "deleting"
	stateJunk         = "junk"
	stateConfirmClean = "confirmclean"
	stateCleaning     = "cleaning"
	stateDiskUsage    = "diskusage"
	stateAccess       = "access"
)

var menuItems = []string{
	"📦 Applications",
	"🧹 System Junk",
	"📊 Disk Usage Report",
	"🔐 Check Full Disk Access",
	"❌ Exit",
}

// Options wires the model to its collaborators
type Options struct {
	Home   string
	Apps   *session.Apps
	Junk   *session.Junk
	Prober access.Prober
	Logger *zap.Logger
}

// Model represents the application state
type Model struct {
	ctx    context.Context
	home   string
	apps   *session.Apps
	junk   *session.Junk
	prober access.Prober
	logger *zap.Logger

	state      string
	menuChoice int
	message    string // status line shown above lists
	spinner    spinner.Model
	progress   progress.Model
	width      int
	height     int
	err        error

	// Applications
	appChoice  int
	appOffset  int
	fileChoice int
	fileOffset int
	search     textinput.Model
	searching  bool

	// Junk
	junkChoice int
	junkOffset int
	expanded   map[string]bool // category ID -> items visible

	// Disk usage
	diskUsageTable table.Model
	homeTotal      int64
	homeFree       int64
	homeUsed       float64

	accessGranted bool
}

// InitialModel creates the model on the main menu
func InitialModel(ctx context.Context, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	search := textinput.New()
	search.Placeholder = "Search applications"
	search.Prompt = "🔎 "
	search.CharLimit = 64
	search.Cursor.SetMode(cursor.CursorStatic)

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	prober := opts.Prober
	if prober == nil {
		prober = access.NewFileProbe(opts.Home)
	}

	return Model{
		ctx:      ctx,
		home:     opts.Home,
		apps:     opts.Apps,
		junk:     opts.Junk,
		prober:   prober,
		logger:   logger,
		state:    stateMenu,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient()),
		search:   search,
		expanded: make(map[string]bool),
		width:    80,
		height:   24,
	}
}

// Init starts the spinner
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// State returns the current screen name
func (m Model) State() string {
	return m.state
}

// viewport is the number of list rows that fit under the header and footer
func (m Model) viewport() int {
	return max(5, m.height-15)
}

// follow keeps choice inside the window that starts at offset
func follow(choice, offset, viewport int) int {
	if choice < offset {
		return choice
	}
	if choice >= offset+viewport {
		return choice - viewport + 1
	}
	return offset
}

// junkRow is one line of the junk list; item is -1 for a category header
type junkRow struct {
	category int
	item     int
}

func (m Model) junkRows() []junkRow {
	var rows []junkRow
	for ci, c := range m.junk.Categories {
		rows = append(rows, junkRow{category: ci, item: -1})
		if m.expanded[c.ID] {
			for ii := range c.Items {
				rows = append(rows, junkRow{category: ci, item: ii})
			}
		}
	}
	return rows
}
