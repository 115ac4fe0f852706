// Package app wires the pages, the API gateway, and the creation workflow
// into the main Bubble Tea model.
package app

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"

	"github.com/veepiac/quip/internal/api"
	"github.com/veepiac/quip/internal/config"
	"github.com/veepiac/quip/internal/ui"
	"github.com/veepiac/quip/internal/workflow"
)

// Page identifies which screen is showing
type Page int

const (
	PageHome Page = iota
	PageSearch
	PageLine
	PageEpisode
	PageCreate
	PageSettings
)

// String returns a human-readable name for the page
func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageSearch:
		return "search"
	case PageLine:
		return "line"
	case PageEpisode:
		return "episode"
	case PageCreate:
		return "create"
	case PageSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// Context window sizes requested per page. The line page keeps the window
// tight; the create page asks for a wider frame range to pick from.
const (
	lineFramesBefore = 5
	lineFramesAfter  = 5
	lineSubsBefore   = 3
	lineSubsAfter    = 3

	createFramesBefore = 10
	createFramesAfter  = 10
	createSubsBefore   = 3
	createSubsAfter    = 3

	searchPageLimit  = 20
	episodePageLimit = 50
)

// homeFocus identifies which home page element has focus
type homeFocus int

const (
	focusInput homeFocus = iota
	focusRecent
)

// keyTestState tracks the settings page's API key connection test
type keyTestState int

const (
	keyTestIdle keyTestState = iota
	keyTestRunning
	keyTestOK
	keyTestFailed
)

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	client  *api.Client
	wf      *workflow.Workflow
	version string // App version (injected at build time)

	header *ui.Header
	footer *ui.Footer
	modal  *ui.Modal

	width  int
	height int
	page   Page

	// Home page
	searchInput textinput.Model
	homeFocus   homeFocus
	recentIdx   int

	// Search page. searchToken tags the latest issued request; results
	// carrying an older token are dropped.
	query       string
	searchRes   *api.SearchResult
	searchSel   int
	searching   bool
	searchToken uint64
	searchErr   string

	// Line page context, separate from the creation workflow's wider window
	lineCtx     *api.SubtitleContext
	lineLoading bool
	lineToken   uint64
	lineErr     string
	frameSel    int // index into the line context's frame window

	// Episode page
	episode     *api.EpisodeResult
	episodeSel  int
	epLoading   bool
	epToken     uint64
	epErr       string
	epOriginID  int // the subtitle the user navigated from, highlighted
	episodePage int

	// Create page
	createForm *huh.Form
	submitErr  string
	copied     bool

	// Settings page
	settingsForm   *huh.Form
	settingsVals   ui.SettingsValues
	settingsReturn Page
	keyTest        keyTestState
	keyTestToken   uint64
	keyTestMsg     string

	// Spinner animation
	spinnerIdx int
	spinning   bool
}

// New creates a new app model
func New(cfg *config.Config, version string) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	client := api.New(cfg.GetServerURL())
	if key := cfg.GetAPIKey(); key != "" {
		client.SetAPIKey(key)
	}

	input := textinput.New()
	input.Placeholder = "Search for a quote..."
	input.CharLimit = ui.SearchInputCharLimit
	input.SetWidth(ui.ModalInputWidth)
	input.Focus()

	m := &Model{
		config:      cfg,
		client:      client,
		wf:          workflow.New(),
		version:     version,
		header:      ui.NewHeader(),
		footer:      ui.NewFooter(),
		modal:       ui.NewModal(),
		page:        PageHome,
		searchInput: input,
	}

	return m
}

// Init triggers the startup modal check (welcome or changelog)
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		return StartupModalMsg{}
	}
}

// Page returns the page currently showing
func (m *Model) Page() Page {
	return m.page
}

// Client returns the API gateway. Exposed for tests.
func (m *Model) Client() *api.Client {
	return m.client
}

// Workflow returns the creation state machine. Exposed for tests.
func (m *Model) Workflow() *workflow.Workflow {
	return m.wf
}

// setPage switches pages and drops page-local transient state
func (m *Model) setPage(p Page) {
	m.page = p
	m.copied = false
}

// serverHost trims the scheme off the configured server URL for the header
func serverHost(url string) string {
	for _, prefix := range []string{"https://", "http://"} {
		if len(url) > len(prefix) && url[:len(prefix)] == prefix {
			return url[len(prefix):]
		}
	}
	return url
}
