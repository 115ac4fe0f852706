package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/veepiac/quip/internal/api"
	"github.com/veepiac/quip/internal/errors"
	"github.com/veepiac/quip/internal/keys"
	"github.com/veepiac/quip/internal/logger"
	"github.com/veepiac/quip/internal/paginate"
	"github.com/veepiac/quip/internal/ui"
	"github.com/veepiac/quip/internal/workflow"
)

// handleKeyPress routes key presses by page
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keys.CtrlC {
		return m, tea.Quit
	}

	// Modal swallows all keys while visible
	if m.modal.IsVisible() {
		switch key {
		case keys.Enter, keys.Escape:
			m.dismissStartupModal()
			return m, nil
		}
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	switch m.page {
	case PageHome:
		return m.handleHomeKeys(msg)
	case PageSearch:
		return m.handleSearchKeys(msg)
	case PageLine:
		return m.handleLineKeys(msg)
	case PageEpisode:
		return m.handleEpisodeKeys(msg)
	case PageCreate:
		return m.handleCreateKeys(msg)
	case PageSettings:
		return m.handleSettingsKeys(msg)
	}
	return m, nil
}

func (m *Model) handleHomeKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	recent := m.config.GetRecentSearches()

	if m.homeFocus == focusInput {
		switch key {
		case keys.Enter:
			return m, m.startSearch(m.searchInput.Value())
		case keys.Tab, keys.Down:
			if len(recent) > 0 {
				m.homeFocus = focusRecent
				m.recentIdx = 0
				m.searchInput.Blur()
			}
			return m, nil
		case keys.Escape:
			m.searchInput.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	// Recent searches list has focus
	switch key {
	case keys.Up, "k":
		if m.recentIdx > 0 {
			m.recentIdx--
		} else {
			m.homeFocus = focusInput
			m.searchInput.Focus()
		}
	case keys.Down, "j":
		if m.recentIdx < len(recent)-1 {
			m.recentIdx++
		}
	case keys.Enter:
		if m.recentIdx < len(recent) {
			return m, m.startSearch(recent[m.recentIdx])
		}
	case keys.Tab:
		m.homeFocus = focusInput
		m.searchInput.Focus()
	case "s":
		m.openSettings(PageHome)
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case keys.Escape:
		m.setPage(PageHome)
		m.homeFocus = focusInput
		m.searchInput.Focus()
		return m, nil
	case "/":
		m.setPage(PageHome)
		m.homeFocus = focusInput
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, nil
	}

	if m.searchRes == nil {
		return m, nil
	}

	switch key {
	case keys.Up, "k":
		if m.searchSel > 0 {
			m.searchSel--
		}
	case keys.Down, "j":
		if m.searchSel < len(m.searchRes.Results)-1 {
			m.searchSel++
		}
	case keys.Left, "h":
		return m, m.gotoSearchPage(m.searchRes.Pagination.Page - 1)
	case keys.Right, "l":
		return m, m.gotoSearchPage(m.searchRes.Pagination.Page + 1)
	case keys.Enter:
		if m.searchSel < len(m.searchRes.Results) {
			return m, m.openLine(m.searchRes.Results[m.searchSel].ID)
		}
	}
	return m, nil
}

func (m *Model) handleLineKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case keys.Escape:
		if m.searchRes != nil {
			m.setPage(PageSearch)
		} else {
			m.setPage(PageHome)
		}
		return m, nil
	}

	if m.lineCtx == nil {
		return m, nil
	}

	switch key {
	case keys.Up, "k":
		// Walk to the immediately previous line
		if n := len(m.lineCtx.Surrounding.Before); n > 0 {
			return m, m.openLine(m.lineCtx.Surrounding.Before[n-1].ID)
		}
	case keys.Down, "j":
		if len(m.lineCtx.Surrounding.After) > 0 {
			return m, m.openLine(m.lineCtx.Surrounding.After[0].ID)
		}
	case keys.Left, "h":
		if m.frameSel > 0 {
			m.frameSel--
		}
	case keys.Right, "l":
		if m.frameSel < len(m.lineCtx.Frames.All())-1 {
			m.frameSel++
		}
	case "m":
		return m, m.startCreate(workflow.KindMeme)
	case "g":
		return m, m.startCreate(workflow.KindGif)
	case "x":
		return m, m.startCreate(workflow.KindClip)
	case "e":
		return m, m.openEpisode()
	}
	return m, nil
}

func (m *Model) handleEpisodeKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case keys.Escape:
		m.setPage(PageLine)
		return m, nil
	}

	if m.episode == nil {
		return m, nil
	}

	switch key {
	case keys.Up, "k":
		if m.episodeSel > 0 {
			m.episodeSel--
		}
	case keys.Down, "j":
		if m.episodeSel < len(m.episode.Subtitles)-1 {
			m.episodeSel++
		}
	case keys.PgUp:
		m.episodeSel = max(0, m.episodeSel-10)
	case keys.PgDown:
		m.episodeSel = min(len(m.episode.Subtitles)-1, m.episodeSel+10)
	case keys.Left, "h":
		return m, m.gotoEpisodePage(m.episode.Pagination.Page - 1)
	case keys.Right, "l":
		return m, m.gotoEpisodePage(m.episode.Pagination.Page + 1)
	case keys.Enter:
		if m.episodeSel < len(m.episode.Subtitles) {
			return m, m.openLine(m.episode.Subtitles[m.episodeSel].ID)
		}
	}
	return m, nil
}

func (m *Model) handleCreateKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case keys.Escape:
		m.wf.Reset()
		m.createForm = nil
		m.submitErr = ""
		m.setPage(PageLine)
		return m, nil
	case keys.CtrlY:
		m.cycleKind()
		return m, nil
	}

	switch m.wf.State() {
	case workflow.StateResult:
		switch key {
		case "c":
			if res := m.wf.Result(); res != nil {
				return m, copyResultCmd(res.URL)
			}
		case "n":
			m.wf.DiscardResult()
			m.copied = false
			m.rebuildCreateForm()
		}
		return m, nil

	case workflow.StateReady:
		if key == keys.Enter {
			// Clips are premium; reject locally rather than burn a request
			if m.wf.Kind() == workflow.KindClip && !m.config.IsAuthenticated() {
				m.submitErr = "Clips require a premium API key. Add one in Settings."
				return m, nil
			}
			sub, err := m.wf.Submit()
			if err != nil {
				m.submitErr = errors.UserMessage(err)
				return m, nil
			}
			m.submitErr = ""
			return m, tea.Batch(m.submitCmd(sub), m.startSpinner())
		}
		if m.createForm != nil {
			var cmd tea.Cmd
			m.createForm, cmd = ui.HuhFormUpdate(m.createForm, msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) handleSettingsKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case keys.Escape:
		m.setPage(m.settingsReturn)
		if m.settingsReturn == PageHome {
			m.homeFocus = focusInput
			m.searchInput.Focus()
		}
		return m, nil
	case keys.CtrlT:
		m.keyTest = keyTestRunning
		m.keyTestToken++
		m.keyTestMsg = ""
		return m, tea.Batch(
			m.testKeyCmd(m.keyTestToken, strings.TrimSpace(m.settingsVals.ServerURL), strings.TrimSpace(m.settingsVals.APIKey)),
			m.startSpinner(),
		)
	case keys.Enter:
		m.saveSettings()
		m.setPage(m.settingsReturn)
		if m.settingsReturn == PageHome {
			m.homeFocus = focusInput
			m.searchInput.Focus()
		}
		return m, nil
	}

	if m.settingsForm != nil {
		var cmd tea.Cmd
		m.settingsForm, cmd = ui.HuhFormUpdate(m.settingsForm, msg)
		return m, cmd
	}
	return m, nil
}

// Navigation actions

// startSearch records the query and fires page 1
func (m *Model) startSearch(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	if err := m.config.AddRecentSearch(query); err != nil {
		logger.Log("App: Failed to record recent search: %v", err)
	}

	m.query = query
	m.searchToken++
	m.searching = true
	m.searchErr = ""
	m.searchRes = nil
	m.searchSel = 0
	m.setPage(PageSearch)
	return tea.Batch(m.searchCmd(m.searchToken, query, 1), m.startSpinner())
}

// gotoSearchPage moves to another results page, clamped to valid range
func (m *Model) gotoSearchPage(page int) tea.Cmd {
	if m.searchRes == nil {
		return nil
	}
	total := m.searchRes.Pagination.TotalPages
	page = paginate.Clamp(page, total)
	if page == m.searchRes.Pagination.Page {
		return nil
	}

	m.searchToken++
	m.searching = true
	return tea.Batch(m.searchCmd(m.searchToken, m.query, page), m.startSpinner())
}

// openLine navigates to a line's detail page
func (m *Model) openLine(subtitleID int) tea.Cmd {
	m.lineToken++
	m.lineLoading = true
	m.lineErr = ""
	m.lineCtx = nil
	m.setPage(PageLine)
	return tea.Batch(m.lineContextCmd(m.lineToken, subtitleID), m.startSpinner())
}

// openEpisode opens the current line's episode listing
func (m *Model) openEpisode() tea.Cmd {
	if m.lineCtx == nil {
		return nil
	}

	m.epOriginID = m.lineCtx.Subtitle.ID
	m.epToken++
	m.epLoading = true
	m.epErr = ""
	m.episode = nil
	m.setPage(PageEpisode)
	return tea.Batch(m.episodeCmd(m.epToken, m.lineCtx.Subtitle.Episode, 1), m.startSpinner())
}

// gotoEpisodePage moves to another dialogue page, clamped to valid range
func (m *Model) gotoEpisodePage(page int) tea.Cmd {
	if m.episode == nil {
		return nil
	}
	total := m.episode.Pagination.TotalPages
	page = paginate.Clamp(page, total)
	if page == m.episode.Pagination.Page {
		return nil
	}

	m.epToken++
	m.epLoading = true
	return tea.Batch(m.episodeCmd(m.epToken, m.episode.Episode.ID, page), m.startSpinner())
}

// startCreate opens the creation page for the current line
func (m *Model) startCreate(kind workflow.Kind) tea.Cmd {
	if m.lineCtx == nil {
		return nil
	}

	token := m.wf.Load(m.lineCtx.Subtitle.ID, kind)
	m.createForm = nil
	m.submitErr = ""
	m.copied = false
	m.setPage(PageCreate)
	return tea.Batch(m.createContextCmd(token, m.lineCtx.Subtitle.ID), m.startSpinner())
}

// cycleKind switches the creation kind, keeping the loaded context
func (m *Model) cycleKind() {
	current := m.wf.Kind()
	for i, k := range workflow.Kinds {
		if k == current {
			next := workflow.Kinds[(i+1)%len(workflow.Kinds)]
			m.wf.SelectKind(next)
			m.submitErr = ""
			m.copied = false
			m.rebuildCreateForm()
			return
		}
	}
}

// openSettings opens the settings page, remembering where to return
func (m *Model) openSettings(returnTo Page) {
	m.settingsReturn = returnTo
	m.settingsVals = ui.SettingsValues{
		APIKey:    m.config.GetAPIKey(),
		ServerURL: m.config.GetServerURL(),
		Theme:     m.config.GetTheme(),
	}
	if m.settingsVals.Theme == "" {
		m.settingsVals.Theme = string(ui.DefaultTheme)
	}
	m.settingsForm = ui.NewSettingsForm(&m.settingsVals, min(ui.ModalWidth, max(30, m.width-ui.BorderSize-4)))
	m.keyTest = keyTestIdle
	m.keyTestMsg = ""
	m.searchInput.Blur()
	m.setPage(PageSettings)
}

// saveSettings persists the settings form, then pushes the credential into
// the gateway. The store is updated before the client so a crash between the
// two can't leave a key in use that was never persisted.
func (m *Model) saveSettings() {
	key := strings.TrimSpace(m.settingsVals.APIKey)
	server := strings.TrimSpace(m.settingsVals.ServerURL)

	if err := m.config.SetAPIKey(key); err != nil {
		logger.Log("App: Failed to save API key: %v", err)
	}
	if server != "" && server != m.config.GetServerURL() {
		if err := m.config.SetServerURL(server); err != nil {
			logger.Log("App: Failed to save server URL: %v", err)
		}
	}
	if err := m.config.SetTheme(m.settingsVals.Theme); err != nil {
		logger.Log("App: Failed to save theme: %v", err)
	}
	ui.SetThemeByName(m.settingsVals.Theme)

	// Rebuild the gateway against the saved server and key
	m.client = api.New(m.config.GetServerURL())
	if key != "" {
		m.client.SetAPIKey(key)
	}
}
