package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/veepiac/quip/internal/changelog"
	"github.com/veepiac/quip/internal/errors"
	"github.com/veepiac/quip/internal/logger"
	"github.com/veepiac/quip/internal/ui"
	"github.com/veepiac/quip/internal/workflow"
)

// Update handles messages. This is the core Bubble Tea update function that
// routes all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case spinnerTickMsg:
		if m.loading() {
			m.spinnerIdx++
			return m, spinnerTick()
		}
		m.spinning = false
		return m, nil

	case SearchResultMsg:
		return m.handleSearchResult(msg)

	case LineContextMsg:
		return m.handleLineContext(msg)

	case CreateContextMsg:
		return m.handleCreateContext(msg)

	case EpisodeLoadedMsg:
		return m.handleEpisodeLoaded(msg)

	case CreationDoneMsg:
		return m.handleCreationDone(msg)

	case KeyTestResultMsg:
		return m.handleKeyTestResult(msg)

	case ClipboardCopiedMsg:
		m.copied = msg.Err == nil
		if msg.Err != nil {
			logger.Log("App: Clipboard copy failed: %v", msg.Err)
		}
		return m, nil

	case StartupModalMsg:
		return m.handleStartupModals()
	}

	return m, nil
}

// loading reports whether any request is in flight
func (m *Model) loading() bool {
	if m.searching || m.lineLoading || m.epLoading || m.keyTest == keyTestRunning {
		return true
	}
	switch m.wf.State() {
	case workflow.StateLoadingContext, workflow.StateSubmitting:
		return true
	}
	return false
}

// startSpinner returns the tick command if the spinner isn't already running
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return spinnerTick()
}

func (m *Model) updateSizes() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.searchInput.SetWidth(min(ui.ModalInputWidth, max(10, m.width-ui.BorderSize-4)))
}

// handleSearchResult applies one page of search results, dropping stale ones
func (m *Model) handleSearchResult(msg SearchResultMsg) (tea.Model, tea.Cmd) {
	if msg.Token != m.searchToken {
		logger.Log("App: Dropping stale search result token=%d current=%d", msg.Token, m.searchToken)
		return m, nil
	}

	m.searching = false
	if msg.Err != nil {
		m.searchErr = errors.UserMessage(msg.Err)
		return m, nil
	}

	m.searchErr = ""
	m.searchRes = msg.Result
	m.searchSel = 0
	return m, nil
}

// handleLineContext applies the line page's context window, dropping stale ones
func (m *Model) handleLineContext(msg LineContextMsg) (tea.Model, tea.Cmd) {
	if msg.Token != m.lineToken {
		logger.Log("App: Dropping stale line context token=%d current=%d", msg.Token, m.lineToken)
		return m, nil
	}

	m.lineLoading = false
	if msg.Err != nil {
		m.lineErr = errors.UserMessage(msg.Err)
		return m, nil
	}

	m.lineErr = ""
	m.lineCtx = msg.Ctx
	// Cursor starts on the target frame, which sits after the before-window
	m.frameSel = len(msg.Ctx.Frames.Before)
	return m, nil
}

// handleCreateContext feeds the workflow; the workflow decides staleness
func (m *Model) handleCreateContext(msg CreateContextMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if m.wf.LoadFailed(msg.Token) {
			m.submitErr = errors.UserMessage(msg.Err)
		}
		return m, nil
	}

	if m.wf.ContextLoaded(msg.Token, msg.Ctx) {
		m.submitErr = ""
		m.rebuildCreateForm()
	}
	return m, nil
}

// handleEpisodeLoaded applies one page of episode dialogue, dropping stale ones
func (m *Model) handleEpisodeLoaded(msg EpisodeLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Token != m.epToken {
		return m, nil
	}

	m.epLoading = false
	if msg.Err != nil {
		m.epErr = errors.UserMessage(msg.Err)
		return m, nil
	}

	m.epErr = ""
	m.episode = msg.Result
	m.episodePage = msg.Result.Pagination.Page

	// Land the cursor on the line the user came from when it's on this page
	m.episodeSel = 0
	for i, sub := range msg.Result.Subtitles {
		if sub.ID == m.epOriginID {
			m.episodeSel = i
			break
		}
	}
	return m, nil
}

// handleCreationDone applies a finished render to the workflow; the
// workflow decides staleness
func (m *Model) handleCreationDone(msg CreationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if m.wf.SubmitFailed(msg.Token) {
			m.submitErr = errors.UserMessage(msg.Err)
		}
		return m, nil
	}

	if !m.wf.SubmitSucceeded(msg.Token, msg.Result) {
		return m, nil
	}
	m.submitErr = ""
	return m, notifyCmd(msg.Kind)
}

// handleKeyTestResult applies the settings connection test outcome
func (m *Model) handleKeyTestResult(msg KeyTestResultMsg) (tea.Model, tea.Cmd) {
	if m.keyTest != keyTestRunning || msg.Token != m.keyTestToken {
		return m, nil
	}
	if msg.Err != nil {
		m.keyTest = keyTestFailed
		m.keyTestMsg = errors.UserMessage(msg.Err)
	} else {
		m.keyTest = keyTestOK
		m.keyTestMsg = "Connection OK"
	}
	return m, nil
}

// handleStartupModals shows the welcome modal on first run, or the What's New
// modal after an upgrade.
func (m *Model) handleStartupModals() (tea.Model, tea.Cmd) {
	lastSeen := m.config.GetLastSeenVersion()

	if lastSeen == "" {
		m.modal.Show(ui.NewWelcomeState())
		return m, nil
	}

	if m.version != "" && changelog.CompareVersions(m.version, lastSeen) > 0 {
		entries := changelog.GetChangesSince(lastSeen, changelog.Parse(changelog.Content))
		if len(entries) > 0 {
			display := make([]ui.ChangelogEntry, len(entries))
			for i, e := range entries {
				display[i] = ui.ChangelogEntry{Version: e.Version, Date: e.Date, Changes: e.Changes}
			}
			m.modal.Show(ui.NewChangelogState(display))
		}
	}
	return m, nil
}

// dismissStartupModal hides the modal and records the version so the same
// notes don't show again.
func (m *Model) dismissStartupModal() {
	m.modal.Hide()
	if m.version != "" {
		if err := m.config.SetLastSeenVersion(m.version); err != nil {
			logger.Log("App: Failed to record last seen version: %v", err)
		}
	}
}

// rebuildCreateForm builds the huh form for the workflow's current kind.
// Forms bind by pointer into the workflow's option structs, so a rebuild is
// needed whenever those structs are re-seeded.
func (m *Model) rebuildCreateForm() {
	ctx := m.wf.Context()
	if ctx == nil {
		m.createForm = nil
		return
	}

	width := min(ui.ModalWidth, max(30, m.width-ui.BorderSize-4))
	switch m.wf.Kind() {
	case workflow.KindMeme:
		m.createForm = ui.NewMemeForm(&m.wf.Meme, ctx.Frames.All(), width)
	case workflow.KindGif:
		m.createForm = ui.NewGifForm(&m.wf.Gif, ctx.Frames.All(), width)
	case workflow.KindClip:
		m.createForm = ui.NewClipForm(&m.wf.Clip, width)
	}
}
