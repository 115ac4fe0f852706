package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/veepiac/quip/internal/ui"
	"github.com/veepiac/quip/internal/workflow"
)

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render produces the full screen as a string. Split out so tests can
// inspect views without a terminal.
func (m *Model) render() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	m.syncFooter()
	m.header.SetPageName(m.page.String())
	m.header.SetServer(serverHost(m.config.GetServerURL()))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		lipgloss.NewStyle().Height(m.contentHeight()).Render(m.pageView()),
		m.footer.View(),
	)
}

func (m *Model) contentHeight() int {
	return max(1, m.height-ui.HeaderHeight-ui.FooterHeight)
}

func (m *Model) contentWidth() int {
	return max(10, m.width-2)
}

// syncFooter pushes the current page context into the footer
func (m *Model) syncFooter() {
	m.footer.SetContext(ui.FooterContext{
		Page:         m.page.String(),
		InputFocused: m.page == PageHome && m.homeFocus == focusInput,
		HasResults:   m.searchRes != nil && len(m.searchRes.Results) > 0,
		Submitting:   m.wf.State() == workflow.StateSubmitting,
		HasResult:    m.wf.State() == workflow.StateResult,
		ModalOpen:    m.modal.IsVisible(),
	})
}

func (m *Model) pageView() string {
	switch m.page {
	case PageHome:
		return m.homeView()
	case PageSearch:
		return m.searchView()
	case PageLine:
		return m.lineView()
	case PageEpisode:
		return m.episodeView()
	case PageCreate:
		return m.createView()
	case PageSettings:
		return m.settingsView()
	}
	return ""
}

func (m *Model) homeView() string {
	title := ui.PanelTitleStyle.Render("Find a line, make it a meme")

	inputStyle := ui.InputStyle
	if m.homeFocus == focusInput {
		inputStyle = ui.InputFocusedStyle
	}
	input := inputStyle.Render(m.searchInput.View())

	recent := ui.RenderRecentSearches(
		m.config.GetRecentSearches(),
		m.recentIdx,
		m.homeFocus == focusRecent,
	)

	var parts []string
	parts = append(parts, title, "", input, "", recent)

	if !m.config.IsAuthenticated() {
		parts = append(parts, "", ui.StatusWarningStyle.Render("No API key set - searching works, creating media won't. Press s for settings."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) searchView() string {
	banner := ui.PanelTitleStyle.Render("Results for \"" + m.query + "\"")

	if m.searching {
		return lipgloss.JoinVertical(lipgloss.Left, banner, "", ui.RenderLoading(m.spinnerIdx, "Searching..."))
	}
	if m.searchErr != "" {
		return lipgloss.JoinVertical(lipgloss.Left, banner, "", ui.StatusErrorStyle.Render(m.searchErr))
	}
	if m.searchRes == nil {
		return banner
	}

	listing := ui.RenderSearchResults(m.searchRes.Results, m.searchSel, m.contentWidth())
	summary := ui.RenderPageSummary(m.searchRes.Pagination.TotalResults, m.searchRes.Pagination.Page, m.searchRes.Pagination.TotalPages)
	pager := ui.RenderPagination(m.searchRes.Pagination.Page, m.searchRes.Pagination.TotalPages)

	parts := []string{banner, "", listing}
	if summary != "" {
		parts = append(parts, "", summary)
	}
	if pager != "" {
		parts = append(parts, pager)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) lineView() string {
	if m.lineLoading {
		return ui.RenderLoading(m.spinnerIdx, "Loading line...")
	}
	if m.lineErr != "" {
		return ui.StatusErrorStyle.Render(m.lineErr)
	}
	if m.lineCtx == nil {
		return ""
	}

	banner := ui.RenderLineBanner(m.lineCtx.Subtitle)

	frames := m.lineCtx.Frames.All()
	var selectedID int
	if m.frameSel >= 0 && m.frameSel < len(frames) {
		selectedID = frames[m.frameSel].ID
	}
	strip := ui.RenderFrameStrip(frames, selectedID, m.contentWidth())
	dialogue := ui.RenderDialogueContext(m.lineCtx, m.contentWidth())

	return lipgloss.JoinVertical(lipgloss.Left, banner, "", strip, "", dialogue)
}

func (m *Model) episodeView() string {
	if m.epLoading {
		return ui.RenderLoading(m.spinnerIdx, "Loading episode...")
	}
	if m.epErr != "" {
		return ui.StatusErrorStyle.Render(m.epErr)
	}
	if m.episode == nil {
		return ""
	}

	banner := ui.RenderEpisodeTitle(m.episode.Episode)
	listing := ui.RenderEpisodeLines(m.episode.Subtitles, m.episodeSel, m.epOriginID, m.contentWidth())
	pager := ui.RenderPagination(m.episode.Pagination.Page, m.episode.Pagination.TotalPages)

	parts := []string{banner, "", listing}
	if pager != "" {
		parts = append(parts, "", pager)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) createView() string {
	banner := ui.PanelTitleStyle.Render("Create " + m.kindTabs())

	switch m.wf.State() {
	case workflow.StateLoadingContext:
		return lipgloss.JoinVertical(lipgloss.Left, banner, "", ui.RenderLoading(m.spinnerIdx, "Loading frames..."))

	case workflow.StateSubmitting:
		return lipgloss.JoinVertical(lipgloss.Left, banner, "", ui.RenderLoading(m.spinnerIdx, "Rendering your "+string(m.wf.Kind())+"..."))

	case workflow.StateResult:
		result := ui.RenderCreationResult(m.wf.Result(), string(m.wf.Kind()))
		parts := []string{banner, "", result}
		if m.copied {
			parts = append(parts, "", ui.StatusSuccessStyle.Render("URL copied to clipboard"))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)

	case workflow.StateReady:
		ctx := m.wf.Context()
		parts := []string{banner}

		if ctx != nil {
			selected := -1
			switch m.wf.Kind() {
			case workflow.KindMeme:
				selected = m.wf.Meme.FrameID
			case workflow.KindGif:
				selected = m.wf.Gif.StartFrame
			}
			parts = append(parts, "", ui.RenderFrameStrip(ctx.Frames.All(), selected, m.contentWidth()))
		}

		if m.createForm != nil {
			parts = append(parts, "", m.createForm.View())
		}
		if m.wf.Kind() == workflow.KindClip && !m.config.IsAuthenticated() {
			parts = append(parts, "", ui.StatusWarningStyle.Render("Clips require a premium API key."))
		}
		if m.submitErr != "" {
			parts = append(parts, "", ui.StatusErrorStyle.Render(m.submitErr))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	// Empty state: context failed to load or nothing selected yet
	parts := []string{banner}
	if m.submitErr != "" {
		parts = append(parts, "", ui.StatusErrorStyle.Render(m.submitErr))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// kindTabs renders the kind switcher, current kind bracketed
func (m *Model) kindTabs() string {
	var tabs []string
	for _, k := range workflow.Kinds {
		if k == m.wf.Kind() {
			tabs = append(tabs, "["+string(k)+"]")
		} else {
			tabs = append(tabs, string(k))
		}
	}
	return strings.Join(tabs, " · ")
}

func (m *Model) settingsView() string {
	banner := ui.PanelTitleStyle.Render("Settings")

	parts := []string{banner}
	if m.settingsForm != nil {
		parts = append(parts, "", m.settingsForm.View())
	}

	switch m.keyTest {
	case keyTestRunning:
		parts = append(parts, "", ui.RenderLoading(m.spinnerIdx, "Testing connection..."))
	case keyTestOK:
		parts = append(parts, "", ui.StatusSuccessStyle.Render(m.keyTestMsg))
	case keyTestFailed:
		parts = append(parts, "", ui.StatusErrorStyle.Render(m.keyTestMsg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
