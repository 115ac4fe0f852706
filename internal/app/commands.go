package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/veepiac/quip/internal/api"
	"github.com/veepiac/quip/internal/clipboard"
	"github.com/veepiac/quip/internal/logger"
	"github.com/veepiac/quip/internal/notification"
	"github.com/veepiac/quip/internal/workflow"
)

// requestTimeout bounds every command the UI fires
const requestTimeout = 30 * time.Second

// StartupModalMsg is sent on app start to trigger welcome/changelog modals
type StartupModalMsg struct{}

// SearchResultMsg carries one page of search results. Token identifies which
// request produced it; stale tokens are dropped.
type SearchResultMsg struct {
	Token  uint64
	Result *api.SearchResult
	Err    error
}

// LineContextMsg carries the line page's context window
type LineContextMsg struct {
	Token uint64
	Ctx   *api.SubtitleContext
	Err   error
}

// CreateContextMsg carries the create page's wider context window. Token is
// the workflow token issued by Load.
type CreateContextMsg struct {
	Token uint64
	Ctx   *api.SubtitleContext
	Err   error
}

// EpisodeLoadedMsg carries one page of an episode's dialogue
type EpisodeLoadedMsg struct {
	Token  uint64
	Result *api.EpisodeResult
	Err    error
}

// CreationDoneMsg reports a finished (or failed) render. Token is the
// submission token issued by the workflow; stale tokens are dropped.
type CreationDoneMsg struct {
	Token  uint64
	Kind   workflow.Kind
	Result *api.CreationResult
	Err    error
}

// KeyTestResultMsg reports the settings page's connection test. Token
// identifies which test run produced it; stale tokens are dropped.
type KeyTestResultMsg struct {
	Token uint64
	Err   error
}

// ClipboardCopiedMsg reports the result URL copy
type ClipboardCopiedMsg struct {
	Err error
}

// spinnerTickMsg drives the loading animation
type spinnerTickMsg time.Time

func spinnerTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// searchCmd fires a search request tagged with token
func (m *Model) searchCmd(token uint64, query string, page int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		logger.Log("App: Searching query=%q page=%d token=%d", query, page, token)
		result, err := client.Search(ctx, query, page, searchPageLimit)
		return SearchResultMsg{Token: token, Result: result, Err: err}
	}
}

// lineContextCmd fetches the line page's context window
func (m *Model) lineContextCmd(token uint64, subtitleID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		logger.Log("App: Loading line context id=%d token=%d", subtitleID, token)
		sc, err := client.GetSubtitle(ctx, subtitleID, lineFramesBefore, lineFramesAfter, lineSubsBefore, lineSubsAfter)
		return LineContextMsg{Token: token, Ctx: sc, Err: err}
	}
}

// createContextCmd fetches the create page's wider context window
func (m *Model) createContextCmd(token uint64, subtitleID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		logger.Log("App: Loading create context id=%d token=%d", subtitleID, token)
		sc, err := client.GetSubtitle(ctx, subtitleID, createFramesBefore, createFramesAfter, createSubsBefore, createSubsAfter)
		return CreateContextMsg{Token: token, Ctx: sc, Err: err}
	}
}

// episodeCmd fetches one page of an episode's dialogue
func (m *Model) episodeCmd(token uint64, episodeID string, page int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		logger.Log("App: Loading episode id=%s page=%d token=%d", episodeID, page, token)
		result, err := client.GetEpisode(ctx, episodeID, page, episodePageLimit)
		return EpisodeLoadedMsg{Token: token, Result: result, Err: err}
	}
}

// submitCmd sends a validated creation request
func (m *Model) submitCmd(sub *workflow.Submission) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var result *api.CreationResult
		var err error
		switch sub.Kind {
		case workflow.KindMeme:
			result, err = client.CreateMeme(ctx, *sub.Meme)
		case workflow.KindGif:
			result, err = client.CreateGif(ctx, *sub.Gif)
		case workflow.KindClip:
			result, err = client.CreateClip(ctx, *sub.Clip)
		}
		return CreationDoneMsg{Token: sub.Token, Kind: sub.Kind, Result: result, Err: err}
	}
}

// testKeyCmd verifies the entered API key with a minimal search
func (m *Model) testKeyCmd(token uint64, serverURL, key string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		check := api.New(serverURL)
		if key != "" {
			check.SetAPIKey(key)
		}
		_, err := check.Search(ctx, "test", 1, 1)
		return KeyTestResultMsg{Token: token, Err: err}
	}
}

// copyResultCmd writes the asset URL to the system clipboard
func copyResultCmd(url string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteText(url)
		return ClipboardCopiedMsg{Err: err}
	}
}

// notifyCmd sends a desktop notification for a finished render
func notifyCmd(kind workflow.Kind) tea.Cmd {
	return func() tea.Msg {
		if err := notification.CreationReady(string(kind)); err != nil {
			logger.Log("App: Notification failed: %v", err)
		}
		return nil
	}
}
