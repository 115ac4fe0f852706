package app

import (
	"fmt"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/veepiac/quip/internal/api"
	"github.com/veepiac/quip/internal/config"
	"github.com/veepiac/quip/internal/keys"
)

// testConfig creates a config backed by a no-op persister so tests never
// touch the real config file.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"), func(string, []byte) error {
		return nil
	})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	// Mark the changelog as seen so startup modals stay out of the way
	if err := cfg.SetLastSeenVersion("0.0.0-test"); err != nil {
		t.Fatalf("SetLastSeenVersion: %v", err)
	}
	return cfg
}

// testModel creates a sized test model.
func testModel(t *testing.T) *Model {
	t.Helper()
	m := New(testConfig(t), "0.0.0-test")
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// keyPress creates a tea.KeyPressMsg for the given key string.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Left:
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case keys.Right:
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlT:
		return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	case keys.CtrlY:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the updated model.
func sendKey(m *Model, key string) *Model {
	result, _ := m.Update(keyPress(key))
	return result.(*Model)
}

// typeText simulates typing a string character by character.
func typeText(m *Model, text string) *Model {
	for _, ch := range text {
		m = sendKey(m, string(ch))
	}
	return m
}

// Fixtures

func testSubtitle(id int) api.Subtitle {
	return api.Subtitle{
		ID:           id,
		Episode:      "S01E01",
		EpisodeTitle: "Pilot",
		Index:        id,
		Timestamp:    api.Timestamp{Start: "00:01:00,000", End: "00:01:02,500"},
		Dialogue:     fmt.Sprintf("Line %d", id),
	}
}

func testSearchResult(query string, page, totalPages int) *api.SearchResult {
	return &api.SearchResult{
		Results: []api.Subtitle{testSubtitle(1), testSubtitle(2), testSubtitle(3)},
		Pagination: api.Pagination{
			TotalResults: totalPages * 3,
			Page:         page,
			TotalPages:   totalPages,
			Limit:        searchPageLimit,
		},
	}
}

func testContext(id int) *api.SubtitleContext {
	return &api.SubtitleContext{
		Subtitle: testSubtitle(id),
		Frames: api.FrameWindow{
			Before:  []api.Frame{{ID: 100, Timestamp: "00:00:59,000"}, {ID: 101, Timestamp: "00:00:59,500"}},
			Current: api.Frame{ID: 102, Timestamp: "00:01:00,000"},
			After:   []api.Frame{{ID: 103, Timestamp: "00:01:00,500"}, {ID: 104, Timestamp: "00:01:01,000"}},
		},
		Surrounding: api.SubtitleWindow{
			Before: []api.NeighborLine{{ID: id - 1, Dialogue: "Before"}},
			After:  []api.NeighborLine{{ID: id + 1, Dialogue: "After"}},
		},
		EpisodeLink: "/episodes/S01E01",
	}
}

func testEpisodeResult(page, totalPages int) *api.EpisodeResult {
	return &api.EpisodeResult{
		Episode:   api.Episode{ID: "S01E01", Title: "Pilot", Season: 1, Episode: 1},
		Subtitles: []api.Subtitle{testSubtitle(41), testSubtitle(42), testSubtitle(43)},
		Pagination: api.Pagination{
			TotalResults: totalPages * 3,
			Page:         page,
			TotalPages:   totalPages,
			Limit:        episodePageLimit,
		},
	}
}

func resultFixture() *api.CreationResult {
	return &api.CreationResult{
		AssetID:   "asset-1",
		URL:       "https://cdn.veepiac.com/assets/asset-1.gif",
		ExpiresAt: "2026-09-01T00:00:00Z",
	}
}

// searchModel returns a model sitting on the search page with results loaded.
func searchModel(t *testing.T) *Model {
	t.Helper()
	m := testModel(t)
	m = typeText(m, "pilot")
	m = sendKey(m, keys.Enter)
	m.Update(SearchResultMsg{Token: m.searchToken, Result: testSearchResult("pilot", 1, 3)})
	return m
}

// lineModel returns a model sitting on the line page with context loaded.
func lineModel(t *testing.T) *Model {
	t.Helper()
	m := searchModel(t)
	m = sendKey(m, keys.Enter)
	m.Update(LineContextMsg{Token: m.lineToken, Ctx: testContext(1)})
	return m
}
