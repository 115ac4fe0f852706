package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/veepiac/quip/internal/api"
)

// truncate shortens s to fit within width display cells, appending an
// ellipsis when anything was cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// RenderSearchResults renders one page of search hits with the selected row
// highlighted. Each row shows the episode tag, timestamp, and dialogue.
func RenderSearchResults(results []api.Subtitle, selected, width int) string {
	if len(results) == 0 {
		return ListItemStyle.Render(ListMetaStyle.Render("No lines matched. Try a shorter quote."))
	}

	var rows []string
	for i, sub := range results {
		meta := fmt.Sprintf("%s %s", sub.Episode, sub.Timestamp.Start)
		dialogue := strings.ReplaceAll(sub.Dialogue, "\n", " ")

		prefix := "  "
		style := ListItemStyle
		if i == selected {
			prefix = "> "
			style = ListSelectedStyle
		}

		line := prefix + truncate(dialogue, max(0, width-len(meta)-8))
		metaPart := ListMetaStyle.Render(meta)
		rows = append(rows, style.Render(line)+" "+metaPart)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderEpisodeLines renders one page of an episode's dialogue. highlightID
// marks the line the user navigated from, selected marks the cursor row.
func RenderEpisodeLines(subs []api.Subtitle, selected int, highlightID, width int) string {
	if len(subs) == 0 {
		return ListItemStyle.Render(ListMetaStyle.Render("This page has no dialogue."))
	}

	var rows []string
	for i, sub := range subs {
		ts := TimestampStyle.Render(sub.Timestamp.Start)
		dialogue := strings.ReplaceAll(sub.Dialogue, "\n", " ")
		dialogue = truncate(dialogue, max(0, width-16))

		prefix := "  "
		style := ListItemStyle
		if i == selected {
			prefix = "> "
			style = ListSelectedStyle
		}
		if sub.ID == highlightID && i != selected {
			dialogue = HighlightLineStyle.Render(dialogue)
		}

		rows = append(rows, style.Render(prefix+ts+"  ")+dialogue)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderEpisodeTitle renders the episode banner line.
func RenderEpisodeTitle(ep api.Episode) string {
	title := fmt.Sprintf("S%02dE%02d · %s", ep.Season, ep.Episode, ep.Title)
	if ep.AirDate != "" {
		title += "  " + ep.AirDate
	}
	return PanelTitleStyle.Render(title)
}

// RenderRecentSearches renders the home page's recent search list.
func RenderRecentSearches(searches []string, selected int, focused bool) string {
	if len(searches) == 0 {
		return ListItemStyle.Render(ListMetaStyle.Render("Recent searches will show up here."))
	}

	label := ListMetaStyle.Render("Recent searches:")
	rows := []string{label}
	for i, q := range searches {
		prefix := "  "
		style := ListItemStyle
		if focused && i == selected {
			prefix = "> "
			style = ListSelectedStyle
		}
		rows = append(rows, style.Render(prefix+q))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
