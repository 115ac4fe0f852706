package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/veepiac/quip/internal/api"
)

// RenderFrameStrip renders the window of frames around a line as a row of
// timestamp cells, the selected frame outlined with the focus border. The
// terminal can't show the images themselves, so each cell carries the frame's
// timecode as its identity.
func RenderFrameStrip(frames []api.Frame, selectedID, width int) string {
	if len(frames) == 0 {
		return ""
	}

	shown := frames
	if len(shown) > FrameStripMax {
		shown = shown[:FrameStripMax]
	}

	var cells []string
	used := 0
	for _, f := range shown {
		label := shortTimecode(f.Timestamp)
		style := FrameCellStyle
		if f.ID == selectedID {
			style = FrameCellSelectedStyle
		}
		cell := style.Render(label)
		cellWidth := lipgloss.Width(cell)
		if used+cellWidth > width && len(cells) > 0 {
			break
		}
		used += cellWidth
		cells = append(cells, cell)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, cells...)
}

// shortTimecode trims "HH:MM:SS,mmm" down to "MM:SS,mmm" when the hour is
// zero, keeping the strip compact.
func shortTimecode(ts string) string {
	if strings.HasPrefix(ts, "00:") {
		return ts[3:]
	}
	return ts
}

// RenderDialogueContext renders the target line with its surrounding dialogue,
// the target highlighted.
func RenderDialogueContext(ctx *api.SubtitleContext, width int) string {
	if ctx == nil {
		return ""
	}

	var rows []string
	for _, n := range ctx.Surrounding.Before {
		rows = append(rows, renderNeighbor(n, width))
	}

	ts := TimestampStyle.Render(ctx.Subtitle.Timestamp.Start)
	dialogue := strings.ReplaceAll(ctx.Subtitle.Dialogue, "\n", " ")
	rows = append(rows, HighlightLineStyle.Render("> "+ts+"  "+truncate(dialogue, max(0, width-16))))

	for _, n := range ctx.Surrounding.After {
		rows = append(rows, renderNeighbor(n, width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderNeighbor(n api.NeighborLine, width int) string {
	ts := TimestampStyle.Render(n.Timestamp.Start)
	dialogue := strings.ReplaceAll(n.Dialogue, "\n", " ")
	return "  " + ts + "  " + ListMetaStyle.Render(truncate(dialogue, max(0, width-16)))
}

// RenderLineBanner renders the episode tag and timecode banner for a line.
func RenderLineBanner(sub api.Subtitle) string {
	banner := fmt.Sprintf("%s · %s → %s", sub.Episode, sub.Timestamp.Start, sub.Timestamp.End)
	if sub.EpisodeTitle != "" {
		banner = sub.EpisodeTitle + "  " + banner
	}
	return PanelTitleStyle.Render(banner)
}

// RenderCreationResult renders a finished render: URL, asset id, and expiry.
func RenderCreationResult(res *api.CreationResult, kind string) string {
	if res == nil {
		return ""
	}

	done := StatusSuccessStyle.Render("Your " + kind + " is ready")
	url := lipgloss.NewStyle().Foreground(ColorSecondary).Underline(true).Render(res.URL)
	meta := ListMetaStyle.Render("asset " + res.AssetID)
	expiry := StatusWarningStyle.Render("Link expires " + res.ExpiresAt)

	return lipgloss.JoinVertical(lipgloss.Left, done, "", url, meta, expiry)
}
