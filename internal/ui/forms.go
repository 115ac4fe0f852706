package ui

import (
	"fmt"

	huh "charm.land/huh/v2"

	"github.com/veepiac/quip/internal/api"
	"github.com/veepiac/quip/internal/workflow"
)

// gifSpeeds are the playback speeds offered in the gif form. All fall within
// the range the backend accepts.
var gifSpeeds = []float64{0.5, 0.75, 1.0, 1.25, 1.5, 2.0}

// frameOptions builds select options labelled with each frame's timecode.
func frameOptions(frames []api.Frame) []huh.Option[int] {
	opts := make([]huh.Option[int], len(frames))
	for i, f := range frames {
		opts[i] = huh.NewOption(shortTimecode(f.Timestamp), f.ID)
	}
	return opts
}

// NewMemeForm builds the meme options form bound directly to opts. The form
// mutates opts through the bound pointers; rebuild it whenever opts is reset.
func NewMemeForm(opts *workflow.MemeOptions, frames []api.Frame, width int) *huh.Form {
	fontOpts := make([]huh.Option[string], len(api.Fonts))
	for i, f := range api.Fonts {
		fontOpts[i] = huh.NewOption(f, f)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Caption").
			Description("Text drawn onto the frame").
			CharLimit(ModalInputCharLimit).
			Value(&opts.Text),
		huh.NewSelect[int]().
			Title("Frame").
			Description("Which moment to caption").
			Options(frameOptions(frames)...).
			Value(&opts.FrameID),
		huh.NewSelect[string]().
			Title("Font").
			Options(fontOpts...).
			Value(&opts.Font),
		huh.NewInput().
			Title("Text color").
			Placeholder("#ffffff").
			CharLimit(7).
			Value(&opts.TextColor),
		huh.NewInput().
			Title("Outline color").
			Placeholder("#000000").
			CharLimit(7).
			Value(&opts.OutlineColor),
	)).
		WithTheme(FormTheme()).
		WithShowHelp(false).
		WithWidth(width).
		WithLayout(huh.LayoutStack)

	InitHuhForm(form)
	return form
}

// NewGifForm builds the gif options form bound directly to opts.
func NewGifForm(opts *workflow.GifOptions, frames []api.Frame, width int) *huh.Form {
	speedOpts := make([]huh.Option[float64], len(gifSpeeds))
	for i, s := range gifSpeeds {
		speedOpts[i] = huh.NewOption(fmt.Sprintf("%.2gx", s), s)
	}

	qualityOpts := make([]huh.Option[string], len(api.Qualities))
	for i, q := range api.Qualities {
		qualityOpts[i] = huh.NewOption(q, q)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("First frame").
			Options(frameOptions(frames)...).
			Value(&opts.StartFrame),
		huh.NewSelect[int]().
			Title("Last frame").
			Options(frameOptions(frames)...).
			Value(&opts.EndFrame),
		huh.NewSelect[float64]().
			Title("Speed").
			Options(speedOpts...).
			Value(&opts.Speed),
		huh.NewSelect[string]().
			Title("Quality").
			Options(qualityOpts...).
			Value(&opts.Quality),
		huh.NewConfirm().
			Title("Caption").
			Description("Overlay the dialogue on the gif").
			Affirmative("On").
			Negative("Off").
			Value(&opts.Caption),
	)).
		WithTheme(FormTheme()).
		WithShowHelp(false).
		WithWidth(width).
		WithLayout(huh.LayoutStack)

	InitHuhForm(form)
	return form
}

// NewClipForm builds the clip options form bound directly to opts.
func NewClipForm(opts *workflow.ClipOptions, width int) *huh.Form {
	formatOpts := make([]huh.Option[string], len(api.Formats))
	for i, f := range api.Formats {
		formatOpts[i] = huh.NewOption(f, f)
	}

	qualityOpts := make([]huh.Option[string], len(api.Qualities))
	for i, q := range api.Qualities {
		qualityOpts[i] = huh.NewOption(q, q)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Start time").
			Placeholder("00:01:23,456").
			CharLimit(12).
			Value(&opts.StartTime),
		huh.NewInput().
			Title("End time").
			Placeholder("00:01:25,789").
			CharLimit(12).
			Value(&opts.EndTime),
		huh.NewSelect[string]().
			Title("Format").
			Options(formatOpts...).
			Value(&opts.Format),
		huh.NewSelect[string]().
			Title("Quality").
			Options(qualityOpts...).
			Value(&opts.Quality),
		huh.NewConfirm().
			Title("Caption").
			Description("Burn subtitles into the clip").
			Affirmative("On").
			Negative("Off").
			Value(&opts.Caption),
	)).
		WithTheme(FormTheme()).
		WithShowHelp(false).
		WithWidth(width).
		WithLayout(huh.LayoutStack)

	InitHuhForm(form)
	return form
}

// SettingsValues are the fields bound into the settings form.
type SettingsValues struct {
	APIKey    string
	ServerURL string
	Theme     string
}

// NewSettingsForm builds the settings form bound directly to values.
func NewSettingsForm(values *SettingsValues, width int) *huh.Form {
	names := ThemeNames()
	themeOpts := make([]huh.Option[string], len(names))
	for i, name := range names {
		themeOpts[i] = huh.NewOption(BuiltinThemes[name].Name, string(name))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("API key").
			Description("Needed for creating memes, gifs, and clips").
			EchoMode(huh.EchoModePassword).
			CharLimit(ModalInputCharLimit).
			Value(&values.APIKey),
		huh.NewInput().
			Title("Server").
			Description("Base URL of the Veepiac API").
			Placeholder("https://api.veepiac.com/v1").
			CharLimit(ModalInputCharLimit).
			Value(&values.ServerURL),
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOpts...).
			Value(&values.Theme),
	)).
		WithTheme(FormTheme()).
		WithShowHelp(false).
		WithWidth(width).
		WithLayout(huh.LayoutStack)

	InitHuhForm(form)
	return form
}
