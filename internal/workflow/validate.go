package workflow

import (
	"fmt"
	"strings"

	"github.com/veepiac/quip/internal/api"
	"github.com/veepiac/quip/internal/errors"
)

// validate checks the current kind's selection. A failure carries
// errors.KindValidation and must be surfaced without any network call.
func (w *Workflow) validate() error {
	const op = errors.Op("workflow.Submit")

	switch w.kind {
	case KindMeme:
		if strings.TrimSpace(w.Meme.Text) == "" {
			return errors.E(op, errors.KindValidation, "meme text cannot be empty")
		}
		if w.Meme.FrameID < 0 {
			return errors.E(op, errors.KindValidation, "no frame selected")
		}
		if !contains(api.Fonts, w.Meme.Font) {
			return errors.E(op, errors.KindValidation, fmt.Sprintf("unknown font %q", w.Meme.Font))
		}
	case KindGif:
		if w.Gif.StartFrame > w.Gif.EndFrame {
			return errors.E(op, errors.KindValidation, "start frame must not be after end frame")
		}
		if w.Gif.Speed < api.MinGifSpeed || w.Gif.Speed > api.MaxGifSpeed {
			return errors.E(op, errors.KindValidation, fmt.Sprintf("speed must be between %.1fx and %.1fx", api.MinGifSpeed, api.MaxGifSpeed))
		}
		if !contains(api.Qualities, w.Gif.Quality) {
			return errors.E(op, errors.KindValidation, fmt.Sprintf("unknown quality %q", w.Gif.Quality))
		}
	case KindClip:
		if strings.TrimSpace(w.Clip.StartTime) == "" || strings.TrimSpace(w.Clip.EndTime) == "" {
			return errors.E(op, errors.KindValidation, "start and end time are required")
		}
		if !contains(api.Formats, w.Clip.Format) {
			return errors.E(op, errors.KindValidation, fmt.Sprintf("unknown format %q", w.Clip.Format))
		}
		if !contains(api.Qualities, w.Clip.Quality) {
			return errors.E(op, errors.KindValidation, fmt.Sprintf("unknown quality %q", w.Clip.Quality))
		}
	default:
		return errors.E(op, errors.KindValidation, fmt.Sprintf("unknown creation kind %q", w.kind))
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
