package workflow

import "github.com/veepiac/quip/internal/api"

// applyDefaults seeds every kind's fields from the freshly loaded context.
// Called once on entering Ready so each kind starts from a sensible
// selection even before the user switches to it.
func (w *Workflow) applyDefaults() {
	for _, k := range Kinds {
		w.applyKindDefaults(k)
	}
}

// applyKindDefaults resets one kind's fields to its context-derived
// defaults.
func (w *Workflow) applyKindDefaults(kind Kind) {
	if w.context == nil {
		return
	}

	switch kind {
	case KindMeme:
		w.Meme = MemeOptions{
			Text:         w.context.Subtitle.Dialogue,
			FrameID:      w.context.Frames.Current.ID,
			Font:         api.FontImpact,
			TextColor:    "#ffffff",
			OutlineColor: "#000000",
		}
	case KindGif:
		// Default to the widest available range; fall back to the current
		// frame when a side of the window is empty.
		start := w.context.Frames.Current.ID
		end := w.context.Frames.Current.ID
		if len(w.context.Frames.Before) > 0 {
			start = w.context.Frames.Before[0].ID
		}
		if len(w.context.Frames.After) > 0 {
			end = w.context.Frames.After[len(w.context.Frames.After)-1].ID
		}
		w.Gif = GifOptions{
			StartFrame: start,
			EndFrame:   end,
			Caption:    true,
			Speed:      1.0,
			Quality:    api.QualityMedium,
		}
	case KindClip:
		w.Clip = ClipOptions{
			StartTime: w.context.Subtitle.Timestamp.Start,
			EndTime:   w.context.Subtitle.Timestamp.End,
			Caption:   true,
			Format:    api.FormatMP4,
			Quality:   api.QualityMedium,
		}
	}
}
