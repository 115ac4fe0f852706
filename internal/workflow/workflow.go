// Package workflow implements the media-creation state machine: load a line
// with its context, pick a creation kind and a frame or range selection,
// submit exactly one request, hold the result until the user discards it.
//
// The workflow is a pure state machine. It performs no IO; the app layer
// issues the gateway calls and feeds completions back in. Using an explicit
// state machine prevents invalid state combinations (double submission,
// edits on a held result) and makes transitions traceable.
package workflow

import (
	"github.com/veepiac/quip/internal/api"
	"github.com/veepiac/quip/internal/errors"
	"github.com/veepiac/quip/internal/logger"
)

// State represents the current phase of the creation workflow.
type State int

const (
	StateEmpty          State = iota // No target line
	StateLoadingContext              // Context fetch in flight
	StateReady                       // Context loaded, selection editable
	StateSubmitting                  // Creation request in flight
	StateResult                      // Result held, display-only
)

// String returns a human-readable name for the state
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateLoadingContext:
		return "LoadingContext"
	case StateReady:
		return "Ready"
	case StateSubmitting:
		return "Submitting"
	case StateResult:
		return "Result"
	default:
		return "Unknown"
	}
}

// Kind discriminates the three creation request variants.
type Kind string

const (
	KindMeme Kind = "meme"
	KindGif  Kind = "gif"
	KindClip Kind = "clip"
)

// Kinds lists the creation kinds in display order.
var Kinds = []Kind{KindMeme, KindGif, KindClip}

// MemeOptions are the editable fields for a meme still.
type MemeOptions struct {
	Text         string
	FrameID      int // -1 when no frame is selected
	Font         string
	TextColor    string
	OutlineColor string
}

// GifOptions are the editable fields for an animated clip.
type GifOptions struct {
	StartFrame int
	EndFrame   int
	Caption    bool
	Speed      float64
	Quality    string
}

// ClipOptions are the editable fields for a video clip.
type ClipOptions struct {
	StartTime string
	EndTime   string
	Caption   bool
	Format    string
	Quality   string
}

// Submission is a validated, ready-to-send creation request. Exactly one of
// the param fields is non-nil, matching Kind. Token tags the request; the
// completion must hand it back so abandoned submissions can be dropped.
type Submission struct {
	Kind  Kind
	Token uint64
	Meme  *api.MemeParams
	Gif   *api.GifParams
	Clip  *api.ClipParams
}

// Workflow is the creation state machine for one target line at a time.
type Workflow struct {
	state      State
	kind       Kind
	subtitleID int
	context    *api.SubtitleContext
	result     *api.CreationResult

	// Kind-specific selections, seeded from the context on load.
	Meme MemeOptions
	Gif  GifOptions
	Clip ClipOptions

	// token tags the latest issued request, context fetch or submission
	// alike; completions carrying an older token are dropped
	// (last-request-wins per target line).
	token uint64
}

// New creates an empty workflow.
func New() *Workflow {
	return &Workflow{
		state: StateEmpty,
		kind:  KindMeme,
		Meme:  MemeOptions{FrameID: -1},
	}
}

// State returns the current state.
func (w *Workflow) State() State { return w.state }

// Kind returns the selected creation kind.
func (w *Workflow) Kind() Kind { return w.kind }

// SubtitleID returns the target line identifier, or 0 when empty.
func (w *Workflow) SubtitleID() int { return w.subtitleID }

// Context returns the loaded line context, or nil.
func (w *Workflow) Context() *api.SubtitleContext { return w.context }

// Result returns the held creation result, or nil.
func (w *Workflow) Result() *api.CreationResult { return w.result }

// Token returns the latest issued context-fetch token.
func (w *Workflow) Token() uint64 { return w.token }

// Load targets a new line and returns the token tagging the fetch the
// caller must now issue. Any prior in-flight fetch is implicitly obsoleted:
// its completion will no longer match the latest token.
func (w *Workflow) Load(subtitleID int, kind Kind) uint64 {
	w.token++
	w.state = StateLoadingContext
	w.subtitleID = subtitleID
	w.kind = kind
	w.context = nil
	w.result = nil
	logger.Log("Workflow: loading context for subtitle %d (token %d)", subtitleID, w.token)
	return w.token
}

// ContextLoaded delivers a completed context fetch. Returns false when the
// token is stale, in which case the result is discarded and the state is
// untouched.
func (w *Workflow) ContextLoaded(token uint64, ctx *api.SubtitleContext) bool {
	if token != w.token {
		logger.Log("Workflow: dropping stale context (token %d, latest %d)", token, w.token)
		return false
	}
	w.context = ctx
	w.state = StateReady
	w.applyDefaults()
	return true
}

// LoadFailed delivers a failed context fetch. Returns false when the token
// is stale. A current failure returns the workflow to Empty; the caller
// surfaces the error and the user recovers by re-navigating.
func (w *Workflow) LoadFailed(token uint64) bool {
	if token != w.token {
		return false
	}
	w.state = StateEmpty
	w.context = nil
	return true
}

// SelectKind switches the creation kind. The loaded context is kept; only
// the kind-specific fields reset to their defaults, and any held result is
// cleared. No-op unless the workflow is interactive (Ready or Result).
func (w *Workflow) SelectKind(kind Kind) {
	if w.state != StateReady && w.state != StateResult {
		return
	}
	w.kind = kind
	w.result = nil
	w.state = StateReady
	w.applyKindDefaults(kind)
}

// SelectFrame picks the meme frame. No-op outside Ready.
func (w *Workflow) SelectFrame(frameID int) {
	if w.state != StateReady {
		return
	}
	w.Meme.FrameID = frameID
}

// Submit validates the current selection and transitions to Submitting,
// returning the request the caller must send. Invalid parameters and
// re-entrant submission are rejected locally, without any network call.
func (w *Workflow) Submit() (*Submission, error) {
	const op = errors.Op("workflow.Submit")

	switch w.state {
	case StateSubmitting:
		return nil, errors.E(op, errors.KindValidation, "a request is already in flight")
	case StateReady:
		// proceed
	default:
		return nil, errors.E(op, errors.KindValidation, "no line loaded")
	}

	if err := w.validate(); err != nil {
		return nil, err
	}

	w.token++
	sub := &Submission{Kind: w.kind, Token: w.token}
	switch w.kind {
	case KindMeme:
		sub.Meme = &api.MemeParams{
			SubtitleID:   w.subtitleID,
			FrameID:      w.Meme.FrameID,
			Text:         w.Meme.Text,
			Font:         w.Meme.Font,
			TextColor:    w.Meme.TextColor,
			OutlineColor: w.Meme.OutlineColor,
		}
	case KindGif:
		sub.Gif = &api.GifParams{
			SubtitleID: w.subtitleID,
			StartFrame: w.Gif.StartFrame,
			EndFrame:   w.Gif.EndFrame,
			Caption:    w.Gif.Caption,
			Speed:      w.Gif.Speed,
			Quality:    w.Gif.Quality,
		}
	case KindClip:
		sub.Clip = &api.ClipParams{
			SubtitleID: w.subtitleID,
			StartTime:  w.Clip.StartTime,
			EndTime:    w.Clip.EndTime,
			Caption:    w.Clip.Caption,
			Format:     w.Clip.Format,
			Quality:    w.Clip.Quality,
		}
	}

	w.state = StateSubmitting
	logger.Log("Workflow: submitting %s for subtitle %d (token %d)", w.kind, w.subtitleID, w.token)
	return sub, nil
}

// SubmitSucceeded delivers a successful creation. Returns false when the
// token is stale (the submission was abandoned and a newer request owns the
// workflow); the result is then discarded. An accepted result is held
// display-only until the user discards it.
func (w *Workflow) SubmitSucceeded(token uint64, result *api.CreationResult) bool {
	if token != w.token || w.state != StateSubmitting {
		logger.Log("Workflow: dropping stale submission result (token %d, latest %d)", token, w.token)
		return false
	}
	w.result = result
	w.state = StateResult
	return true
}

// SubmitFailed returns the workflow to Ready so the user can adjust and
// resubmit immediately. Returns false when the token is stale; surfacing
// the error on acceptance is the caller's job.
func (w *Workflow) SubmitFailed(token uint64) bool {
	if token != w.token || w.state != StateSubmitting {
		return false
	}
	w.state = StateReady
	return true
}

// DiscardResult clears a held result and returns to Ready with the context
// and selections intact, allowing repeated generation from the same line
// without a refetch.
func (w *Workflow) DiscardResult() {
	if w.state != StateResult {
		return
	}
	w.result = nil
	w.state = StateReady
}

// Reset discards everything on navigation away. The token bump obsoletes
// any fetch still in flight.
func (w *Workflow) Reset() {
	w.token++
	w.state = StateEmpty
	w.subtitleID = 0
	w.context = nil
	w.result = nil
	w.Meme = MemeOptions{FrameID: -1}
	w.Gif = GifOptions{}
	w.Clip = ClipOptions{}
}
