package workflow

import (
	"testing"

	"github.com/veepiac/quip/internal/api"
	"github.com/veepiac/quip/internal/errors"
)

// testContext builds a context with frames 100..104 (current 102) and one
// neighbor line either side.
func testContext() *api.SubtitleContext {
	return &api.SubtitleContext{
		Subtitle: api.Subtitle{
			ID:       42,
			Dialogue: "I'm the Vice President of the United States, you stupid little fucker!",
			Timestamp: api.Timestamp{
				Start: "00:12:34,500",
				End:   "00:12:37,800",
			},
		},
		Frames: api.FrameWindow{
			Before:  []api.Frame{{ID: 100}, {ID: 101}},
			Current: api.Frame{ID: 102},
			After:   []api.Frame{{ID: 103}, {ID: 104}},
		},
		Surrounding: api.SubtitleWindow{
			Before: []api.NeighborLine{{ID: 41}},
			After:  []api.NeighborLine{{ID: 43}},
		},
	}
}

// readyWorkflow returns a workflow in StateReady for line 42.
func readyWorkflow(t *testing.T, kind Kind) *Workflow {
	t.Helper()
	w := New()
	token := w.Load(42, kind)
	if w.State() != StateLoadingContext {
		t.Fatalf("state after Load = %v, want LoadingContext", w.State())
	}
	if !w.ContextLoaded(token, testContext()) {
		t.Fatal("ContextLoaded rejected current token")
	}
	if w.State() != StateReady {
		t.Fatalf("state after ContextLoaded = %v, want Ready", w.State())
	}
	return w
}

func TestNew_Empty(t *testing.T) {
	w := New()
	if w.State() != StateEmpty {
		t.Errorf("state = %v, want Empty", w.State())
	}
	if w.Context() != nil || w.Result() != nil {
		t.Error("fresh workflow should hold nothing")
	}
}

func TestDefaults_Meme(t *testing.T) {
	w := readyWorkflow(t, KindMeme)

	if w.Meme.Text != testContext().Subtitle.Dialogue {
		t.Errorf("meme text should default to the dialogue, got %q", w.Meme.Text)
	}
	if w.Meme.FrameID != 102 {
		t.Errorf("meme frame should default to the current frame, got %d", w.Meme.FrameID)
	}
	if w.Meme.Font != api.FontImpact {
		t.Errorf("meme font should default to impact, got %q", w.Meme.Font)
	}
}

func TestDefaults_Gif(t *testing.T) {
	w := readyWorkflow(t, KindGif)

	if w.Gif.StartFrame != 100 || w.Gif.EndFrame != 104 {
		t.Errorf("gif range = [%d,%d], want [100,104]", w.Gif.StartFrame, w.Gif.EndFrame)
	}
	if w.Gif.Speed != 1.0 || w.Gif.Quality != api.QualityMedium || !w.Gif.Caption {
		t.Errorf("unexpected gif defaults: %+v", w.Gif)
	}
}

func TestDefaults_Gif_EmptyWindowFallsBackToCurrent(t *testing.T) {
	w := New()
	token := w.Load(42, KindGif)
	ctx := testContext()
	ctx.Frames.Before = nil
	ctx.Frames.After = nil
	w.ContextLoaded(token, ctx)

	if w.Gif.StartFrame != 102 || w.Gif.EndFrame != 102 {
		t.Errorf("gif range = [%d,%d], want [102,102]", w.Gif.StartFrame, w.Gif.EndFrame)
	}
}

func TestDefaults_Clip(t *testing.T) {
	w := readyWorkflow(t, KindClip)

	if w.Clip.StartTime != "00:12:34,500" || w.Clip.EndTime != "00:12:37,800" {
		t.Errorf("clip range = [%s,%s], want the line's own interval", w.Clip.StartTime, w.Clip.EndTime)
	}
	if w.Clip.Format != api.FormatMP4 || w.Clip.Quality != api.QualityMedium {
		t.Errorf("unexpected clip defaults: %+v", w.Clip)
	}
}

func TestStaleContext_Dropped(t *testing.T) {
	w := New()

	// Request context for line A, then line B before A resolves.
	tokenA := w.Load(1, KindMeme)
	tokenB := w.Load(2, KindMeme)

	// A's response arrives late: it must be discarded.
	ctxA := testContext()
	ctxA.Subtitle.ID = 1
	if w.ContextLoaded(tokenA, ctxA) {
		t.Fatal("stale context A should have been dropped")
	}
	if w.State() != StateLoadingContext {
		t.Errorf("state = %v, want still LoadingContext", w.State())
	}

	// B's response lands.
	ctxB := testContext()
	ctxB.Subtitle.ID = 2
	if !w.ContextLoaded(tokenB, ctxB) {
		t.Fatal("current context B should have been applied")
	}
	if w.Context().Subtitle.ID != 2 {
		t.Errorf("displayed context = line %d, want line 2", w.Context().Subtitle.ID)
	}
}

func TestStaleLoadFailure_Dropped(t *testing.T) {
	w := New()
	tokenA := w.Load(1, KindMeme)
	tokenB := w.Load(2, KindMeme)

	if w.LoadFailed(tokenA) {
		t.Error("stale failure should be dropped")
	}
	if w.State() != StateLoadingContext {
		t.Errorf("state = %v, want LoadingContext", w.State())
	}
	if !w.LoadFailed(tokenB) {
		t.Error("current failure should apply")
	}
	if w.State() != StateEmpty {
		t.Errorf("state after load failure = %v, want Empty", w.State())
	}
}

func TestSubmit_Meme(t *testing.T) {
	w := readyWorkflow(t, KindMeme)
	w.SelectFrame(103)
	w.Meme.Text = "CONTINUITY"

	sub, err := w.Submit()
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if w.State() != StateSubmitting {
		t.Errorf("state = %v, want Submitting", w.State())
	}
	if sub.Kind != KindMeme || sub.Meme == nil || sub.Gif != nil || sub.Clip != nil {
		t.Fatalf("unexpected submission: %+v", sub)
	}
	if sub.Meme.SubtitleID != 42 || sub.Meme.FrameID != 103 || sub.Meme.Text != "CONTINUITY" {
		t.Errorf("unexpected meme params: %+v", sub.Meme)
	}
}

func TestSubmit_EmptyMemeText_RejectedLocally(t *testing.T) {
	w := readyWorkflow(t, KindMeme)
	w.Meme.Text = "   "

	_, err := w.Submit()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, errors.KindValidation) {
		t.Errorf("kind = %v, want KindValidation", errors.GetKind(err))
	}
	if w.State() != StateReady {
		t.Errorf("state after rejected submit = %v, want Ready", w.State())
	}
}

func TestSubmit_InvertedGifRange_RejectedLocally(t *testing.T) {
	w := readyWorkflow(t, KindGif)
	w.Gif.StartFrame = 50
	w.Gif.EndFrame = 10

	_, err := w.Submit()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, errors.KindValidation) {
		t.Errorf("kind = %v, want KindValidation", errors.GetKind(err))
	}
}

func TestSubmit_GifSpeedOutOfRange(t *testing.T) {
	w := readyWorkflow(t, KindGif)
	w.Gif.Speed = 2.5

	if _, err := w.Submit(); !errors.Is(err, errors.KindValidation) {
		t.Errorf("expected KindValidation, got %v", err)
	}
}

func TestSubmit_EmptyClipTimes_RejectedLocally(t *testing.T) {
	w := readyWorkflow(t, KindClip)
	w.Clip.StartTime = ""

	if _, err := w.Submit(); !errors.Is(err, errors.KindValidation) {
		t.Errorf("expected KindValidation, got %v", err)
	}
}

func TestSubmit_Reentrant_Blocked(t *testing.T) {
	w := readyWorkflow(t, KindMeme)

	if _, err := w.Submit(); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := w.Submit(); err == nil {
		t.Fatal("second submit while Submitting must be rejected")
	}
}

func TestSubmit_WithoutContext_Blocked(t *testing.T) {
	w := New()
	if _, err := w.Submit(); !errors.Is(err, errors.KindValidation) {
		t.Errorf("expected KindValidation, got %v", err)
	}
}

func TestSubmitSucceeded_HoldsResult(t *testing.T) {
	w := readyWorkflow(t, KindMeme)
	sub, err := w.Submit()
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	result := &api.CreationResult{AssetID: "m-1", URL: "u", ExpiresAt: "e"}
	if !w.SubmitSucceeded(sub.Token, result) {
		t.Fatal("current submission result should apply")
	}

	if w.State() != StateResult {
		t.Errorf("state = %v, want Result", w.State())
	}
	if w.Result() != result {
		t.Error("result should be held")
	}
}

func TestSubmitFailed_ReturnsToReady(t *testing.T) {
	w := readyWorkflow(t, KindMeme)
	sub, _ := w.Submit()
	if !w.SubmitFailed(sub.Token) {
		t.Fatal("current submission failure should apply")
	}

	if w.State() != StateReady {
		t.Errorf("state = %v, want Ready (never stuck in Submitting)", w.State())
	}
	// Immediate resubmission is permitted.
	if _, err := w.Submit(); err != nil {
		t.Errorf("resubmit after failure should work: %v", err)
	}
}

func TestDiscardResult_KeepsContext(t *testing.T) {
	w := readyWorkflow(t, KindMeme)
	sub, _ := w.Submit()
	w.SubmitSucceeded(sub.Token, &api.CreationResult{AssetID: "m-1"})

	w.DiscardResult()

	if w.State() != StateReady {
		t.Errorf("state = %v, want Ready", w.State())
	}
	if w.Result() != nil {
		t.Error("result should be cleared")
	}
	if w.Context() == nil {
		t.Error("context must survive a discard so no refetch is needed")
	}
}

func TestSelectKind_KeepsContextResetsFields(t *testing.T) {
	w := readyWorkflow(t, KindMeme)
	w.Meme.Text = "edited"
	sub, _ := w.Submit()
	w.SubmitSucceeded(sub.Token, &api.CreationResult{AssetID: "m-1"})

	w.SelectKind(KindGif)

	if w.State() != StateReady {
		t.Errorf("state = %v, want Ready", w.State())
	}
	if w.Context() == nil {
		t.Error("kind switch must not discard the loaded context")
	}
	if w.Result() != nil {
		t.Error("kind switch must clear a held result")
	}
	if w.Gif.StartFrame != 100 || w.Gif.EndFrame != 104 {
		t.Errorf("gif fields should reset to defaults, got %+v", w.Gif)
	}

	// Switching back re-seeds the meme fields too.
	w.SelectKind(KindMeme)
	if w.Meme.Text != testContext().Subtitle.Dialogue {
		t.Errorf("meme text should reset to the dialogue, got %q", w.Meme.Text)
	}
}

func TestAbandonedSubmission_Dropped(t *testing.T) {
	w := readyWorkflow(t, KindMeme)
	subA, err := w.Submit()
	if err != nil {
		t.Fatalf("submit for line A failed: %v", err)
	}

	// Abandon A and start over on another line
	w.Reset()
	token := w.Load(7, KindMeme)
	if !w.ContextLoaded(token, testContext()) {
		t.Fatal("context for line B should load")
	}
	subB, err := w.Submit()
	if err != nil {
		t.Fatalf("submit for line B failed: %v", err)
	}

	// A's late response must not be installed as B's result
	if w.SubmitSucceeded(subA.Token, &api.CreationResult{AssetID: "asset-A"}) {
		t.Fatal("abandoned submission result must be dropped")
	}
	if w.State() != StateSubmitting {
		t.Errorf("state = %v, should still await B's response", w.State())
	}
	if w.Result() != nil {
		t.Errorf("stale result installed: %+v", w.Result())
	}

	resB := &api.CreationResult{AssetID: "asset-B"}
	if !w.SubmitSucceeded(subB.Token, resB) {
		t.Fatal("B's own response should apply")
	}
	if w.Result() != resB {
		t.Error("held result should be B's")
	}

	// The failure path drops stale tokens the same way
	w.DiscardResult()
	subC, _ := w.Submit()
	if w.SubmitFailed(subA.Token) {
		t.Error("abandoned submission failure must be dropped")
	}
	if w.State() != StateSubmitting {
		t.Errorf("state = %v, stale failure must not unstick Submitting", w.State())
	}
	if !w.SubmitFailed(subC.Token) {
		t.Error("current submission failure should apply")
	}
}

func TestReset_ObsoletesInFlightFetch(t *testing.T) {
	w := readyWorkflow(t, KindMeme)
	token := w.Load(7, KindMeme)
	w.Reset()

	if w.State() != StateEmpty {
		t.Errorf("state = %v, want Empty", w.State())
	}
	if w.ContextLoaded(token, testContext()) {
		t.Error("a fetch issued before Reset must be dropped on arrival")
	}
}
