package api

// Timestamp is a closed time interval within an episode, expressed as
// subtitle timecodes of the form HH:MM:SS,mmm.
type Timestamp struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Subtitle is one timed dialogue line in the transcript corpus.
// Identifiers are server-assigned and immutable.
type Subtitle struct {
	ID           int       `json:"subtitle_id"`
	Episode      string    `json:"episode"`
	EpisodeTitle string    `json:"episode_title"`
	Index        int       `json:"index"`
	Timestamp    Timestamp `json:"timestamp"`
	Dialogue     string    `json:"dialogue"`
	FrameIndices []int     `json:"frame_indices"`
	ThumbnailURL string    `json:"thumbnail_url"`
}

// Frame is a single video frame. Frames belong to exactly one episode and
// are totally ordered by timestamp within it.
type Frame struct {
	ID        int    `json:"frame_id"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
}

// Pagination describes one window of a server-paged listing.
type Pagination struct {
	TotalResults int `json:"total_results"`
	Page         int `json:"page"`
	TotalPages   int `json:"total_pages"`
	Limit        int `json:"limit"`
}

// SearchResult is one page of dialogue lines matching a query.
type SearchResult struct {
	Results    []Subtitle `json:"results"`
	Pagination Pagination `json:"pagination"`
}

// FrameWindow is the symmetric set of frames around a target line.
type FrameWindow struct {
	Before  []Frame `json:"before"`
	Current Frame   `json:"current"`
	After   []Frame `json:"after"`
}

// All returns the window flattened in timestamp order.
func (w FrameWindow) All() []Frame {
	frames := make([]Frame, 0, len(w.Before)+1+len(w.After))
	frames = append(frames, w.Before...)
	frames = append(frames, w.Current)
	frames = append(frames, w.After...)
	return frames
}

// NeighborLine is a surrounding dialogue line, trimmed to what the context
// view needs.
type NeighborLine struct {
	ID        int       `json:"subtitle_id"`
	Dialogue  string    `json:"dialogue"`
	Timestamp Timestamp `json:"timestamp"`
}

// SubtitleWindow is the symmetric set of dialogue lines around a target.
type SubtitleWindow struct {
	Before []NeighborLine `json:"before"`
	After  []NeighborLine `json:"after"`
}

// SubtitleContext aggregates a line with its frame and dialogue windows.
// It is created on navigation to a line and discarded on navigation away;
// it is never persisted.
type SubtitleContext struct {
	Subtitle    Subtitle       `json:"subtitle"`
	Frames      FrameWindow    `json:"frames"`
	Surrounding SubtitleWindow `json:"surrounding_subtitles"`
	EpisodeLink string         `json:"episode_link"`
}

// Episode is one episode of the show.
type Episode struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Season  int    `json:"season"`
	Episode int    `json:"episode"`
	AirDate string `json:"air_date,omitempty"`
}

// EpisodeResult is an episode with one page of its dialogue lines.
type EpisodeResult struct {
	Episode    Episode    `json:"episode"`
	Subtitles  []Subtitle `json:"subtitles"`
	Pagination Pagination `json:"pagination"`
}

// Creation parameter enums. The backend validates these too; the client
// constrains its forms to the same sets.
const (
	FontImpact = "impact"
	FontArial  = "arial"
	FontComic  = "comic"

	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"

	FormatMP4  = "mp4"
	FormatWebM = "webm"
)

// Fonts lists the meme fonts the backend renders.
var Fonts = []string{FontImpact, FontArial, FontComic}

// Qualities lists the supported quality tiers for gifs and clips.
var Qualities = []string{QualityLow, QualityMedium, QualityHigh}

// Formats lists the supported clip container formats.
var Formats = []string{FormatMP4, FormatWebM}

// Gif speed bounds accepted by the backend.
const (
	MinGifSpeed = 0.5
	MaxGifSpeed = 2.0
)

// MemeParams are the options for a meme still.
type MemeParams struct {
	SubtitleID   int    `json:"subtitle_id"`
	FrameID      int    `json:"frame_id"`
	Text         string `json:"text"`
	Font         string `json:"font"`
	TextColor    string `json:"text_color"`
	OutlineColor string `json:"outline_color"`
}

// GifParams are the options for an animated clip built from a frame range.
type GifParams struct {
	SubtitleID int     `json:"subtitle_id"`
	StartFrame int     `json:"start_frame"`
	EndFrame   int     `json:"end_frame"`
	Caption    bool    `json:"caption"`
	Speed      float64 `json:"speed"`
	Quality    string  `json:"quality"`
}

// ClipParams are the options for a video clip built from a time range.
type ClipParams struct {
	SubtitleID int    `json:"subtitle_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Caption    bool   `json:"caption"`
	Format     string `json:"format"`
	Quality    string `json:"quality"`
}

// CreationResult is a rendered asset handle. Assets are time-limited; the
// client displays ExpiresAt and never attempts renewal.
type CreationResult struct {
	AssetID   string `json:"asset_id"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

// Per-endpoint result payloads. The backend names the asset identifier
// after the media kind; these fold into CreationResult.

type memeResponse struct {
	MemeID    string `json:"meme_id"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

type gifResponse struct {
	GifID     string `json:"gif_id"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

type clipResponse struct {
	ClipID    string `json:"clip_id"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

// errorResponse is the backend's failure body.
type errorResponse struct {
	Error string `json:"error"`
}
