package ui

// spinnerFrames are the characters used for the shimmering spinner animation
// shown while a request is in flight.
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// SpinnerFrame returns the spinner character for the given tick index.
func SpinnerFrame(idx int) string {
	if idx < 0 {
		idx = -idx
	}
	return spinnerFrames[idx%len(spinnerFrames)]
}

// SpinnerFrameCount returns the number of frames in the spinner cycle.
func SpinnerFrameCount() int {
	return len(spinnerFrames)
}

// RenderLoading renders a spinner with a status message.
func RenderLoading(idx int, message string) string {
	return StatusLoadingStyle.Render(SpinnerFrame(idx) + " " + message)
}
