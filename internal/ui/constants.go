// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// DefaultWrapWidth is the default width for text wrapping when the
	// terminal width is unknown
	DefaultWrapWidth = 80
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50

	// ChangelogModalMaxVisible is the max number of changelog lines shown
	// before scrolling kicks in
	ChangelogModalMaxVisible = 14
)

// Listing dimensions
const (
	// SearchInputCharLimit is the character limit for the search query input
	SearchInputCharLimit = 200

	// FrameStripMax is the max number of frame cells rendered in the strip
	FrameStripMax = 21
)
