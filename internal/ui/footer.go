package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FooterContext describes what the app is doing so the footer can show
// the bindings that actually apply right now.
type FooterContext struct {
	Page         string // "home", "search", "line", "episode", "create", "settings"
	InputFocused bool   // a text input or form has focus
	HasResults   bool   // search page has results to navigate
	Submitting   bool   // a creation request is in flight
	HasResult    bool   // create page is showing a finished result
	ModalOpen    bool   // a modal is covering the page
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width int
	ctx   FooterContext
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(ctx FooterContext) {
	f.ctx = ctx
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// Bindings returns the keybindings for the current context
func (f *Footer) Bindings() []KeyBinding {
	if f.ctx.ModalOpen {
		return []KeyBinding{
			{Key: "enter/esc", Desc: "dismiss"},
		}
	}

	switch f.ctx.Page {
	case "home":
		if f.ctx.InputFocused {
			return []KeyBinding{
				{Key: "enter", Desc: "search"},
				{Key: "tab", Desc: "recent searches"},
				{Key: "esc", Desc: "clear"},
			}
		}
		return []KeyBinding{
			{Key: "↑/↓", Desc: "recent searches"},
			{Key: "enter", Desc: "search again"},
			{Key: "tab", Desc: "edit query"},
			{Key: "s", Desc: "settings"},
			{Key: "q", Desc: "quit"},
		}
	case "search":
		bindings := []KeyBinding{
			{Key: "/", Desc: "new search"},
		}
		if f.ctx.HasResults {
			bindings = append(bindings,
				KeyBinding{Key: "↑/↓", Desc: "select"},
				KeyBinding{Key: "enter", Desc: "open line"},
				KeyBinding{Key: "←/→", Desc: "page"},
			)
		}
		bindings = append(bindings, KeyBinding{Key: "esc", Desc: "home"})
		return bindings
	case "line":
		return []KeyBinding{
			{Key: "↑/↓", Desc: "prev/next line"},
			{Key: "m", Desc: "meme"},
			{Key: "g", Desc: "gif"},
			{Key: "x", Desc: "clip"},
			{Key: "e", Desc: "episode"},
			{Key: "esc", Desc: "back"},
		}
	case "episode":
		return []KeyBinding{
			{Key: "↑/↓", Desc: "select line"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "enter", Desc: "open line"},
			{Key: "esc", Desc: "back"},
		}
	case "create":
		if f.ctx.Submitting {
			return []KeyBinding{
				{Key: "esc", Desc: "back"},
			}
		}
		if f.ctx.HasResult {
			return []KeyBinding{
				{Key: "c", Desc: "copy url"},
				{Key: "n", Desc: "create another"},
				{Key: "esc", Desc: "back"},
			}
		}
		return []KeyBinding{
			{Key: "tab", Desc: "next field"},
			{Key: "ctrl+y", Desc: "switch type"},
			{Key: "enter", Desc: "create"},
			{Key: "esc", Desc: "back"},
		}
	case "settings":
		return []KeyBinding{
			{Key: "tab", Desc: "next field"},
			{Key: "ctrl+t", Desc: "test key"},
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "back"},
		}
	}

	return []KeyBinding{
		{Key: "q", Desc: "quit"},
	}
}

// View renders the footer
func (f *Footer) View() string {
	var parts []string
	for _, b := range f.Bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
