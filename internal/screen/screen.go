// Package screen defines the contract the router uses to drive the
// login and terminal screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/nicojapas/interview-trainer/internal/ui/layout"
)

// Screen is a single full-window view managed by the router.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen plus a command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen body; the app frame adds header and footer.
	View(width, height int) string

	// Title returns the name shown in the header.
	Title() string
}

// KeyHintProvider lets a screen supply its own footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
