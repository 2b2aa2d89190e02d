package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/knight-skies/internal/core"
)

// KeyMapper translates Bubble Tea key messages to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case " ":
		return core.ActionFlap, false
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left", "h", "shift+tab":
		return core.ActionLeft, false
	case "d", "right", "l", "tab":
		return core.ActionRight, false
	case "enter":
		return core.ActionConfirm, false
	case "r":
		return core.ActionReset, false
	case "b", "esc":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an engine input frame for the play screen.
// Flap keys flap, confirm starts a run. Returns true on a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	switch action {
	case core.ActionFlap, core.ActionUp:
		frame.Set(core.ActionFlap)
	case core.ActionConfirm:
		frame.Set(core.ActionStart)
	case core.ActionReset:
		frame.Set(core.ActionReset)
	}
	return isQuit
}
