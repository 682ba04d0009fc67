package app

import "github.com/veandco/go-sdl2/sdl"

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleLock
	ActionLogStats
	ActionLevelUp
	ActionLevelDown
	ActionToggleWireframe
	ActionToggleLevels
	ActionScreenshot
	ActionPatchLevelsUp
	ActionPatchLevelsDown
)

// keyBindings maps scancodes to viewer commands.
var keyBindings = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE:       ActionQuit,
	sdl.SCANCODE_F:            ActionToggleLock,
	sdl.SCANCODE_L:            ActionLogStats,
	sdl.SCANCODE_EQUALS:       ActionLevelUp,
	sdl.SCANCODE_KP_PLUS:      ActionLevelUp,
	sdl.SCANCODE_MINUS:        ActionLevelDown,
	sdl.SCANCODE_KP_MINUS:     ActionLevelDown,
	sdl.SCANCODE_W:            ActionToggleWireframe,
	sdl.SCANCODE_C:            ActionToggleLevels,
	sdl.SCANCODE_P:            ActionScreenshot,
	sdl.SCANCODE_RIGHTBRACKET: ActionPatchLevelsUp,
	sdl.SCANCODE_LEFTBRACKET:  ActionPatchLevelsDown,
}

// ActionFor returns the command bound to scancode.
func ActionFor(scancode sdl.Scancode) Action {
	return keyBindings[scancode]
}
