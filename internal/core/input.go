package core

// Action represents a semantic input action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - nudge selection up / menu up
	ActionDown           // S, Down arrow - nudge selection down / menu down
	ActionLeft           // A, Left arrow - nudge selection left
	ActionRight          // D, Right arrow - nudge selection right
	ActionNext           // Tab - select next body
	ActionPrev           // Shift+Tab - select previous body
	ActionAdd            // N - spawn a body
	ActionRemove         // X - remove the selected body
	ActionAxes           // M - toggle axis mode
	ActionSave           // Ctrl+S - save layout
	ActionPause          // Space, P - pause/unpause
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - back to the main menu
	ActionQuit           // Q, Ctrl+C - exit
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionNext:    "Next",
	ActionPrev:    "Prev",
	ActionAdd:     "Add",
	ActionRemove:  "Remove",
	ActionAxes:    "Axes",
	ActionSave:    "Save",
	ActionPause:   "Pause",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionQuit:    "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
