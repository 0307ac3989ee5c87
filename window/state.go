package window

// Source identifies what asked for a toggle.
type Source int

const (
	SourceTray Source = iota
	SourceShortcut
)

func (s Source) String() string {
	switch s {
	case SourceTray:
		return "tray"
	case SourceShortcut:
		return "shortcut"
	default:
		return "unknown"
	}
}

// Lifecycle is the application-wide run state read by the close handler.
type Lifecycle int

const (
	// Running hides the window on a user close.
	Running Lifecycle = iota
	// Quitting lets native destroys proceed.
	Quitting
)

func (l Lifecycle) String() string {
	if l == Quitting {
		return "quitting"
	}
	return "running"
}

// Phase is the main window's position in
// Created → Visible ⇄ Hidden → Destroyed.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseCreated
	PhaseVisible
	PhaseHidden
	PhaseDestroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseVisible:
		return "visible"
	case PhaseHidden:
		return "hidden"
	case PhaseDestroyed:
		return "destroyed"
	default:
		return "none"
	}
}

// State is a snapshot of the managed window.
type State struct {
	Visible            bool
	Focused            bool
	Minimized          bool
	AlwaysOnTop        bool
	SessionPartitionID string
}
