package ui

// MenuHint describes a keyboard shortcut shown in the status bar.
type MenuHint struct {
	Key         string
	Description string
}

// Component is implemented by every page of the TUI.
type Component interface {
	Name() string
	Hints() []MenuHint
}
