package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	esc        key.Binding
	quit       key.Binding
	logout     key.Binding
	sync       key.Binding
	forceSync  key.Binding
	retry      key.Binding
	clearQueue key.Binding
	toggleMode key.Binding
	toggleSave key.Binding
	newItem    key.Binding
	edit       key.Binding
	copy       key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
	logout:     key.NewBinding(key.WithKeys("l")),
	sync:       key.NewBinding(key.WithKeys("s")),
	forceSync:  key.NewBinding(key.WithKeys("f")),
	retry:      key.NewBinding(key.WithKeys("r")),
	clearQueue: key.NewBinding(key.WithKeys("x")),
	toggleMode: key.NewBinding(key.WithKeys("m")),
	toggleSave: key.NewBinding(key.WithKeys("o")),
	newItem:    key.NewBinding(key.WithKeys("n")),
	edit:       key.NewBinding(key.WithKeys("e")),
	copy:       key.NewBinding(key.WithKeys("c")),
}
