package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/Akashdeep-Patra/bgs/internal/config"
	"github.com/Akashdeep-Patra/bgs/internal/ui/components"
)

// KeyMap defines the keybindings of the dashboard.
type KeyMap struct {
	Quit         key.Binding
	Back         key.Binding
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	ToggleSelect key.Binding
	Select       key.Binding
	Stage        key.Binding
	Unstage      key.Binding
	StageAll     key.Binding
	UnstageAll   key.Binding
	Discard      key.Binding
	DiscardAll   key.Binding
	PageDown     key.Binding
	PageUp       key.Binding
	Undo         key.Binding
	Refresh      key.Binding
	Help         key.Binding
	Confirm      key.Binding
}

// NewKeyMap builds bindings from configured key names.
func NewKeyMap(kb config.KeyBindings) KeyMap {
	return KeyMap{
		Quit:         binding(kb.Quit, "quit"),
		Back:         binding(kb.Back, "clear selection / quit"),
		Up:           binding(kb.Up, "up"),
		Down:         binding(kb.Down, "down"),
		Top:          binding(kb.Top, "first file"),
		Bottom:       binding(kb.Bottom, "last file"),
		ToggleSelect: binding(kb.ToggleSelect, "toggle multi-select"),
		Select:       binding(kb.Select, "show diff"),
		Stage:        binding(kb.Stage, "stage"),
		Unstage:      binding(kb.Unstage, "unstage"),
		StageAll:     binding(kb.StageAll, "stage all"),
		UnstageAll:   binding(kb.UnstageAll, "unstage all"),
		Discard:      binding(kb.Discard, "discard"),
		DiscardAll:   binding(kb.DiscardAll, "discard all"),
		PageDown:     binding(kb.PageDown, "page down"),
		PageUp:       binding(kb.PageUp, "page up"),
		Undo:         binding(kb.Undo, "undo"),
		Refresh:      binding(kb.Refresh, "refresh"),
		Help:         binding(kb.Help, "help"),
		Confirm:      binding(kb.Confirm, "confirm"),
	}
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultKeyBindings())
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keyLabel(keys), desc))
}

// keyLabel renders key names for help text: "k/↑".
func keyLabel(keys []string) string {
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		switch k {
		case "up":
			k = "↑"
		case "down":
			k = "↓"
		case " ":
			k = "space"
		case "pgdown":
			k = "pgdn"
		}
		labels = append(labels, k)
	}
	return strings.Join(labels, "/")
}

// HelpSections groups the bindings for the help overlay.
func (k KeyMap) HelpSections() map[string][]components.HelpEntry {
	return map[string][]components.HelpEntry{
		"Navigation": entries(k.Up, k.Down, k.Top, k.Bottom),
		"Selection":  entries(k.Select, k.ToggleSelect, k.Back),
		"Staging":    entries(k.Stage, k.Unstage, k.StageAll, k.UnstageAll, k.Discard, k.DiscardAll, k.Undo),
		"Diff":       entries(k.PageDown, k.PageUp),
		"General":    entries(k.Refresh, k.Help, k.Quit),
	}
}

// ShortHelp is the hint line shown when nothing else occupies the footer.
func (k KeyMap) ShortHelp() []components.HelpEntry {
	return entries(k.Select, k.ToggleSelect, k.Stage, k.Unstage, k.Discard, k.Undo, k.Help, k.Quit)
}

func entries(bindings ...key.Binding) []components.HelpEntry {
	out := make([]components.HelpEntry, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		out = append(out, components.HelpEntry{Key: h.Key, Desc: h.Desc})
	}
	return out
}
