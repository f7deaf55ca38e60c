package config

import "github.com/spf13/viper"

// KeyBindings maps actions to keys. Each action accepts several keys; key
// names follow bubbletea's KeyMsg.String() ("ctrl+z", "pgdown", " ").
type KeyBindings struct {
	Quit         []string `mapstructure:"quit"`
	Back         []string `mapstructure:"back"`
	Up           []string `mapstructure:"up"`
	Down         []string `mapstructure:"down"`
	Top          []string `mapstructure:"top"`
	Bottom       []string `mapstructure:"bottom"`
	ToggleSelect []string `mapstructure:"toggle_select"`
	Select       []string `mapstructure:"select"`
	Stage        []string `mapstructure:"stage"`
	Unstage      []string `mapstructure:"unstage"`
	StageAll     []string `mapstructure:"stage_all"`
	UnstageAll   []string `mapstructure:"unstage_all"`
	Discard      []string `mapstructure:"discard"`
	DiscardAll   []string `mapstructure:"discard_all"`
	PageDown     []string `mapstructure:"page_down"`
	PageUp       []string `mapstructure:"page_up"`
	Undo         []string `mapstructure:"undo"`
	Refresh      []string `mapstructure:"refresh"`
	Help         []string `mapstructure:"help"`
	Confirm      []string `mapstructure:"confirm"`
}

// DefaultKeyBindings returns the default key bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:         []string{"q", "ctrl+c"},
		Back:         []string{"esc"},
		Up:           []string{"up", "k"},
		Down:         []string{"down", "j"},
		Top:          []string{"g", "home"},
		Bottom:       []string{"G", "end"},
		ToggleSelect: []string{" "},
		Select:       []string{"enter"},
		Stage:        []string{"s"},
		Unstage:      []string{"u"},
		StageAll:     []string{"S"},
		UnstageAll:   []string{"U"},
		Discard:      []string{"d"},
		DiscardAll:   []string{"D"},
		PageDown:     []string{"pgdown"},
		PageUp:       []string{"pgup"},
		Undo:         []string{"ctrl+z"},
		Refresh:      []string{"r"},
		Help:         []string{"?"},
		Confirm:      []string{"y", "Y"},
	}
}

func setKeyDefaults(v *viper.Viper) {
	d := DefaultKeyBindings()
	for key, keys := range map[string][]string{
		"quit":          d.Quit,
		"back":          d.Back,
		"up":            d.Up,
		"down":          d.Down,
		"top":           d.Top,
		"bottom":        d.Bottom,
		"toggle_select": d.ToggleSelect,
		"select":        d.Select,
		"stage":         d.Stage,
		"unstage":       d.Unstage,
		"stage_all":     d.StageAll,
		"unstage_all":   d.UnstageAll,
		"discard":       d.Discard,
		"discard_all":   d.DiscardAll,
		"page_down":     d.PageDown,
		"page_up":       d.PageUp,
		"undo":          d.Undo,
		"refresh":       d.Refresh,
		"help":          d.Help,
		"confirm":       d.Confirm,
	} {
		v.SetDefault("keys."+key, keys)
	}
}
