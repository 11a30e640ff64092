package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ---------------------------------------------------------------------------
// TestDefaultKeyMap - Every documented key reaches its binding
// ---------------------------------------------------------------------------

func TestDefaultKeyMap(t *testing.T) {
	t.Parallel()

	km := DefaultKeyMap()
	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, km.Prev},
		{"h", runeKey("h"), km.Prev},
		{"p", runeKey("p"), km.Prev},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, km.Next},
		{"l", runeKey("l"), km.Next},
		{"n", runeKey("n"), km.Next},
		{"s", runeKey("s"), km.Save},
		{"o", runeKey("o"), km.Open},
		{"?", runeKey("?"), km.Help},
		{"q", runeKey("q"), km.Quit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, km.Confirm},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, km.Cancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("%q does not match %v", tt.msg.String(), tt.binding.Keys())
			}
		})
	}
}

func TestKeyMap_Help(t *testing.T) {
	t.Parallel()

	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp() is empty")
	}
	for _, col := range km.FullHelp() {
		for _, b := range col {
			if b.Help().Key == "" || b.Help().Desc == "" {
				t.Errorf("binding %v has no help text", b.Keys())
			}
		}
	}
}
