package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/imjasonh/flipchess/internal/chess"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Cancel key.Binding
	Queen  key.Binding
	Rook   key.Binding
	Bishop key.Binding
	Knight key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "select/move")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),
	Queen:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "queen")),
	Rook:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "rook")),
	Bishop: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "bishop")),
	Knight: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "knight")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Select, k.Cancel, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Cancel, k.Quit},
		{k.Queen, k.Rook, k.Bishop, k.Knight},
	}
}

// promotionKind maps a promotion key to the piece it chooses.
func (k keyMap) promotionKind(msg tea.KeyMsg) (chess.PieceKind, bool) {
	switch {
	case key.Matches(msg, k.Queen):
		return chess.Queen, true
	case key.Matches(msg, k.Rook):
		return chess.Rook, true
	case key.Matches(msg, k.Bishop):
		return chess.Bishop, true
	case key.Matches(msg, k.Knight):
		return chess.Knight, true
	}
	return chess.NoPiece, false
}
