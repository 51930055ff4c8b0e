package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imjasonh/flipchess/internal/chess"
)

type styles struct {
	title   lipgloss.Style
	status  lipgloss.Style
	notice  lipgloss.Style
	box     lipgloss.Style
	heading lipgloss.Style

	lightSquare lipgloss.Style
	darkSquare  lipgloss.Style
	cursor      lipgloss.Style
	selected    lipgloss.Style
	target      lipgloss.Style
	opponent    lipgloss.Style
	check       lipgloss.Style
}

// newStyles builds the styles against r, so colors match the terminal on
// the other end of the session.
func newStyles(r *lipgloss.Renderer) styles {
	square := r.NewStyle().Padding(0, 1)
	return styles{
		title:   r.NewStyle().Bold(true),
		status:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		notice:  r.NewStyle().Faint(true),
		box:     r.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Width(26),
		heading: r.NewStyle().Bold(true),

		lightSquare: square.Background(lipgloss.Color("8")),
		darkSquare:  square.Background(lipgloss.Color("0")),
		cursor:      square.Background(lipgloss.Color("1")),
		selected:    square.Background(lipgloss.Color("3")),
		target:      square.Background(lipgloss.Color("2")),
		opponent:    square.Background(lipgloss.Color("5")),
		check:       square.Background(lipgloss.Color("9")),
	}
}

func (m model) View() string {
	var s strings.Builder
	s.WriteString(m.styles.title.Render("flipchess"))
	s.WriteString("\n")

	switch m.gameState {
	case "waiting":
		s.WriteString("Waiting for an opponent to connect...\n")
		if m.player != nil && m.manager != nil {
			if position := m.manager.GetQueuePosition(m.player.ID); position > 0 {
				s.WriteString(fmt.Sprintf("Position in queue: %d\n", position))
			}
		}
		s.WriteString("You can explore the board while waiting.\n\n")
	case "opponent_disconnected":
		s.WriteString(m.styles.status.Render("*** OPPONENT DISCONNECTED; YOU WIN ***"))
		s.WriteString("\nYour opponent has left the game.\n\n")
	default:
		s.WriteString(m.header())
	}

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderBoard(), "   ", m.renderInfo()))
	s.WriteString("\n\n")
	s.WriteString(m.help.View(keys))
	return s.String()
}

func (m model) header() string {
	var s strings.Builder
	if m.player != nil && m.opponent != "" {
		s.WriteString(fmt.Sprintf("You: %s (%s) vs %s (%s)\n",
			m.player.Name, m.side, m.opponent, m.side.Opponent()))
	}
	switch {
	case m.state.Phase() == chess.GameOver:
	case m.player == nil:
		s.WriteString(fmt.Sprintf("%s to move\n", m.state.SideToMove()))
	case m.canAct():
		s.WriteString("YOUR TURN\n")
	default:
		s.WriteString("OPPONENT'S TURN - Please wait for your opponent to move\n")
	}
	if status := m.state.Status(); status != "" {
		s.WriteString(m.styles.status.Render("*** " + status + " ***"))
		s.WriteString("\n")
	}
	if m.notice != "" {
		s.WriteString(m.styles.notice.Render(m.notice))
		s.WriteString("\n")
	}
	s.WriteString("\n")
	return s.String()
}

func (m model) fileLabels(b chess.Board) string {
	var s strings.Builder
	s.WriteString(" ")
	for col := range chess.Size {
		s.WriteString(" " + b.Square(chess.Position{Row: chess.Size - 1, Col: col})[:1] + " ")
	}
	s.WriteString(" ")
	return s.String()
}

func (m model) renderBoard() string {
	b := m.viewBoard()
	files := m.fileLabels(b)

	lines := []string{files}
	for row := range chess.Size {
		rank := b.Square(chess.Position{Row: row})[1:]
		var line strings.Builder
		line.WriteString(rank)
		for col := range chess.Size {
			pos := chess.Position{Row: row, Col: col}
			line.WriteString(m.squareStyle(b, pos).Render(b.At(pos).String()))
		}
		line.WriteString(rank)
		lines = append(lines, line.String())
	}
	lines = append(lines, files)
	return strings.Join(lines, "\n")
}

func (m model) squareStyle(b chess.Board, pos chess.Position) lipgloss.Style {
	cell := b.At(pos)
	switch {
	case pos == m.cursor:
		return m.styles.cursor
	case m.selection.Selected && pos == m.selection.Active:
		return m.styles.selected
	case m.selection.Contains(pos):
		return m.styles.target
	case m.opponentSelection.Selected && (pos == m.opponentSelection.Active || m.opponentSelection.Contains(pos)):
		return m.styles.opponent
	case m.opponentCursor != nil && pos == *m.opponentCursor && !m.canAct():
		return m.styles.opponent
	case m.state.InCheck() && cell.Kind == chess.King && cell.Side == m.state.SideToMove():
		return m.styles.check
	case (pos.Row+pos.Col)%2 == 0:
		return m.styles.lightSquare
	default:
		return m.styles.darkSquare
	}
}

func pieceName(c chess.Cell) string {
	if !c.Occupied() {
		return "Empty"
	}
	return fmt.Sprintf("%s %s", c.Side, c.Kind)
}

func (m model) renderInfo() string {
	b := m.viewBoard()
	lines := []string{
		m.styles.heading.Render("GAME INFO"),
		fmt.Sprintf("Turn: %s", m.state.SideToMove()),
		"",
		fmt.Sprintf("Cursor: %s", b.Square(m.cursor)),
		fmt.Sprintf("Piece: %s", pieceName(b.At(m.cursor))),
	}

	if m.selection.Selected {
		lines = append(lines,
			"",
			fmt.Sprintf("Selected: %s", pieceName(b.At(m.selection.Active))),
			fmt.Sprintf("At: %s", b.Square(m.selection.Active)),
		)
		if n := len(m.selection.Destinations); n > 0 {
			lines = append(lines, "Valid moves:")
			var squares []string
			for _, pos := range m.selection.Destinations[:min(n, 8)] {
				squares = append(squares, b.Square(pos))
			}
			lines = append(lines, strings.Join(squares, " "))
			if n > 8 {
				lines = append(lines, fmt.Sprintf("... and %d more", n-8))
			}
		}
	}

	if m.state.Phase() == chess.AwaitingPromotionChoice && m.canAct() {
		lines = append(lines, "", "Promote to:", "1 Queen  2 Rook", "3 Bishop 4 Knight")
	}

	info := m.styles.box.Render(strings.Join(lines, "\n"))
	if m.lastMove != "" {
		info += "\nLast move: " + m.lastMove
	}
	return info
}
