package main

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/imjasonh/flipchess/internal/chess"
)

type model struct {
	// Game state. cursor and the selections are in the viewer's frame.
	state     chess.GameState
	cursor    chess.Position
	selection chess.Selection
	lastMove  string
	notice    string

	// Opponent indicators, flipped into our frame
	opponentCursor    *chess.Position
	opponentSelection chess.Selection

	// Multiplayer state; player is nil in hotseat mode
	player    *Player
	side      chess.Side
	opponent  string
	session   *GameSession
	manager   *GameManager
	gameState string // "waiting", "playing", "opponent_disconnected"

	styles styles
	help   help.Model
}

func initialModel(r *lipgloss.Renderer) model {
	return model{
		state:     chess.InitialState(),
		cursor:    chess.Position{Row: chess.Size - 1, Col: 4},
		gameState: "playing",
		styles:    newStyles(r),
		help:      help.New(),
	}
}

func initialModelWithPlayer(r *lipgloss.Renderer, gm *GameManager, player *Player) model {
	m := initialModel(r)
	m.player = player
	m.manager = gm
	m.gameState = "waiting"
	return m
}

func (m model) Init() tea.Cmd {
	return m.listenForUpdates()
}

func (m model) listenForUpdates() tea.Cmd {
	if m.player == nil || m.player.UpdateChan == nil {
		return nil
	}
	updates := m.player.UpdateChan
	var done <-chan struct{}
	if m.player.Session != nil {
		done = m.player.Session.Context().Done()
	}
	return func() tea.Msg {
		select {
		case update := <-updates:
			return update
		case <-done:
			return nil
		}
	}
}

// viewer is the side shown at the bottom of the board.
func (m model) viewer() chess.Side {
	if m.player == nil {
		return m.state.SideToMove()
	}
	return m.side
}

func (m model) viewBoard() chess.Board {
	return m.state.Board().Oriented(m.viewer())
}

// canAct reports whether input may change the game. When it holds, the
// viewer's frame and the engine's frame coincide.
func (m model) canAct() bool {
	return m.gameState == "playing" &&
		m.state.Phase() != chess.GameOver &&
		m.viewer() == m.state.SideToMove()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case GameUpdate:
		return m.handleGameUpdate(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, keys.Cancel):
		if m.selection.Selected {
			m.selection = chess.Selection{}
			m.broadcast("deselect", nil)
		}
	case key.Matches(msg, keys.Select):
		m.activate()
	default:
		if kind, ok := keys.promotionKind(msg); ok {
			m.promote(kind)
		}
	}
}

func (m *model) moveCursor(dRow, dCol int) {
	next := chess.Position{Row: m.cursor.Row + dRow, Col: m.cursor.Col + dCol}
	if !next.Valid() {
		return
	}
	m.cursor = next
	if m.canAct() {
		m.broadcast("cursor", m.cursor)
	}
}

// activate selects the piece under the cursor, or moves the selected piece
// there.
func (m *model) activate() {
	if !m.canAct() || m.state.Phase() != chess.AwaitingMove {
		return
	}
	m.notice = ""
	if !m.selection.Selected {
		m.selection = m.selectAt(m.cursor)
		if m.selection.Selected {
			m.broadcast("select", m.selection)
		}
		return
	}

	from, to := m.selection.Active, m.cursor
	next, sel, err := m.attempt(from, to)
	if err != nil {
		m.selection = sel
		if sel.Selected {
			m.broadcast("select", sel)
		} else {
			m.broadcast("deselect", nil)
		}
		if !errors.Is(err, chess.ErrIllegalMove) {
			m.notice = err.Error()
		}
		return
	}
	b := m.state.Board()
	m.lastMove = b.Square(from) + " -> " + b.Square(to)
	m.advance(next)
}

func (m *model) promote(kind chess.PieceKind) {
	if !m.canAct() || m.state.Phase() != chess.AwaitingPromotionChoice {
		return
	}
	var next chess.GameState
	var err error
	if m.session != nil {
		next, err = m.session.Promote(m.player.ID, kind)
	} else {
		next, err = m.state.Promote(kind)
	}
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.lastMove += "=" + kind.String()
	m.advance(next)
}

func (m model) selectAt(pos chess.Position) chess.Selection {
	if m.session != nil {
		return m.session.Select(m.player.ID, pos)
	}
	return m.state.Select(pos)
}

func (m model) attempt(from, to chess.Position) (chess.GameState, chess.Selection, error) {
	if m.session != nil {
		return m.session.Move(m.player.ID, from, to)
	}
	return m.state.AttemptMove(from, to)
}

// advance installs next. In hotseat mode the board turns with the side to
// move, so the cursor follows its square.
func (m *model) advance(next chess.GameState) {
	if m.player == nil && next.SideToMove() != m.state.SideToMove() {
		m.cursor = m.cursor.Flip()
	}
	m.state = next
	m.selection = chess.Selection{}
	m.notice = ""
}

func (m model) broadcast(kind string, data any) {
	if m.session == nil || m.manager == nil {
		return
	}
	m.manager.BroadcastUpdate(m.player.ID, GameUpdate{Type: kind, Data: data})
}

func flipSelection(sel chess.Selection) chess.Selection {
	out := chess.Selection{Active: sel.Active.Flip(), Selected: sel.Selected}
	for _, pos := range sel.Destinations {
		out.Destinations = append(out.Destinations, pos.Flip())
	}
	return out
}

func (m model) handleGameUpdate(update GameUpdate) (tea.Model, tea.Cmd) {
	// Don't process updates from self
	if m.player != nil && update.FromPlayer == m.player.ID {
		return m, m.listenForUpdates()
	}

	switch update.Type {
	case "matched":
		data, ok := update.Data.(MatchUpdate)
		if !ok {
			break
		}
		m.gameState = "playing"
		m.side = data.Side
		m.opponent = data.Opponent
		m.session = m.manager.GetGameSession(m.player.ID)
		if m.session != nil {
			m.state = m.session.State()
		}

	case "move":
		if data, ok := update.Data.(MoveUpdate); ok {
			m.state = data.State
			if data.Promotion != chess.NoPiece {
				m.lastMove += "=" + data.Promotion.String()
			} else {
				m.lastMove = data.From + " -> " + data.To
			}
		}
		m.opponentSelection = chess.Selection{}

	case "cursor":
		if pos, ok := update.Data.(chess.Position); ok {
			flipped := pos.Flip()
			m.opponentCursor = &flipped
		}

	case "select":
		if sel, ok := update.Data.(chess.Selection); ok {
			m.opponentSelection = flipSelection(sel)
		}

	case "deselect":
		m.opponentSelection = chess.Selection{}

	case "opponent_disconnected":
		m.gameState = "opponent_disconnected"
		m.opponentCursor = nil
		m.opponentSelection = chess.Selection{}
	}

	// Continue listening for updates
	return m, m.listenForUpdates()
}
