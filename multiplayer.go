package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/imjasonh/flipchess/internal/chess"
)

var ErrNotYourTurn = errors.New("not your turn")

// Player represents a connected player
type Player struct {
	ID         string
	Session    ssh.Session
	Side       chess.Side
	Name       string
	GameID     string
	Connected  bool
	UpdateChan chan GameUpdate // Channel for sending updates to the player's model
}

// GameUpdate represents an update to broadcast to players
type GameUpdate struct {
	Type       string // "matched", "move", "cursor", "select", "deselect", "opponent_disconnected"
	Data       any
	FromPlayer string
}

// MatchUpdate tells a player which game and side it was given. Models take
// their side from here rather than reading Player.Side.
type MatchUpdate struct {
	GameID   string
	Side     chess.Side
	Opponent string
}

// MoveUpdate carries the snapshot produced by a move or promotion.
type MoveUpdate struct {
	From, To  string
	Promotion chess.PieceKind
	State     chess.GameState
}

// GameSession manages a single game between two players. Every
// transition of its state happens under stateMu, so the two players only
// ever observe complete snapshots.
type GameSession struct {
	ID      string
	Light   *Player
	Dark    *Player
	Updates chan GameUpdate
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.RWMutex
	closed  bool

	stateMu sync.Mutex
	state   chess.GameState
}

func NewGameSession(id string, light, dark *Player) *GameSession {
	ctx, cancel := context.WithCancel(context.Background())

	session := &GameSession{
		ID:      id,
		Light:   light,
		Dark:    dark,
		Updates: make(chan GameUpdate, 10),
		ctx:     ctx,
		cancel:  cancel,
		state:   chess.InitialState(),
	}

	light.Side = chess.Light
	light.GameID = id
	dark.Side = chess.Dark
	dark.GameID = id

	go session.handleUpdates()

	return session
}

func (gs *GameSession) handleUpdates() {
	for {
		select {
		case <-gs.ctx.Done():
			return
		case update, ok := <-gs.Updates:
			if !ok {
				return
			}
			gs.broadcastUpdate(update)
		}
	}
}

func (gs *GameSession) broadcastUpdate(update GameUpdate) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	for _, p := range []*Player{gs.Light, gs.Dark} {
		if p == nil || !p.Connected || p.UpdateChan == nil {
			continue
		}
		select {
		case p.UpdateChan <- update:
		default:
			// Channel full, drop update
		}
	}
}

// publish queues update for both players unless the session has ended.
func (gs *GameSession) publish(update GameUpdate) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	if gs.closed {
		return
	}
	select {
	case gs.Updates <- update:
	case <-time.After(100 * time.Millisecond):
		log.Warn("dropped game update", "game", gs.ID, "type", update.Type)
	}
}

func (gs *GameSession) State() chess.GameState {
	gs.stateMu.Lock()
	defer gs.stateMu.Unlock()
	return gs.state
}

func (gs *GameSession) Select(playerID string, pos chess.Position) chess.Selection {
	state := gs.State()
	player := gs.GetPlayer(playerID)
	if player == nil || player.Side != state.SideToMove() {
		return chess.Selection{}
	}
	return state.Select(pos)
}

// Move plays from->to for playerID and broadcasts the new snapshot.
func (gs *GameSession) Move(playerID string, from, to chess.Position) (chess.GameState, chess.Selection, error) {
	gs.stateMu.Lock()
	state := gs.state
	player := gs.GetPlayer(playerID)
	if player == nil || player.Side != state.SideToMove() {
		gs.stateMu.Unlock()
		return state, chess.Selection{}, ErrNotYourTurn
	}
	next, sel, err := state.AttemptMove(from, to)
	if err != nil {
		gs.stateMu.Unlock()
		return state, sel, err
	}
	gs.state = next
	gs.stateMu.Unlock()

	b := state.Board()
	log.Debug("move", "game", gs.ID, "player", player.Name, "from", b.Square(from), "to", b.Square(to), "fen", next.Board().FEN())
	gs.publish(GameUpdate{
		Type:       "move",
		Data:       MoveUpdate{From: b.Square(from), To: b.Square(to), State: next},
		FromPlayer: playerID,
	})
	if next.Phase() == chess.GameOver {
		winner, _ := next.Winner()
		log.Info("game over", "game", gs.ID, "winner", winner)
	}
	return next, chess.Selection{}, nil
}

// Promote finishes playerID's pending promotion.
func (gs *GameSession) Promote(playerID string, kind chess.PieceKind) (chess.GameState, error) {
	gs.stateMu.Lock()
	state := gs.state
	player := gs.GetPlayer(playerID)
	if player == nil || player.Side != state.SideToMove() {
		gs.stateMu.Unlock()
		return state, ErrNotYourTurn
	}
	next, err := state.Promote(kind)
	if err != nil {
		gs.stateMu.Unlock()
		return state, err
	}
	gs.state = next
	gs.stateMu.Unlock()

	pos, _ := state.PendingPromotion()
	square := state.Board().Square(pos)
	gs.publish(GameUpdate{
		Type:       "move",
		Data:       MoveUpdate{From: square, To: square, Promotion: kind, State: next},
		FromPlayer: playerID,
	})
	return next, nil
}

// seatsLocked returns playerID's player and opponent. gs.mu must be held.
func (gs *GameSession) seatsLocked(playerID string) (me, opponent *Player) {
	switch {
	case gs.Light != nil && gs.Light.ID == playerID:
		return gs.Light, gs.Dark
	case gs.Dark != nil && gs.Dark.ID == playerID:
		return gs.Dark, gs.Light
	}
	return nil, nil
}

func (gs *GameSession) GetPlayer(playerID string) *Player {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	me, _ := gs.seatsLocked(playerID)
	return me
}

func (gs *GameSession) GetOpponent(playerID string) *Player {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	_, opponent := gs.seatsLocked(playerID)
	return opponent
}

// seats returns the seated players, skipping empty seats.
func (gs *GameSession) seats() []*Player {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	var out []*Player
	for _, p := range []*Player{gs.Light, gs.Dark} {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// abandoned reports whether no seated player is still connected.
func (gs *GameSession) abandoned() bool {
	for _, p := range gs.seats() {
		gs.mu.RLock()
		connected := p.Connected
		gs.mu.RUnlock()
		if connected {
			return false
		}
	}
	return true
}

func (gs *GameSession) IsPlayerTurn(playerID string) bool {
	player := gs.GetPlayer(playerID)
	if player == nil {
		return false
	}
	return gs.State().SideToMove() == player.Side
}

// Disconnect marks playerID gone and notifies the opponent. The session
// ends once both players have left.
func (gs *GameSession) Disconnect(playerID string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gone, remaining := gs.seatsLocked(playerID)
	if gone == nil {
		return
	}
	gone.Connected = false

	if remaining != nil && remaining.Connected && remaining.UpdateChan != nil {
		select {
		case remaining.UpdateChan <- GameUpdate{
			Type: "opponent_disconnected",
			Data: map[string]any{"disconnectedPlayer": gone.Name},
		}:
		default:
		}
		return
	}
	gs.cleanup()
}

func (gs *GameSession) cleanup() {
	if gs.closed {
		return
	}
	gs.closed = true
	gs.cancel()
	close(gs.Updates)
}

// GameManager handles matchmaking and game coordination
type GameManager struct {
	playerQueue  []*Player
	activeGames  map[string]*GameSession
	playerToGame map[string]string // playerID -> gameID
	mu           sync.RWMutex
	gameCounter  int
}

var gameManager *GameManager
var gameManagerOnce sync.Once

func NewGameManager() *GameManager {
	return &GameManager{
		playerQueue:  make([]*Player, 0),
		activeGames:  make(map[string]*GameSession),
		playerToGame: make(map[string]string),
	}
}

func GetGameManager() *GameManager {
	gameManagerOnce.Do(func() {
		gameManager = NewGameManager()
	})
	return gameManager
}

// AddPlayer queues player and pairs the two longest-waiting players; the
// first of them plays Light.
func (gm *GameManager) AddPlayer(player *Player) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	gm.playerQueue = append(gm.playerQueue, player)
	log.Info("player queued", "player", player.Name, "queue", len(gm.playerQueue))

	if len(gm.playerQueue) < 2 {
		return
	}
	light := gm.playerQueue[0]
	dark := gm.playerQueue[1]
	gm.playerQueue = gm.playerQueue[2:]

	gm.gameCounter++
	gameID := fmt.Sprintf("game_%d", gm.gameCounter)

	session := NewGameSession(gameID, light, dark)
	gm.activeGames[gameID] = session
	gm.playerToGame[light.ID] = gameID
	gm.playerToGame[dark.ID] = gameID
	log.Info("players matched", "game", gameID, "light", light.Name, "dark", dark.Name)

	for _, p := range []*Player{light, dark} {
		if p.UpdateChan == nil {
			continue
		}
		opponent := dark
		if p == dark {
			opponent = light
		}
		select {
		case p.UpdateChan <- GameUpdate{
			Type: "matched",
			Data: MatchUpdate{GameID: gameID, Side: p.Side, Opponent: opponent.Name},
		}:
		default:
		}
	}
}

func (gm *GameManager) RemovePlayer(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for i, player := range gm.playerQueue {
		if player.ID == playerID {
			gm.playerQueue = append(gm.playerQueue[:i], gm.playerQueue[i+1:]...)
			break
		}
	}

	gameID, exists := gm.playerToGame[playerID]
	if !exists {
		return
	}
	if session, ok := gm.activeGames[gameID]; ok {
		session.Disconnect(playerID)
		log.Info("player left", "game", gameID, "player", playerID)

		if session.abandoned() {
			delete(gm.activeGames, gameID)
			for _, p := range session.seats() {
				delete(gm.playerToGame, p.ID)
			}
		}
	}
	delete(gm.playerToGame, playerID)
}

func (gm *GameManager) GetGameSession(playerID string) *GameSession {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	if gameID, exists := gm.playerToGame[playerID]; exists {
		return gm.activeGames[gameID]
	}
	return nil
}

func (gm *GameManager) BroadcastUpdate(playerID string, update GameUpdate) {
	session := gm.GetGameSession(playerID)
	if session != nil {
		update.FromPlayer = playerID
		session.publish(update)
	}
}

func (gm *GameManager) GetQueuePosition(playerID string) int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	for i, player := range gm.playerQueue {
		if player.ID == playerID {
			return i + 1
		}
	}
	return -1
}
