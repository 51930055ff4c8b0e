package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

func newServer(cfg config, hostKey []byte, gm *GameManager) (*ssh.Server, error) {
	handler := gm.teaHandler
	if cfg.hotseat {
		handler = hotseatHandler
	}
	return wish.NewServer(
		wish.WithAddress(fmt.Sprintf(":%d", cfg.port)),
		wish.WithHostKeyPEM(hostKey),
		wish.WithMiddleware(
			bubbletea.Middleware(handler),
			logging.Middleware(),
		),
	)
}

// hotseatHandler gives the connection a board on which it moves both sides.
func hotseatHandler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	m := initialModel(bubbletea.MakeRenderer(s))
	return m, []tea.ProgramOption{tea.WithAltScreen()}
}

// teaHandler queues the connection for matchmaking and removes it again when
// the session ends.
func (gm *GameManager) teaHandler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	player := &Player{
		ID:         fmt.Sprintf("player_%d", time.Now().UnixNano()),
		Session:    s,
		Name:       s.User(),
		Connected:  true,
		UpdateChan: make(chan GameUpdate, 10),
	}

	m := initialModelWithPlayer(bubbletea.MakeRenderer(s), gm, player)
	gm.AddPlayer(player)

	go func() {
		<-s.Context().Done()
		gm.RemovePlayer(player.ID)
	}()

	return m, []tea.ProgramOption{tea.WithAltScreen()}
}
