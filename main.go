package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/gorilla/websocket"
	sshproxy "github.com/imjasonh/ssh-proxy"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	level, err := log.ParseLevel(cfg.logLevel)
	if err != nil {
		log.Fatal("invalid log level", "level", cfg.logLevel, "err", err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	hostKey, err := loadHostKey(ctx, cfg)
	if err != nil {
		log.Fatal("host key", "err", err)
	}

	s, err := newServer(cfg, hostKey, GetGameManager())
	if err != nil {
		log.Fatal("could not create server", "err", err)
	}
	go func() {
		log.Info("starting SSH chess server", "port", cfg.port, "hotseat", cfg.hotseat)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("ssh server", "err", err)
		}
	}()

	var web *http.Server
	if cfg.httpPort != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/ssh", sshproxy.ProxyWebSocketToSSH(fmt.Sprintf(":%d", cfg.port), websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow connections from any origin for now
			},
		}))
		web = &http.Server{Addr: ":" + cfg.httpPort, Handler: mux}
		go func() {
			log.Info("starting WebSocket to SSH proxy", "port", cfg.httpPort)
			if err := web.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal("HTTP server", "err", err)
			}
		}()
	}

	<-ctx.Done()
	log.Info("stopping servers")

	tctx, tcancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer tcancel()
	if web != nil {
		if err := web.Shutdown(tctx); err != nil {
			log.Error("HTTP shutdown", "err", err)
		}
	}
	if err := s.Shutdown(tctx); err != nil {
		log.Fatal("SSH shutdown", "err", err)
	}
}
