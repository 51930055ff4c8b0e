package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

type config struct {
	port          int
	local         bool
	hotseat       bool
	hostKeyPath   string
	hostKeySecret string
	httpPort      string
	logLevel      string
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getenv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getenvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getenv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func defaultHostKeyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".chessh", "host_key")
	}
	return filepath.Join(home, ".chessh", "host_key")
}

// parseConfig reads flags from args; each flag defaults to its
// environment variable.
func parseConfig(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("flipchess", flag.ContinueOnError)
	fs.IntVar(&cfg.port, "port", getenvInt("CHESSH_PORT", 2222), "SSH server port")
	fs.BoolVar(&cfg.local, "local", getenvBool("CHESSH_LOCAL", false), "run in local mode (generates/uses local host key instead of Secret Manager)")
	fs.BoolVar(&cfg.hotseat, "hotseat", getenvBool("CHESSH_HOTSEAT", false), "each connection plays both sides instead of joining matchmaking")
	fs.StringVar(&cfg.hostKeyPath, "host-key", getenv("CHESSH_HOST_KEY", defaultHostKeyPath()), "host key path used in local mode")
	fs.StringVar(&cfg.logLevel, "log-level", getenv("CHESSH_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	cfg.hostKeySecret = os.Getenv("SSH_HOST_KEY_SECRET")
	cfg.httpPort = os.Getenv("PORT")

	if cfg.port <= 0 || cfg.port > 65535 {
		return config{}, fmt.Errorf("invalid port %d", cfg.port)
	}
	if !cfg.local && cfg.hostKeySecret == "" {
		return config{}, fmt.Errorf("SSH_HOST_KEY_SECRET must be set unless -local is given")
	}
	return cfg, nil
}
