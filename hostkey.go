package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/charmbracelet/keygen"
	"github.com/charmbracelet/log"
)

// loadHostKey returns the PEM encoded SSH host key, from disk in local mode
// and from Secret Manager otherwise.
func loadHostKey(ctx context.Context, cfg config) ([]byte, error) {
	if cfg.local {
		log.Info("running in local mode", "host_key", cfg.hostKeyPath)
		return localHostKey(cfg.hostKeyPath)
	}
	log.Info("running in cloud mode with Secret Manager")
	return secretHostKey(ctx, cfg.hostKeySecret)
}

// localHostKey loads the ed25519 key at path, generating it on first use.
func localHostKey(path string) ([]byte, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}
	kp, err := keygen.New(path, keygen.WithKeyType(keygen.Ed25519), keygen.WithWrite())
	if err != nil {
		return nil, fmt.Errorf("failed to load or generate host key: %w", err)
	}
	return kp.RawPrivateKey(), nil
}

func secretHostKey(ctx context.Context, name string) ([]byte, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	defer client.Close()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access secret version: %w", err)
	}
	return resp.GetPayload().GetData(), nil
}
