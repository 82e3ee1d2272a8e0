package app

import (
	"context"
	"errors"
	"fmt"

	"lanchat/internal/domain"
	"lanchat/internal/instrument"
	lanlog "lanchat/internal/log"
	secretsvc "lanchat/internal/services/secret"
	"lanchat/internal/store"
	"lanchat/internal/transport"
)

// Sources reported by ResolveSecret.
const (
	SourceFlag     = "flag"
	SourceConfig   = "config"
	SourceKeystore = "keystore"
	SourceDefault  = "default"
)

// ErrPassphraseRequired is returned when the secret must come from the
// keystore but no passphrase was given.
var ErrPassphraseRequired = errors.New("a stored secret exists; passphrase required (-p)")

// Wire bundles the stores, services and shared infrastructure for the CLI.
type Wire struct {
	Config  *Config
	Log     *lanlog.Backend
	Metrics *instrument.Metrics
	Store   *store.SecretFileStore
	Secrets domain.SecretService
}

// NewWire constructs the dependency graph from cfg, keeping local state
// under home. A nil cfg means Default().
func NewWire(home string, cfg *Config) (*Wire, error) {
	if cfg == nil {
		cfg = Default()
	}
	backend, err := lanlog.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
	if err != nil {
		return nil, err
	}

	secretStore := store.NewSecretFileStore(home)
	return &Wire{
		Config:  cfg,
		Log:     backend,
		Metrics: instrument.New(),
		Store:   secretStore,
		Secrets: secretsvc.New(secretStore),
	}, nil
}

// OpenTransport joins the configured multicast group.
func (w *Wire) OpenTransport(ctx context.Context) (domain.Transport, error) {
	g := w.Config.Group
	m, err := transport.NewMulticast(ctx, transport.MulticastConfig{
		Group:         g.Address,
		Port:          g.Port,
		Interface:     g.Interface,
		TTL:           g.TTL,
		LoggerFactory: w.Log.LoggerFactory(),
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ResolveSecret returns the shared secret and where it came from. The order
// is override, the configuration file, the keystore and finally
// DefaultSecret.
func (w *Wire) ResolveSecret(passphrase, override string) ([]byte, string, error) {
	if override != "" {
		return []byte(override), SourceFlag, nil
	}

	b, err := w.Config.Secret.Bytes()
	if err != nil {
		return nil, "", err
	}
	if len(b) > 0 {
		return b, SourceConfig, nil
	}

	stored, err := w.Store.HasSecret()
	if err != nil {
		return nil, "", err
	}
	if stored {
		if passphrase == "" {
			return nil, "", ErrPassphraseRequired
		}
		b, err := w.Secrets.LoadSecret(passphrase)
		if err != nil {
			return nil, "", fmt.Errorf("load stored secret: %w", err)
		}
		return b, SourceKeystore, nil
	}

	return []byte(DefaultSecret), SourceDefault, nil
}

// Close releases the log backend.
func (w *Wire) Close() error {
	return w.Log.Close()
}
