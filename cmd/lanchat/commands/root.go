package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/carlmjohnson/versioninfo"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"lanchat/internal/app"
)

const configName = "lanchat.toml"

var (
	home       string
	cfgFile    string
	passphrase string
	secretFlag string
	groupAddr  string
	groupPort  int
	logLevel   string

	wire *app.Wire
)

// Execute runs the CLI until it completes or ctx is cancelled.
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, newRoot(), fang.WithVersion(versioninfo.Short()))
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "lanchat",
		Short:         "Encrypted group chat over LAN multicast",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".lanchat")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			wire, err = app.NewWire(home, cfg)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			return wire.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "state dir (default ~/.lanchat)")
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default <home>/"+configName+")")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the stored secret")
	pf.StringVar(&secretFlag, "secret", "", "shared secret, overrides config and keystore")
	pf.StringVar(&groupAddr, "group", "", "multicast group address")
	pf.IntVar(&groupPort, "port", 0, "multicast UDP port")
	pf.StringVar(&logLevel, "log-level", "", "log level (ERROR, WARNING, NOTICE, INFO, DEBUG)")

	root.AddCommand(joinCmd(), keystreamCmd(), encryptCmd(), secretCmd(), fingerprintCmd())
	return root
}

// loadConfig reads the config file if there is one and applies flag
// overrides on top.
func loadConfig(cmd *cobra.Command) (*app.Config, error) {
	path, explicit := cfgFile, cfgFile != ""
	if !explicit {
		path = filepath.Join(home, configName)
	}

	cfg, err := app.LoadFile(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, os.ErrNotExist):
		cfg = app.Default()
	default:
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("group") {
		cfg.Group.Address = groupAddr
	}
	if flags.Changed("port") {
		cfg.Group.Port = groupPort
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
