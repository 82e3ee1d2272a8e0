package commands

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	secretsvc "lanchat/internal/services/secret"
	"lanchat/internal/util/memzero"
)

var errNoPassphrase = errors.New("passphrase required (-p)")

func secretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage the stored shared secret",
	}
	cmd.AddCommand(secretGenerateCmd(), secretImportCmd(), secretExportCmd())
	return cmd
}

func secretGenerateCmd() *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random shared secret and store it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return errNoPassphrase
			}
			s, fp, err := wire.Secrets.GenerateSecret(passphrase, size)
			if err != nil {
				return err
			}
			defer memzero.Zero(s)
			fmt.Fprintf(cmd.OutOrStdout(), "Secret created.\nHex: %s\nFingerprint: %s\n", hex.EncodeToString(s), fp)
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "bytes", secretsvc.DefaultSize, "secret length in bytes")
	return cmd
}

func secretImportCmd() *cobra.Command {
	var in byteInput
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store a shared secret received out-of-band",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return errNoPassphrase
			}
			s, err := in.bytes()
			if err != nil {
				return fmt.Errorf("secret: %w", err)
			}
			defer memzero.Zero(s)
			fp, err := wire.Secrets.ImportSecret(passphrase, s)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Secret stored.\nFingerprint: %s\n", fp)
			return nil
		},
	}
	in.register(cmd, "text", "secret")
	return cmd
}

func secretExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the stored shared secret as hex",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return errNoPassphrase
			}
			s, err := wire.Secrets.LoadSecret(passphrase)
			if err != nil {
				return err
			}
			defer memzero.Zero(s)
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(s))
			return nil
		},
	}
}
