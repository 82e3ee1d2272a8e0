package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"lanchat/internal/util/memzero"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the fingerprint of the shared secret in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, source, err := wire.ResolveSecret(passphrase, secretFlag)
			if err != nil {
				return err
			}
			defer memzero.Zero(s)
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s (%s)\n", wire.Secrets.FingerprintSecret(s), source)
			return nil
		},
	}
}
