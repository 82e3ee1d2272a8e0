package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"lanchat/internal/crypto"
)

func keystreamCmd() *cobra.Command {
	var (
		key    byteInput
		length int
		table  bool
	)
	cmd := &cobra.Command{
		Use:   "keystream",
		Short: "Print the first keystream bytes for a key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := key.bytes()
			if err != nil {
				return fmt.Errorf("key: %w", err)
			}
			state, err := crypto.Schedule(k)
			if err != nil {
				return err
			}
			ks := state.Keystream(length)
			out := cmd.OutOrStdout()
			if table {
				fmt.Fprintln(out, "Key Stream Bytes:")
				fmt.Fprintln(out, crypto.FormatBytes(ks, 16))
				return nil
			}
			fmt.Fprintln(out, hex.EncodeToString(ks))
			return nil
		},
	}
	key.register(cmd, "key", "key")
	cmd.Flags().IntVarP(&length, "length", "n", 16, "number of keystream bytes")
	cmd.Flags().BoolVar(&table, "table", false, "print decimal bytes, 16 per row")
	return cmd
}
