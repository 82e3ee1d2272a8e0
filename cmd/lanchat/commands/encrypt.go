package commands

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lanchat/internal/crypto"
)

func encryptCmd() *cobra.Command {
	var key, msg byteInput
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a message, decrypt it again and verify the round trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := key.bytes()
			if err != nil {
				return fmt.Errorf("key: %w", err)
			}
			m, err := msg.bytes()
			if err != nil {
				return fmt.Errorf("message: %w", err)
			}
			state, err := crypto.Schedule(k)
			if err != nil {
				return err
			}

			ct := state.Transform(m)
			pt := state.Transform(ct)

			out := cmd.OutOrStdout()
			section := func(label string, b []byte) {
				fmt.Fprintf(out, "[%s]\n", label)
				fmt.Fprintln(out, crypto.FormatBytes(b, 16))
			}
			section("Original Message", m)
			section("Encryption", ct)
			section("Decryption", pt)

			if !bytes.Equal(m, pt) {
				fmt.Fprintln(out, "[Verification] Failed!")
				return errors.New("decrypted message does not match the original")
			}
			fmt.Fprintln(out, "[Verification] Successful!")
			return nil
		},
	}
	key.register(cmd, "key", "key")
	msg.register(cmd, "text", "message")
	return cmd
}
