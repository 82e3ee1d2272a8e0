package commands

import (
	"github.com/spf13/cobra"

	"lanchat/internal/app"
)

func joinCmd() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join the group and chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.New(wire, cmd.InOrStdin(), cmd.OutOrStdout())
			return a.Join(cmd.Context(), app.JoinOptions{
				Username:   username,
				Passphrase: passphrase,
				Secret:     secretFlag,
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "your chat username (prompted when empty)")
	return cmd
}
