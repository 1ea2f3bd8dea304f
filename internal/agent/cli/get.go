package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// NewGetCmd создаёт CLI-команду получения публичных данных пользователя.
//
//	usersctl get test_user
func NewGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <username>",
		Short: "Публичные данные пользователя",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Client().GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(u)
		},
	}
}
