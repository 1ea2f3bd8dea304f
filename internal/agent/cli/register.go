package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/agent/api"
)

// NewRegisterCmd создаёт CLI-команду для регистрации нового пользователя.
//
// Обязательные флаги --email и --username. Пароль берётся из --password,
// из stdin (--password-stdin) или запрашивается в терминале.
//
// Пример использования:
//
//	usersctl register --email test@example.com --username test_user --password StrongPass123
func NewRegisterCmd(app *App) *cobra.Command {
	var (
		email, username, password string
		passwordStdin             bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  usersctl register --email test@example.com --username test_user --password StrongPass123
  echo -n StrongPass123 | usersctl register --email test@example.com --username test_user --password-stdin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := ReadPassword(cmd, passwordStdin)
				if err != nil {
					return err
				}
				password = pw
			}

			u, err := app.Client().Register(cmd.Context(), api.NewUser{
				Email:    email,
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registration successful: id=%s username=%s email=%s\n", u.ID, u.Username, u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	cmd.Flags().StringVar(&username, "username", "", "username for registration")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if empty)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("username")

	return cmd
}
