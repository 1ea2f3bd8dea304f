package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/agent/config"
)

// NewProfileCmd создаёт группу команд для работы с локальным профилем.
func NewProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Настройки клиента",
	}

	var insecure bool
	setServer := &cobra.Command{
		Use:   "set-server <url>",
		Short: "Запомнить адрес сервера по умолчанию",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Profile == nil {
				app.Profile = &config.Profile{}
			}
			app.Profile.ServerURL = args[0]
			app.Profile.InsecureTLS = insecure
			if err := config.Save(app.ProfilePath, app.Profile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "server saved to %s\n", app.ProfilePath)
			return nil
		},
	}
	setServer.Flags().BoolVar(&insecure, "insecure-tls", false, "skip TLS certificate verification for this server")

	show := &cobra.Command{
		Use:   "show",
		Short: "Показать текущий профиль",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.Profile
			if p == nil {
				p = &config.Profile{}
			}
			url := p.ServerURL
			if url == "" {
				url = config.DefaultServerURL + " (default)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "profile=%s\nserver=%s\ninsecure_tls=%v\n", app.ProfilePath, url, p.InsecureTLS)
			return nil
		},
	}

	cmd.AddCommand(setServer, show)
	return cmd
}
