// Package cli реализует командный интерфейс (CLI) клиента сервера пользователей.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку локального профиля (адрес сервера) из конфигурационного файла;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/agent/api"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/agent/config"
)

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL — базовый URL сервера (например, "http://127.0.0.1:8080").
	// Флаг --server важнее значения из профиля.
	ServerURL string
	// InsecureTLS отключает проверку сертификата сервера.
	InsecureTLS bool

	// ProfilePath — путь к файлу профиля.
	ProfilePath string
	// Profile — загруженный профиль. Может быть nil до PersistentPreRunE.
	Profile *config.Profile
}

// Client создаёт API-клиент с текущими настройками.
func (a *App) Client() *api.Client {
	url := a.ServerURL
	insecure := a.InsecureTLS
	if a.Profile != nil {
		if url == "" {
			url = a.Profile.ServerURL
		}
		insecure = insecure || a.Profile.InsecureTLS
	}
	if url == "" {
		url = config.DefaultServerURL
	}
	return NewAPIClient(url, insecure)
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "usersctl",
		Short: "usersctl — клиент сервера регистрации пользователей",
		Long: `usersctl.

Команды:
  register  Регистрация нового пользователя
  get       Публичные данные пользователя по username
  health    Проверка сервера
  profile   Настройки клиента
  version   Версия и дата сборки

Примеры:

Регистрация:
  usersctl register --email test@example.com --username test_user
  (пароль будет запрошен в терминале)

Получение пользователя:
  usersctl get test_user

Сервер по умолчанию:
  usersctl profile set-server https://users.example.com
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.ProfilePath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				app.ProfilePath = p
			}

			profile, err := config.Load(app.ProfilePath)
			if err != nil {
				return err
			}
			app.Profile = profile
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", "", "server base URL (default from profile or "+config.DefaultServerURL+")")
	cmd.PersistentFlags().BoolVar(&app.InsecureTLS, "insecure", false, "skip TLS certificate verification (dev only)")
	cmd.PersistentFlags().StringVar(&app.ProfilePath, "profile", "", "path to profile file")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewGetCmd(app))
	cmd.AddCommand(NewHealthCmd(app))
	cmd.AddCommand(NewProfileCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
