// @title           Users API
// @version         1.0
// @description     User registration backend.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes http https
//
// Package main содержит точку входа серверного приложения.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера из файла ./configs/server.yaml;
//   - создание хэшера паролей (неизвестная схема — фатальная ошибка старта);
//   - подключение к базе данных и применение миграций;
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - запуск сервера и корректное (graceful) завершение по сигналу.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/api"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/config"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/crypto"
	h "github.com/IvanChernomyrdin/go-yandex-users/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/repository"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/service"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/validate"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-yandex-users/swagger/docs"
)

func main() {
	configPath := flag.String("config", "./configs/server.yaml", "path to server config")
	flag.Parse()

	boot := logger.NewHTTPLogger().Sugar()

	if err := godotenv.Load(); err != nil {
		boot.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot.Fatal(err)
	}

	httpLogger := logger.New(cfg.Log.LoggerOptions())
	defer httpLogger.Sync()
	sugar := httpLogger.Sugar()

	// хэшер создаём до БД: кривая схема должна валить старт сразу
	hasher, err := crypto.NewPasswordHasher(cfg.Password.HasherParams())
	if err != nil {
		sugar.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	db, err := config.OpenDB(ctx, cfg.DB)
	if err != nil {
		sugar.Fatal(err)
	}
	// делаем отложенное закрытие бд
	defer db.Close()

	if err := config.RunMigrations(db, cfg.Migrations, sugar); err != nil {
		sugar.Fatal(err)
	}

	repos := service.Repositories{
		Users:  repository.NewUsersRepository(db).WithQueryTimeout(cfg.DB.QueryTimeout),
		Health: repository.NewHealthRepository(db),
	}
	svc := service.NewServices(repos, hasher)

	handler := api.NewHandler(svc, httpLogger, validate.New())
	router := h.NewRouter(handler, h.RouterOptions{MaxBodyBytes: cfg.Server.MaxBodyBytes})

	addr := cfg.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s (tls=%v, hasher=%s)", addr, cfg.TLS.Enabled, hasher.Scheme())

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
