package tests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/config"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-yandex-users/internal/shared/errors"
)

// openTestDB поднимает подключение к настоящему Postgres и чистит таблицу.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping integration test")
	}

	db, err := config.OpenDB(context.Background(), config.DBConfig{DSN: dsn, MaxOpenConns: 10})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	err = config.RunMigrations(db, config.MigrationsConfig{
		Enabled: true,
		Path:    "file://../../../../migrations/postgres",
	}, zap.NewNop().Sugar())
	require.NoError(t, err)

	_, err = db.Exec(`TRUNCATE users`)
	require.NoError(t, err)
	return db
}

func TestUsersRepository_Postgres_UniqueConstraints(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewUsersRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.UserInDB{Email: "a@b.com", Username: "alice", Salt: "s", Password: "h"})
	require.NoError(t, err)
	require.True(t, created.IsActive)

	_, err = repo.Create(ctx, models.UserInDB{Email: "a@b.com", Username: "other", Salt: "s", Password: "h"})
	require.ErrorIs(t, err, serr.ErrEmailTaken)

	_, err = repo.Create(ctx, models.UserInDB{Email: "other@b.com", Username: "alice", Salt: "s", Password: "h"})
	require.ErrorIs(t, err, serr.ErrUsernameTaken)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	got, err = repo.GetByEmail(ctx, "missing@b.com")
	require.NoError(t, err)
	require.Nil(t, got)
}

// Параллельные регистрации одного email: успешна ровно одна
func TestUsersRepository_Postgres_ConcurrentCreate(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewUsersRepository(db)

	const n = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, dups int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(context.Background(), models.UserInDB{
				Email:    "race@b.com",
				Username: fmt.Sprintf("racer_%d", i),
				Salt:     "s",
				Password: "h",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, serr.ErrEmailTaken):
				dups++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, ok)
	require.Equal(t, n-1, dups)
}
