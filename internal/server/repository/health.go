package repository

import (
	"context"
	"database/sql"

	serr "github.com/IvanChernomyrdin/go-yandex-users/internal/shared/errors"
)

// HealthRepository проверяет доступность БД.
type HealthRepository struct {
	db *sql.DB
}

func NewHealthRepository(db *sql.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

func (r *HealthRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return serr.Internal(err)
	}
	return nil
}
