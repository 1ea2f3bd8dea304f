package service

import "context"

// HealthService — проверка готовности сервера обслуживать запросы.
type HealthService struct {
	repo HealthRepo
}

func NewHealthService(repo HealthRepo) *HealthService {
	return &HealthService{repo: repo}
}

// Check возвращает ошибку, если БД недоступна.
func (s *HealthService) Check(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
