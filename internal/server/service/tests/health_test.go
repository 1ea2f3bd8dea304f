package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/service"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/service/mocks"
)

func TestHealthService_Check(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockHealthRepo(ctrl)
	svc := service.NewHealthService(repo)

	repo.EXPECT().Ping(gomock.Any()).Return(nil)
	require.NoError(t, svc.Check(context.Background()))

	repo.EXPECT().Ping(gomock.Any()).Return(errors.New("down"))
	require.Error(t, svc.Check(context.Background()))
}
