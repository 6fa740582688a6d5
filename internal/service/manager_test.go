package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tubebridge/tubebridge-api/internal/domain/model"
	apperrors "github.com/tubebridge/tubebridge-api/internal/errors"
	"github.com/tubebridge/tubebridge-api/internal/mocks"
)

const testManagerID = "manager-123"

func newManagerService(t *testing.T) (*mocks.MockManagerRepository, *ManagerService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockManagerRepository(ctrl)
	service := NewManagerService(ManagerServiceOptions{Managers: repo})

	return repo, service
}

func TestManagerService_Create_Success(t *testing.T) {
	t.Parallel()
	repo, service := newManagerService(t)
	ctx := context.Background()

	req := &model.CreateManagerRequest{
		Name:  "Jordan Creator",
		Email: "jordan@example.com",
	}
	expected := &model.Manager{
		ID:     testManagerID,
		Name:   "Jordan Creator",
		Email:  "jordan@example.com",
		Status: model.ManagerStatusActive,
	}

	repo.EXPECT().
		Create(ctx, req).
		Return(expected, nil).
		Times(1)

	result, err := service.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, expected, result)
	// Validate defaulted the status
	assert.Equal(t, model.ManagerStatusActive, req.Status)
}

func TestManagerService_Create_InvalidEmail(t *testing.T) {
	t.Parallel()
	_, service := newManagerService(t)

	result, err := service.Create(context.Background(), &model.CreateManagerRequest{
		Name:  "No Email",
		Email: "not-an-email",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsValidation(err))
}

func TestManagerService_Update_Success(t *testing.T) {
	t.Parallel()
	repo, service := newManagerService(t)
	ctx := context.Background()

	name := "Renamed Creator"
	req := model.UpdateManagerRequest{Name: &name}
	expected := &model.Manager{ID: testManagerID, Name: name}

	repo.EXPECT().
		Update(ctx, testManagerID, req).
		Return(expected, nil).
		Times(1)

	result, err := service.Update(ctx, testManagerID, req)
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestManagerService_Update_NoFields(t *testing.T) {
	t.Parallel()
	_, service := newManagerService(t)

	result, err := service.Update(context.Background(), testManagerID, model.UpdateManagerRequest{})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsValidation(err))
}

func TestManagerService_Update_NormalizesStatus(t *testing.T) {
	t.Parallel()
	repo, service := newManagerService(t)
	ctx := context.Background()

	status := model.ManagerStatus("  Inactive ")
	req := model.UpdateManagerRequest{Status: &status}

	repo.EXPECT().
		Update(ctx, testManagerID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, got model.UpdateManagerRequest) (*model.Manager, error) {
			require.NotNil(t, got.Status)
			assert.Equal(t, model.ManagerStatusInactive, *got.Status)
			return &model.Manager{ID: testManagerID, Status: *got.Status}, nil
		}).
		Times(1)

	_, err := service.Update(ctx, testManagerID, req)
	require.NoError(t, err)
}

func TestManagerService_List_NormalizesPaging(t *testing.T) {
	t.Parallel()
	repo, service := newManagerService(t)
	ctx := context.Background()

	repo.EXPECT().
		List(ctx, defaultUploadListLimit, 0).
		Return([]*model.Manager{}, nil).
		Times(1)

	_, err := service.List(ctx, 0, -5)
	require.NoError(t, err)
}

func TestManagerService_Delete(t *testing.T) {
	t.Parallel()
	repo, service := newManagerService(t)
	ctx := context.Background()

	repo.EXPECT().
		Delete(ctx, testManagerID).
		Return(true, nil).
		Times(1)

	ok, err := service.Delete(ctx, testManagerID)
	require.NoError(t, err)
	assert.True(t, ok)
}
