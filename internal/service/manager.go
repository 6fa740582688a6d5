package service

import (
	"context"

	"github.com/tubebridge/tubebridge-api/internal/core"
	"github.com/tubebridge/tubebridge-api/internal/domain/model"
	apperrors "github.com/tubebridge/tubebridge-api/internal/errors"
)

// ManagerServiceOptions groups dependencies for ManagerService.
type ManagerServiceOptions struct {
	Managers core.ManagerRepository
}

// ManagerService orchestrates content manager CRUD.
type ManagerService struct {
	managers core.ManagerRepository
}

// NewManagerService constructs a new ManagerService.
func NewManagerService(opts ManagerServiceOptions) *ManagerService {
	return &ManagerService{managers: opts.Managers}
}

// Create registers a new content manager.
func (s *ManagerService) Create(ctx context.Context, req *model.CreateManagerRequest) (*model.Manager, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.managers.Create(ctx, req)
}

// GetByID retrieves a content manager by ID.
func (s *ManagerService) GetByID(ctx context.Context, id string) (*model.Manager, error) {
	return s.managers.GetByID(ctx, id)
}

// GetByEmail retrieves a content manager by email.
func (s *ManagerService) GetByEmail(ctx context.Context, email string) (*model.Manager, error) {
	return s.managers.GetByEmail(ctx, email)
}

// List returns a page of content managers ordered by name.
func (s *ManagerService) List(ctx context.Context, limit, offset int) ([]*model.Manager, error) {
	if limit <= 0 {
		limit = defaultUploadListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.managers.List(ctx, limit, offset)
}

// Update applies changes to a content manager. Email is immutable and not
// part of the update shape.
func (s *ManagerService) Update(ctx context.Context, id string, req model.UpdateManagerRequest) (*model.Manager, error) {
	if !req.HasUpdates() {
		return nil, apperrors.Validation("no fields to update")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.managers.Update(ctx, id, req)
}

// Delete removes a content manager.
func (s *ManagerService) Delete(ctx context.Context, id string) (bool, error) {
	return s.managers.Delete(ctx, id)
}
