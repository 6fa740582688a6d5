package core

import (
	"context"

	"github.com/tubebridge/tubebridge-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UploadRepository defines the interface for upload data operations.
//
// Create assigns the new upload an ID one greater than the current maximum,
// so listings ordered by ID descending read newest first.
type UploadRepository interface {
	Create(ctx context.Context, req *model.CreateUploadRequest) (*model.Upload, error)
	GetByID(ctx context.Context, id int64) (*model.Upload, error)
	List(ctx context.Context, opts model.UploadsListOptions) ([]*model.Upload, error)
	// UpdateStatus applies a review decision and returns the updated upload.
	UpdateStatus(ctx context.Context, id int64, req *model.ReviewUploadRequest) (*model.Upload, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context, opts model.UploadsListOptions) (int, error)
}

// ManagerRepository defines the interface for content manager data operations.
type ManagerRepository interface {
	Create(ctx context.Context, req *model.CreateManagerRequest) (*model.Manager, error)
	GetByID(ctx context.Context, id string) (*model.Manager, error)
	GetByEmail(ctx context.Context, email string) (*model.Manager, error)
	List(ctx context.Context, limit, offset int) ([]*model.Manager, error)
	Update(ctx context.Context, id string, req model.UpdateManagerRequest) (*model.Manager, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ActivityRepository defines the interface for the upload activity feed.
type ActivityRepository interface {
	Create(ctx context.Context, req *model.CreateActivityRequest) (*model.ActivityEntry, error)
	List(ctx context.Context, opts model.ActivityListOptions) ([]*model.ActivityEntry, error)
}
