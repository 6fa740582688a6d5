// Package mocks provides mock implementations for testing the tubebridge services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUploadRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(upload, nil)
package mocks

// Generate mock for UploadRepository interface from internal/core package.
// This creates MockUploadRepository with methods for all UploadRepository interface methods:
// Create, GetByID, List, UpdateStatus, Delete, Count
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=upload_repository_mock.go github.com/tubebridge/tubebridge-api/internal/core UploadRepository

// Generate mock for ManagerRepository interface from internal/core package.
// This creates MockManagerRepository with methods for all ManagerRepository interface methods:
// Create, GetByID, GetByEmail, List, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=manager_repository_mock.go github.com/tubebridge/tubebridge-api/internal/core ManagerRepository

// Generate mock for ActivityRepository interface from internal/core package.
// This creates MockActivityRepository with methods for all ActivityRepository interface methods:
// Create, List
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=activity_repository_mock.go github.com/tubebridge/tubebridge-api/internal/core ActivityRepository
