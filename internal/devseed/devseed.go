// Package devseed populates a development database with sample content
// managers, uploads in every review state, and a matching activity feed.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tubebridge/tubebridge-api/internal/data"
	"github.com/tubebridge/tubebridge-api/internal/domain/model"
	"github.com/tubebridge/tubebridge-api/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB       *sql.DB
	managers *service.ManagerService
	uploads  *data.UploadRepo
	activity *data.ActivityRepo
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	managerRepo := data.NewManagerRepo(db)
	managerService := service.NewManagerService(service.ManagerServiceOptions{
		Managers: managerRepo,
	})

	return Services{
		DB:       db,
		managers: managerService,
		uploads:  data.NewUploadRepo(db),
		activity: data.NewActivityRepo(db),
	}
}

// Run executes the full development seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	failures := seedManagers(ctx, svcs.managers, logger)
	if err := seedUploads(ctx, svcs, logger); err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func seedManagers(ctx context.Context, svc *service.ManagerService, logger *slog.Logger) int {
	failures := 0
	managers := []*model.CreateManagerRequest{
		{Name: "Alex Rivera", Email: "alex.rivera@tubebridge.dev", Status: model.ManagerStatusActive},
		{Name: "Jordan Banks", Email: "jordan.banks@tubebridge.dev", Status: model.ManagerStatusActive},
		{Name: "Sam Okafor", Email: "sam.okafor@tubebridge.dev", Status: model.ManagerStatusActive},
		{Name: "Riley Chen", Email: "riley.chen@tubebridge.dev", Status: model.ManagerStatusInactive},
	}

	for _, req := range managers {
		created, err := createManager(ctx, svc, req)
		if err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create manager", "email", req.Email, "error", err)
			}
			failures++
			continue
		}
		if logger != nil {
			msg := "manager already exists"
			if created {
				msg = "created manager"
			}
			logger.InfoContext(ctx, msg, "email", req.Email)
		}
	}

	return failures
}

func createManager(ctx context.Context, svc *service.ManagerService, req *model.CreateManagerRequest) (bool, error) {
	if _, err := svc.Create(ctx, req); err != nil {
		if errors.Is(err, data.ErrManagerEmailExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type uploadSeedSpec struct {
	request  model.CreateUploadRequest
	decision *model.ReviewUploadRequest
	actor    string
}

// seedUploads inserts sample uploads once; the uploads table has no natural
// key so a non-empty table means a previous seed already ran.
func seedUploads(ctx context.Context, svcs Services, logger *slog.Logger) error {
	count, err := svcs.uploads.Count(ctx, model.UploadsListOptions{})
	if err != nil {
		return fmt.Errorf("count uploads: %w", err)
	}
	if count > 0 {
		if logger != nil {
			logger.InfoContext(ctx, "uploads already seeded", "count", count)
		}
		return nil
	}

	for _, spec := range defaultUploadSeedSpecs() {
		if seedErr := seedUpload(ctx, svcs, spec, logger); seedErr != nil {
			return seedErr
		}
	}
	return nil
}

func seedUpload(ctx context.Context, svcs Services, spec uploadSeedSpec, logger *slog.Logger) error {
	req := spec.request
	upload, err := svcs.uploads.Create(ctx, &req)
	if err != nil {
		return fmt.Errorf("create upload %q: %w", req.Title, err)
	}
	if logger != nil {
		logger.InfoContext(ctx, "created upload", "id", upload.ID, "title", upload.Title)
	}

	submitter := "seed@tubebridge.dev"
	if req.SubmittedBy != nil {
		submitter = *req.SubmittedBy
	}
	if recordErr := recordActivity(ctx, svcs, upload.ID, model.ActivityUploadSubmitted, submitter, nil); recordErr != nil {
		return recordErr
	}

	if spec.decision == nil {
		return nil
	}

	decided, err := svcs.uploads.UpdateStatus(ctx, upload.ID, spec.decision)
	if err != nil {
		return fmt.Errorf("apply seed decision to upload %d: %w", upload.ID, err)
	}
	action := model.ActivityUploadApproved
	if decided.Status == model.UploadStatusRejected {
		action = model.ActivityUploadRejected
	}
	return recordActivity(ctx, svcs, upload.ID, action, spec.actor, spec.decision.Feedback)
}

func recordActivity(
	ctx context.Context,
	svcs Services,
	uploadID int64,
	action model.ActivityAction,
	actor string,
	detail *string,
) error {
	if _, err := svcs.activity.Create(ctx, &model.CreateActivityRequest{
		UploadID: uploadID,
		Action:   action,
		Actor:    actor,
		Detail:   detail,
	}); err != nil {
		return fmt.Errorf("record %s activity for upload %d: %w", action, uploadID, err)
	}
	return nil
}

func defaultUploadSeedSpecs() []uploadSeedSpec {
	reviewer := "alex.rivera@tubebridge.dev"
	scheduledAt := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Minute)

	return []uploadSeedSpec{
		{
			request: model.CreateUploadRequest{
				Title:         "Getting Started with TubeBridge",
				Description:   "A five minute tour of the upload and review workflow.",
				Tags:          []string{"tutorial", "onboarding"},
				VideoFileName: "getting-started.mp4",
				VideoSize:     48 << 20,
				SubmittedBy:   stringPtr("jordan.banks@tubebridge.dev"),
			},
		},
		{
			request: model.CreateUploadRequest{
				Title:         "Q3 Product Update",
				Description:   "Highlights from the third quarter release.",
				Tags:          []string{"product", "release-notes"},
				VideoFileName: "q3-product-update.mp4",
				VideoSize:     210 << 20,
				ThumbnailURL:  stringPtr("https://cdn.tubebridge.dev/thumbs/q3-update.png"),
				SubmittedBy:   stringPtr("sam.okafor@tubebridge.dev"),
			},
			decision: &model.ReviewUploadRequest{Status: model.UploadStatusApproved},
			actor:    reviewer,
		},
		{
			request: model.CreateUploadRequest{
				Title:         "Office Tour (raw cut)",
				Description:   "Unedited walkthrough footage.",
				Tags:          []string{"behind-the-scenes"},
				VideoFileName: "office-tour-raw.mp4",
				VideoSize:     920 << 20,
				SubmittedBy:   stringPtr("jordan.banks@tubebridge.dev"),
			},
			decision: &model.ReviewUploadRequest{
				Status:   model.UploadStatusRejected,
				Feedback: stringPtr("Needs editing before publication; trim the first ten minutes."),
			},
			actor: reviewer,
		},
		{
			request: model.CreateUploadRequest{
				Title:         "Launch Day Livestream Teaser",
				Description:   "Teaser scheduled ahead of the launch livestream.",
				Tags:          []string{"launch", "teaser"},
				VideoFileName: "launch-teaser.mp4",
				VideoSize:     96 << 20,
				ScheduledAt:   &scheduledAt,
				SubmittedBy:   stringPtr("sam.okafor@tubebridge.dev"),
			},
		},
	}
}

func stringPtr(s string) *string { return &s }
