package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tubebridge/tubebridge-api/internal/data/database"
	"github.com/tubebridge/tubebridge-api/internal/data/pgxutil"
	"github.com/tubebridge/tubebridge-api/internal/domain/model"
)

// UploadRepo provides database operations for uploads.
type UploadRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUploadRepo creates a new UploadRepo with real time provider.
func NewUploadRepo(db *sql.DB) *UploadRepo {
	return &UploadRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUploadRepoWithTimeProvider creates a new UploadRepo with a custom time provider (useful for tests).
func NewUploadRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UploadRepo {
	return &UploadRepo{DB: db, timeProvider: tp}
}

// Create inserts a new upload with status Pending and an ID one greater than
// the current maximum. The table is locked for the duration of the insert so
// concurrent submits cannot observe the same maximum.
func (r *UploadRepo) Create(ctx context.Context, req *model.CreateUploadRequest) (*model.Upload, error) {
	if req == nil {
		return nil, errors.New("create upload request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()

	// Only a future publish time makes the record Scheduled. A past time that
	// slipped through the submit grace window is an immediate Pending submit.
	status := model.UploadStatusPending
	var feedback *string
	if req.ScheduledAt != nil && req.ScheduledAt.After(now) {
		status = model.UploadStatusScheduled
		note := model.ScheduledFeedbackNote(*req.ScheduledAt)
		feedback = &note
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	var out model.Upload
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, `LOCK TABLE uploads IN SHARE ROW EXCLUSIVE MODE`); err != nil {
				return err
			}
			rows, err := tx.Query(ctx, `
				INSERT INTO uploads (
					id, title, description, tags, video_file_name, video_size, thumbnail_url,
					upload_date, status, feedback, scheduled_at, submitted_by, created_at
				) VALUES (
					(SELECT COALESCE(MAX(id), 0) + 1 FROM uploads),
					$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $7
				) RETURNING `+uploadColumnList,
				strings.TrimSpace(req.Title),
				req.Description,
				tags,
				strings.TrimSpace(req.VideoFileName),
				req.VideoSize,
				req.ThumbnailURL,
				now,
				status,
				feedback,
				req.ScheduledAt,
				req.SubmittedBy,
			)
			if err != nil {
				return err
			}
			defer rows.Close()
			out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Upload])
			return err
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create upload: %w", err)
	}
	return &out, nil
}

// GetByID retrieves an upload by ID.
func (r *UploadRepo) GetByID(ctx context.Context, id int64) (*model.Upload, error) {
	var upload model.Upload
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, uploadGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		upload, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Upload])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUploadNotFound
		}
		return nil, fmt.Errorf("failed to get upload by ID: %w", err)
	}
	return &upload, nil
}

// List retrieves uploads with optional filters, newest first.
func (r *UploadRepo) List(ctx context.Context, opts model.UploadsListOptions) ([]*model.Upload, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query, args := database.BuildListQuery(r.buildUploadQueryOptions(opts, false, limit, offset))

	var rowsOut []model.Upload
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Upload])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	res := make([]*model.Upload, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the number of uploads matching the options.
func (r *UploadRepo) Count(ctx context.Context, opts model.UploadsListOptions) (int, error) {
	query, args := database.BuildListQuery(r.buildUploadQueryOptions(opts, true, 0, 0))

	var count int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&count)
	}); err != nil {
		return 0, fmt.Errorf("failed to count uploads: %w", err)
	}
	return count, nil
}

// UpdateStatus applies a review decision to an upload and returns the updated
// row. Approving clears any prior feedback and applies the reviewer's metadata
// edits; rejecting records the reviewer's feedback.
func (r *UploadRepo) UpdateStatus(
	ctx context.Context,
	id int64,
	req *model.ReviewUploadRequest,
) (*model.Upload, error) {
	if req == nil {
		return nil, errors.New("review upload request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var feedback *string
	if req.Status == model.UploadStatusRejected {
		feedback = req.Feedback
	}

	setParts := make([]string, 0, 6)
	args := make([]any, 0, 7)
	set := func(col string, v any) {
		args = append(args, v)
		setParts = append(setParts, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	set("status", req.Status)
	set("feedback", feedback)
	if req.Status == model.UploadStatusApproved {
		if req.Title != nil {
			set("title", strings.TrimSpace(*req.Title))
		}
		if req.Description != nil {
			set("description", *req.Description)
		}
		if req.Tags != nil {
			set("tags", req.Tags)
		}
	}
	set("updated_at", r.timeProvider.Now().UTC())
	args = append(args, id)
	idPos := len(args)
	// The status guard keeps decisions atomic: a row that was decided between
	// the caller's read and this update matches zero rows instead of being
	// silently overwritten.
	args = append(args, model.UploadStatusPending, model.UploadStatusScheduled)
	query := fmt.Sprintf(
		"UPDATE uploads SET %s WHERE id = $%d AND status IN ($%d, $%d) RETURNING %s",
		strings.Join(setParts, ", "), idPos, idPos+1, idPos+2, uploadColumnList,
	)

	var out model.Upload
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Upload])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, ErrUploadAlreadyDecided
			}
			return nil, ErrUploadNotFound
		}
		return nil, fmt.Errorf("failed to update upload status: %w", err)
	}
	return &out, nil
}

// Delete deletes an upload by ID.
func (r *UploadRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM uploads WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete upload: %w", err)
	}
	return rows > 0, nil
}

// --- helpers ---

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	uploadColumnList = `id, title, description, tags, video_file_name, video_size, thumbnail_url,
	       upload_date, status, feedback, scheduled_at, submitted_by, created_at, updated_at`

	uploadGetByIDQuery = `
		SELECT ` + uploadColumnList + `
		FROM uploads
		WHERE id = $1`
)

// uploadColumns returns the standard column list for dynamic upload queries.
func uploadColumns() []string {
	return []string{
		"id",
		"title",
		"description",
		"tags",
		"video_file_name",
		"video_size",
		"thumbnail_url",
		"upload_date",
		"status",
		"feedback",
		"scheduled_at",
		"submitted_by",
		"created_at",
		"updated_at",
	}
}

// buildUploadQueryOptions builds query options for upload listing with filters.
// Listing always orders by ID descending so the newest submission reads first.
func (r *UploadRepo) buildUploadQueryOptions(
	opts model.UploadsListOptions,
	countOnly bool,
	limit, offset int,
) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{}
	if countOnly {
		queryOpts = append(queryOpts, database.WithCountOnly())
	} else {
		queryOpts = append(queryOpts,
			database.WithColumns(uploadColumns()...),
			database.WithOrderBy("id", "DESC"),
			database.WithLimit(limit),
			database.WithOffset(offset),
		)
	}

	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("title", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	switch {
	case opts.Status != nil:
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	case len(opts.Statuses) > 0:
		statuses := make([]string, len(opts.Statuses))
		for i, s := range opts.Statuses {
			statuses[i] = string(s)
		}
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.In, statuses),
		))
	}

	return database.NewListQueryOptions("uploads", queryOpts...)
}
