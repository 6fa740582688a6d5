package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tubebridge/tubebridge-api/internal/data/database"
	"github.com/tubebridge/tubebridge-api/internal/data/pgxutil"
	"github.com/tubebridge/tubebridge-api/internal/domain/model"
)

// ActivityRepo provides database operations for the upload activity feed.
// Entries are append-only; there is no update or delete path.
type ActivityRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewActivityRepo creates a new ActivityRepo with real time provider.
func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewActivityRepoWithTimeProvider creates a new ActivityRepo with a custom time provider (useful for tests).
func NewActivityRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ActivityRepo {
	return &ActivityRepo{DB: db, timeProvider: tp}
}

// Create appends a new activity entry.
func (r *ActivityRepo) Create(
	ctx context.Context,
	req *model.CreateActivityRequest,
) (*model.ActivityEntry, error) {
	if req == nil {
		return nil, errors.New("create activity request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.ActivityEntry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO activity_entries (upload_id, action, actor, detail, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, upload_id, action, actor, detail, created_at`,
			req.UploadID,
			req.Action,
			req.Actor,
			req.Detail,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ActivityEntry])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create activity entry: %w", err)
	}
	return &out, nil
}

// List retrieves activity entries with optional filters, newest first.
func (r *ActivityRepo) List(
	ctx context.Context,
	opts model.ActivityListOptions,
) ([]*model.ActivityEntry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns("id", "upload_id", "action", "actor", "detail", "created_at"),
		database.WithOrderBy("created_at", "DESC"),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.UploadID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("upload_id", database.Equal, *opts.UploadID),
		))
	}
	if opts.Action != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("action", database.Equal, *opts.Action),
		))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("activity_entries", queryOpts...))

	var rowsOut []model.ActivityEntry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ActivityEntry])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list activity entries: %w", err)
	}

	res := make([]*model.ActivityEntry, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
