package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tubebridge/tubebridge-api/internal/data/pgxutil"
	"github.com/tubebridge/tubebridge-api/internal/domain/model"
)

// ManagerRepo provides database operations for content manager accounts.
type ManagerRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewManagerRepo creates a new ManagerRepo with real time provider.
func NewManagerRepo(db *sql.DB) *ManagerRepo {
	return &ManagerRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewManagerRepoWithTimeProvider creates a new ManagerRepo with a custom time provider (useful for tests).
func NewManagerRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ManagerRepo {
	return &ManagerRepo{DB: db, timeProvider: tp}
}

// Create inserts a new manager.
func (r *ManagerRepo) Create(ctx context.Context, req *model.CreateManagerRequest) (*model.Manager, error) {
	if req == nil {
		return nil, errors.New("create manager request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Manager
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO managers (name, email, status, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, name, email, status, created_at, updated_at`,
			strings.TrimSpace(req.Name),
			strings.ToLower(strings.TrimSpace(req.Email)),
			req.Status,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Manager])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a manager by ID.
func (r *ManagerRepo) GetByID(ctx context.Context, id string) (*model.Manager, error) {
	return r.getByQuery(ctx, managerGetByIDQuery, "failed to get manager by ID", id)
}

// GetByEmail retrieves a manager by email.
func (r *ManagerRepo) GetByEmail(ctx context.Context, email string) (*model.Manager, error) {
	return r.getByQuery(
		ctx,
		managerGetByEmailQuery,
		"failed to get manager by email",
		strings.ToLower(strings.TrimSpace(email)),
	)
}

// List retrieves managers with pagination, ordered by name.
func (r *ManagerRepo) List(ctx context.Context, limit, offset int) ([]*model.Manager, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Manager
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, managerListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Manager])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}

	res := make([]*model.Manager, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a manager.
func (r *ManagerRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateManagerRequest,
) (*model.Manager, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE managers SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING id, name, email, status, created_at, updated_at"

	var out model.Manager
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Manager])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a manager.
func (r *ManagerRepo) buildUpdateClause(req model.UpdateManagerRequest) (string, []any) {
	setParts := make([]string, 0, 3)
	args := make([]any, 0, 4)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

// Delete deletes a manager by ID.
func (r *ManagerRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM managers WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete manager: %w", err)
	}
	return rows > 0, nil
}

// --- helpers ---

const (
	managerGetByIDQuery = `
		SELECT id, name, email, status, created_at, updated_at
		FROM managers
		WHERE id = $1`

	managerGetByEmailQuery = `
		SELECT id, name, email, status, created_at, updated_at
		FROM managers
		WHERE email = $1`

	managerListQuery = `
		SELECT id, name, email, status, created_at, updated_at
		FROM managers
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`
)

// getByQuery executes a query expected to return a single manager.
func (r *ManagerRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.Manager, error) {
	var manager model.Manager
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		manager, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Manager])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrManagerNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &manager, nil
}

func (r *ManagerRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrManagerNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrManagerEmailExists
	}
	return err
}
