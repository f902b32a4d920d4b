// This file implements the season lifecycle: plain CRUD plus the
// transactional activation procedure that keeps at most one season active.
// Concurrency correctness rests on MySQL row locks held for the duration
// of one transaction, never on application-level mutexes.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/14vosx/hsc-auth-api/internal/model"
)

// ErrSeasonNotFound indicates the slug matched no season row.
var ErrSeasonNotFound = errors.New("season not found")

// ErrSeasonClosed indicates an activation attempt on a closed season.
// Closed is terminal; such seasons can never become active again.
var ErrSeasonClosed = errors.New("season closed")

const seasonColumns = "id, slug, name, description, starts_at, ends_at, status, created_at, updated_at"

// SeasonRepo manages persistence for seasons. It holds no season state
// across calls; every operation re-reads current status inside its own
// statement or transaction.
type SeasonRepo struct {
	db *sql.DB
}

// NewSeasonRepo constructs a SeasonRepo with the given pool.
func NewSeasonRepo(db *sql.DB) *SeasonRepo {
	return &SeasonRepo{db: db}
}

// Create inserts a new season and reloads the stored row so the caller
// sees DB-assigned fields. Status is not part of the insert; the schema
// default makes every new season a draft regardless of caller input.
func (r *SeasonRepo) Create(ctx context.Context, s *model.Season) error {
	const q = `INSERT INTO seasons (slug, name, description, starts_at, ends_at) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Slug, s.Name, s.Description, s.StartsAt.UTC(), s.EndsAt.UTC())
	if err != nil {
		if isDuplicate(err) {
			return ErrSlugExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT ` + seasonColumns + ` FROM seasons WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, s.ID).Scan(
		&s.ID, &s.Slug, &s.Name, &s.Description, &s.StartsAt, &s.EndsAt, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
}

// List returns every season ordered by start time descending, newest id
// first on equal start times.
func (r *SeasonRepo) List(ctx context.Context) ([]model.Season, error) {
	const q = `SELECT ` + seasonColumns + ` FROM seasons ORDER BY starts_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Season
	for rows.Next() {
		var s model.Season
		if err := rows.Scan(
			&s.ID, &s.Slug, &s.Name, &s.Description, &s.StartsAt, &s.EndsAt, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetBySlug returns the season with the given slug, or nil when no row
// matches. Absence is a null result here, not an error; only the
// activation procedure treats a missing slug as a failure.
func (r *SeasonRepo) GetBySlug(ctx context.Context, slug string) (*model.Season, error) {
	const q = `SELECT ` + seasonColumns + ` FROM seasons WHERE slug = ? LIMIT 1`
	var s model.Season
	err := r.db.QueryRowContext(ctx, q, slug).Scan(
		&s.ID, &s.Slug, &s.Name, &s.Description, &s.StartsAt, &s.EndsAt, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetActive returns the currently active season, or nil when none is.
func (r *SeasonRepo) GetActive(ctx context.Context) (*model.Season, error) {
	const q = `SELECT ` + seasonColumns + ` FROM seasons WHERE status = 'active' LIMIT 1`
	var s model.Season
	err := r.db.QueryRowContext(ctx, q).Scan(
		&s.ID, &s.Slug, &s.Name, &s.Description, &s.StartsAt, &s.EndsAt, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SeasonPatch carries optional field updates for a season. Nil pointers
// leave columns untouched. Description honors presence instead: when
// SetDescription is true a nil Description writes NULL, so an explicit
// null in the request clears the text while an omitted field does not.
type SeasonPatch struct {
	Name           *string
	SetDescription bool
	Description    *string
	StartsAt       *time.Time
	EndsAt         *time.Time
}

// Empty reports whether the patch carries no recognized field.
func (p SeasonPatch) Empty() bool {
	return p.Name == nil && !p.SetDescription && p.StartsAt == nil && p.EndsAt == nil
}

// Patch updates the provided subset of season fields and returns the
// affected row count. An empty patch executes no statement and reports
// zero rows, leaving updated_at untouched.
func (r *SeasonRepo) Patch(ctx context.Context, slug string, p SeasonPatch) (int64, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.SetDescription {
		if p.Description != nil {
			sets = append(sets, "description = ?")
			args = append(args, *p.Description)
		} else {
			sets = append(sets, "description = NULL")
		}
	}
	if p.StartsAt != nil {
		sets = append(sets, "starts_at = ?")
		args = append(args, p.StartsAt.UTC())
	}
	if p.EndsAt != nil {
		sets = append(sets, "ends_at = ?")
		args = append(args, p.EndsAt.UTC())
	}
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	q := "UPDATE seasons SET " + strings.Join(sets, ", ") + " WHERE slug = ?"
	args = append(args, slug)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close unconditionally sets the season's status to closed and returns
// the affected row count. Re-closing an already closed season changes
// zero rows; callers wanting a "don't close twice" guard must check
// beforehand, the operation itself does not.
func (r *SeasonRepo) Close(ctx context.Context, slug string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE seasons SET status = 'closed' WHERE slug = ?", slug)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Activate promotes the season named by slug to active inside a single
// transaction, demoting every other active season to draft. Row locks on
// the target and on all currently active rows serialize concurrent
// activations: the second caller blocks until the first commits, then
// observes the updated state. Activating an already active season is a
// no-op that still reports success.
//
// ErrSeasonNotFound and ErrSeasonClosed report the two expected abort
// paths. Any other failure rolls the transaction back and is returned
// wrapped so the caller keeps the underlying detail.
func (r *SeasonRepo) Activate(ctx context.Context, slug string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin activate: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var (
		targetID uint64
		status   string
	)
	err = tx.QueryRowContext(ctx,
		"SELECT id, status FROM seasons WHERE slug = ? FOR UPDATE",
		slug).Scan(&targetID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSeasonNotFound
	}
	if err != nil {
		return fmt.Errorf("lock target season: %w", err)
	}
	if status == model.SeasonStatusClosed {
		return ErrSeasonClosed
	}

	// Lock every active row, not just the expected single one, so that
	// accidental duplicates are demoted under the same lock and a
	// concurrent activation queues up here.
	active, err := tx.QueryContext(ctx,
		"SELECT id FROM seasons WHERE status = 'active' FOR UPDATE")
	if err != nil {
		return fmt.Errorf("lock active seasons: %w", err)
	}
	for active.Next() {
		var id uint64
		if err := active.Scan(&id); err != nil {
			active.Close()
			return fmt.Errorf("scan active season: %w", err)
		}
	}
	if err := active.Err(); err != nil {
		return fmt.Errorf("iterate active seasons: %w", err)
	}

	// Demotion goes to draft, never to closed. Closing remains a separate
	// explicit admin action.
	if _, err := tx.ExecContext(ctx,
		"UPDATE seasons SET status = 'draft' WHERE status = 'active' AND id <> ?",
		targetID); err != nil {
		return fmt.Errorf("demote active season: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE seasons SET status = 'active' WHERE id = ?",
		targetID); err != nil {
		return fmt.Errorf("promote season: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit activate: %w", err)
	}
	committed = true
	return nil
}
