package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

var ErrDuplicateRun = errors.New("run label already taken")

// Run is a named batch of agent games; game records hang off it.
type Run struct {
	RunId     int64
	Label     string
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) CreateRun(ctx context.Context, label string) (*Run, error) {
	rows, _ := q.db.Query(
		ctx,
		"INSERT INTO run (label) VALUES ($1) RETURNING *",
		label,
	)
	run, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Run])
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return nil, ErrDuplicateRun
	}
	return run, err
}

func (q *Queries) FetchRun(ctx context.Context, label string) (*Run, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM run WHERE label = $1", label,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Run])
}
