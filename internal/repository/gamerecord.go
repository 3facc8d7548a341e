package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type GameRecord struct {
	GameRecordId int64
	RunId        int64
	Width        int
	Height       int
	MineCount    int
	Won          bool
	Moves        int
	SafeMoves    int
	RandomMoves  int
	PlaytimeMs   float64
	CreatedAt    pgtype.Timestamptz
}

type CreateGameRecordParams struct {
	RunId       int64
	Width       int
	Height      int
	MineCount   int
	Won         bool
	Moves       int
	SafeMoves   int
	RandomMoves int
	PlaytimeMs  float64
}

func (q *Queries) CreateGameRecord(
	ctx context.Context, params CreateGameRecordParams,
) (*GameRecord, error) {
	args := pgx.NamedArgs{
		"run_id":       params.RunId,
		"width":        params.Width,
		"height":       params.Height,
		"mine_count":   params.MineCount,
		"won":          params.Won,
		"moves":        params.Moves,
		"safe_moves":   params.SafeMoves,
		"random_moves": params.RandomMoves,
		"playtime_ms":  params.PlaytimeMs,
	}
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_record (
			run_id, width, height, mine_count, won,
			moves, safe_moves, random_moves, playtime_ms
		)
		VALUES (
			@run_id, @width, @height, @mine_count, @won,
			@moves, @safe_moves, @random_moves, @playtime_ms
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameRecord],
	)
}

type RunStats struct {
	Label     string  `json:"label"`
	Games     int64   `json:"games"`
	Wins      int64   `json:"wins"`
	WinRate   float64 `json:"win_rate"`
	MeanMoves float64 `json:"mean_moves"`
}

func (q *Queries) GetRunStats(ctx context.Context, label string) (*RunStats, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT
			label,
			count(*) games,
			count(*) FILTER (WHERE won) wins,
			count(*) FILTER (WHERE won)::float / count(*) win_rate,
			avg(moves) mean_moves
		FROM game_record
			JOIN run USING (run_id)
		WHERE label = $1
		GROUP BY label;`,
		label,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[RunStats])
}
