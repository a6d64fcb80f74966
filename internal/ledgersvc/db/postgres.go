package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var DB *pgxpool.Pool

// Connect initializes the connection pool
func Connect(dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	// Try pinging to make sure it's valid
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	DB = pool

	return pool, nil
}

// ClosePool is for graceful shutdown
func ClosePool() {
	if DB != nil {
		DB.Close()
	}
}

// Migrate creates the ledger tables if they do not exist yet. The
// unique constraints back the duplicate-name checks and the counters
// table is the persisted id high-water mark, so concurrent creations
// for one owner cannot hand out the same id.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id        BIGSERIAL PRIMARY KEY,
			username       TEXT NOT NULL UNIQUE,
			password_hash  TEXT NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS players (
			user_id      BIGINT NOT NULL,
			player_id    BIGINT NOT NULL,
			player_name  TEXT NOT NULL,
			PRIMARY KEY (user_id, player_id),
			UNIQUE (user_id, player_name)
		)`,
		`CREATE TABLE IF NOT EXISTS games (
			user_id             BIGINT NOT NULL,
			game_id             BIGINT NOT NULL,
			game_name           TEXT NOT NULL,
			num_players         INT NOT NULL,
			team_size           INT NOT NULL,
			half_points_allowed BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (user_id, game_id),
			UNIQUE (user_id, game_name)
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			user_id    BIGINT NOT NULL,
			player_id  BIGINT NOT NULL,
			game_id    BIGINT NOT NULL,
			elo        INT NOT NULL,
			PRIMARY KEY (user_id, player_id, game_id)
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			hist_id      BIGSERIAL PRIMARY KEY,
			user_id      BIGINT NOT NULL,
			player_id    BIGINT NOT NULL,
			game_id      BIGINT NOT NULL,
			hist_text    TEXT NOT NULL,
			recorded_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS history_owner_idx ON history (user_id, player_id)`,
		`CREATE TABLE IF NOT EXISTS counters (
			user_id  BIGINT NOT NULL,
			kind     TEXT NOT NULL,
			next_id  BIGINT NOT NULL,
			PRIMARY KEY (user_id, kind)
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
