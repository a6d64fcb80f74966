package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/eloboard/elo-services/internal/ledgersvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// LedgerStore is the postgres implementation of Ledger.
type LedgerStore struct {
	db *pgxpool.Pool
}

func NewLedgerStore(db *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{db: db}
}

var _ Ledger = (*LedgerStore)(nil)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (s *LedgerStore) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	query := `
        INSERT INTO users (username, password_hash)
        VALUES ($1, $2)
        RETURNING user_id, created_at;
    `

	u := &models.User{Username: username, PasswordHash: passwordHash}
	err := s.db.QueryRow(ctx, query, username, passwordHash).Scan(&u.UserId, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateUser
		}
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	return u, nil
}

func (s *LedgerStore) GetUserByName(ctx context.Context, username string) (*models.User, error) {
	row := s.db.QueryRow(ctx, `
        SELECT user_id, username, password_hash, created_at
        FROM users
        WHERE username = $1
    `, username)

	u := &models.User{}
	err := row.Scan(
		&u.UserId,
		&u.Username,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// nextID bumps the persisted per-owner counter for kind ("player" or
// "game") inside tx and returns the freshly allocated id. Running it
// in the same transaction as the insert is what makes concurrent
// creations for one owner safe.
func (s *LedgerStore) nextID(ctx context.Context, tx pgx.Tx, userId int64, kind string) (int64, error) {
	query := `
        INSERT INTO counters (user_id, kind, next_id)
        VALUES ($1, $2, 1)
        ON CONFLICT (user_id, kind)
        DO UPDATE SET next_id = counters.next_id + 1
        RETURNING next_id;
    `

	var id int64
	if err := tx.QueryRow(ctx, query, userId, kind).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", kind, err)
	}

	return id, nil
}
