package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/eloboard/elo-services/internal/ledgersvc/models"
	"github.com/jackc/pgx/v5"
)

func (s *LedgerStore) GetRating(ctx context.Context, userId, playerId, gameId int64) (int, error) {
	var elo int
	err := s.db.QueryRow(ctx, `
        SELECT elo FROM ratings
        WHERE user_id = $1 AND player_id = $2 AND game_id = $3
    `, userId, playerId, gameId).Scan(&elo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, models.ErrRatingRowMissing
		}
		return 0, fmt.Errorf("failed to get rating: %w", err)
	}

	return elo, nil
}

func (s *LedgerStore) SetRating(ctx context.Context, userId, playerId, gameId int64, elo int) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE ratings SET elo = $4
        WHERE user_id = $1 AND player_id = $2 AND game_id = $3
    `, userId, playerId, gameId, elo)
	if err != nil {
		return fmt.Errorf("failed to set rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrRatingRowMissing
	}

	return nil
}

// ApplyMatch runs the whole submission as one transaction: for every
// update it appends the history line and adds the delta to the stored
// rating. Any failure rolls the whole batch back, so a submission can
// never land half-applied.
func (s *LedgerStore) ApplyMatch(ctx context.Context, userId, gameId int64, updates []MatchUpdate) ([]int, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	elos := make([]int, 0, len(updates))
	for _, u := range updates {
		_, err = tx.Exec(ctx, `
            INSERT INTO history (user_id, player_id, game_id, hist_text, recorded_at)
            VALUES ($1, $2, $3, $4, $5)
        `, userId, u.PlayerId, gameId, u.HistText, u.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to append history: %w", err)
		}

		var elo int
		err = tx.QueryRow(ctx, `
            UPDATE ratings SET elo = elo + $4
            WHERE user_id = $1 AND player_id = $2 AND game_id = $3
            RETURNING elo
        `, userId, u.PlayerId, gameId, u.Delta).Scan(&elo)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, models.ErrRatingRowMissing
			}
			return nil, fmt.Errorf("failed to update rating: %w", err)
		}
		elos = append(elos, elo)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit match: %w", err)
	}

	return elos, nil
}
