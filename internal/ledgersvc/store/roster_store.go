package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/eloboard/elo-services/internal/ledgersvc/models"
	"github.com/jackc/pgx/v5"
)

func (s *LedgerStore) CreatePlayer(ctx context.Context, userId int64, name string, defaultRating int) (*models.Player, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	playerId, err := s.nextID(ctx, tx, userId, "player")
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO players (user_id, player_id, player_name)
        VALUES ($1, $2, $3)
    `, userId, playerId, name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}

	// Backfill a default rating for every gametype this owner has, so
	// the player x gametype cross-join stays complete.
	_, err = tx.Exec(ctx, `
        INSERT INTO ratings (user_id, player_id, game_id, elo)
        SELECT user_id, $2, game_id, $3
        FROM games
        WHERE user_id = $1
    `, userId, playerId, defaultRating)
	if err != nil {
		return nil, fmt.Errorf("failed to backfill ratings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit player creation: %w", err)
	}

	return &models.Player{UserId: userId, PlayerId: playerId, PlayerName: name}, nil
}

func (s *LedgerStore) DeletePlayer(ctx context.Context, userId int64, name string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var playerId int64
	err = tx.QueryRow(ctx, `
        SELECT player_id FROM players
        WHERE user_id = $1 AND player_name = $2
    `, userId, name).Scan(&playerId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrPlayerNotFound
		}
		return fmt.Errorf("failed to look up player: %w", err)
	}

	_, err = tx.Exec(ctx, `
        DELETE FROM players WHERE user_id = $1 AND player_id = $2
    `, userId, playerId)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}

	// Ratings cascade; history rows stay, they are the audit trail.
	_, err = tx.Exec(ctx, `
        DELETE FROM ratings WHERE user_id = $1 AND player_id = $2
    `, userId, playerId)
	if err != nil {
		return fmt.Errorf("failed to delete ratings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit player deletion: %w", err)
	}

	return nil
}

func (s *LedgerStore) CreateGameType(ctx context.Context, gt models.GameType, defaultRating int) (*models.GameType, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	gameId, err := s.nextID(ctx, tx, gt.UserId, "game")
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO games (user_id, game_id, game_name, num_players, team_size, half_points_allowed)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, gt.UserId, gameId, gt.GameName, gt.NumPlayers, gt.TeamSize, gt.HalfPointsAllowed)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to insert gametype: %w", err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO ratings (user_id, player_id, game_id, elo)
        SELECT user_id, player_id, $2, $3
        FROM players
        WHERE user_id = $1
    `, gt.UserId, gameId, defaultRating)
	if err != nil {
		return nil, fmt.Errorf("failed to backfill ratings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit gametype creation: %w", err)
	}

	created := gt
	created.GameId = gameId
	return &created, nil
}

func (s *LedgerStore) DeleteGameType(ctx context.Context, userId int64, name string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var gameId int64
	err = tx.QueryRow(ctx, `
        SELECT game_id FROM games
        WHERE user_id = $1 AND game_name = $2
    `, userId, name).Scan(&gameId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrGameNotFound
		}
		return fmt.Errorf("failed to look up gametype: %w", err)
	}

	_, err = tx.Exec(ctx, `
        DELETE FROM games WHERE user_id = $1 AND game_id = $2
    `, userId, gameId)
	if err != nil {
		return fmt.Errorf("failed to delete gametype: %w", err)
	}

	_, err = tx.Exec(ctx, `
        DELETE FROM ratings WHERE user_id = $1 AND game_id = $2
    `, userId, gameId)
	if err != nil {
		return fmt.Errorf("failed to delete ratings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit gametype deletion: %w", err)
	}

	return nil
}
