package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/eloboard/elo-services/internal/ledgersvc/models"
	"github.com/jackc/pgx/v5"
)

func (s *LedgerStore) GetPlayerByName(ctx context.Context, userId int64, name string) (*models.Player, error) {
	row := s.db.QueryRow(ctx, `
        SELECT user_id, player_id, player_name
        FROM players
        WHERE user_id = $1 AND player_name = $2
    `, userId, name)

	p := &models.Player{}
	err := row.Scan(&p.UserId, &p.PlayerId, &p.PlayerName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return p, nil
}

func (s *LedgerStore) GetGameTypeByName(ctx context.Context, userId int64, name string) (*models.GameType, error) {
	row := s.db.QueryRow(ctx, `
        SELECT user_id, game_id, game_name, num_players, team_size, half_points_allowed
        FROM games
        WHERE user_id = $1 AND game_name = $2
    `, userId, name)

	gt := &models.GameType{}
	err := row.Scan(
		&gt.UserId,
		&gt.GameId,
		&gt.GameName,
		&gt.NumPlayers,
		&gt.TeamSize,
		&gt.HalfPointsAllowed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get gametype: %w", err)
	}

	return gt, nil
}

func (s *LedgerStore) ListPlayers(ctx context.Context, userId int64) ([]models.Player, error) {
	rows, err := s.db.Query(ctx, `
        SELECT user_id, player_id, player_name
        FROM players
        WHERE user_id = $1
    `, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0, 8)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.UserId, &p.PlayerId, &p.PlayerName); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}

	return players, rows.Err()
}

func (s *LedgerStore) ListGameTypes(ctx context.Context, userId int64) ([]models.GameType, error) {
	rows, err := s.db.Query(ctx, `
        SELECT user_id, game_id, game_name, num_players, team_size, half_points_allowed
        FROM games
        WHERE user_id = $1
    `, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to list gametypes: %w", err)
	}
	defer rows.Close()

	games := make([]models.GameType, 0, 8)
	for rows.Next() {
		var gt models.GameType
		err := rows.Scan(
			&gt.UserId,
			&gt.GameId,
			&gt.GameName,
			&gt.NumPlayers,
			&gt.TeamSize,
			&gt.HalfPointsAllowed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gametype: %w", err)
		}
		games = append(games, gt)
	}

	return games, rows.Err()
}

func (s *LedgerStore) ListHistory(ctx context.Context, userId int64, playerId int64) ([]models.HistoryEntry, error) {
	query := `
        SELECT hist_id, user_id, player_id, game_id, hist_text, recorded_at
        FROM history
        WHERE user_id = @user_id
          AND (@player_id = 0 OR player_id = @player_id)
        ORDER BY hist_id DESC
    `

	rows, err := s.db.Query(ctx, query, pgx.NamedArgs{
		"user_id":   userId,
		"player_id": playerId,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	entries := make([]models.HistoryEntry, 0, 16)
	for rows.Next() {
		var h models.HistoryEntry
		err := rows.Scan(
			&h.HistId,
			&h.UserId,
			&h.PlayerId,
			&h.GameId,
			&h.HistText,
			&h.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, h)
	}

	return entries, rows.Err()
}
