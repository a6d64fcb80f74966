package service

import (
	"context"

	"github.com/eloboard/elo-services/internal/ledgersvc/models"
	"github.com/eloboard/elo-services/internal/ledgersvc/store"
)

// PlayerInfo is the read-only projection of one roster entry.
type PlayerInfo struct {
	PlayerId int64 `json:"player_id"`
}

// GameTypeInfo is the read-only projection of one gametype.
type GameTypeInfo struct {
	GameId            int64 `json:"game_id"`
	NumPlayers        int   `json:"num_players"`
	TeamSize          int   `json:"team_size"`
	HalfPointsAllowed bool  `json:"half_points_allowed"`
}

// QueryService serves read-only projections of an owner's roster,
// gametypes and history. No side effects.
type QueryService struct {
	store store.Ledger
}

func NewQueryService(store store.Ledger) *QueryService {
	return &QueryService{store: store}
}

func (s *QueryService) ListPlayers(ctx context.Context, userId int64) (map[string]PlayerInfo, error) {
	players, err := s.store.ListPlayers(ctx, userId)
	if err != nil {
		return nil, err
	}

	out := make(map[string]PlayerInfo, len(players))
	for _, p := range players {
		out[p.PlayerName] = PlayerInfo{PlayerId: p.PlayerId}
	}

	return out, nil
}

func (s *QueryService) ListGameTypes(ctx context.Context, userId int64) (map[string]GameTypeInfo, error) {
	games, err := s.store.ListGameTypes(ctx, userId)
	if err != nil {
		return nil, err
	}

	out := make(map[string]GameTypeInfo, len(games))
	for _, g := range games {
		out[g.GameName] = GameTypeInfo{
			GameId:            g.GameId,
			NumPlayers:        g.NumPlayers,
			TeamSize:          g.TeamSize,
			HalfPointsAllowed: g.HalfPointsAllowed,
		}
	}

	return out, nil
}

// ListHistory returns the owner's history entries, newest first,
// optionally narrowed to one player by name. History survives roster
// deletions, so the player filter resolves against live players only.
func (s *QueryService) ListHistory(ctx context.Context, userId int64, playerName string) ([]models.HistoryEntry, error) {
	var playerId int64
	if playerName != "" {
		p, err := s.store.GetPlayerByName(ctx, userId, playerName)
		if err != nil {
			return nil, err
		}
		playerId = p.PlayerId
	}

	return s.store.ListHistory(ctx, userId, playerId)
}
