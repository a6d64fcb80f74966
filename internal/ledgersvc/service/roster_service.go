package service

import (
	"context"

	"github.com/eloboard/elo-services/internal/ledgersvc/models"
	"github.com/eloboard/elo-services/internal/ledgersvc/store"
	log "github.com/sirupsen/logrus"
)

// RosterService manages the owner-scoped players and gametypes and
// keeps the rating cross-join complete: every create backfills a
// default rating for the other axis, every delete cascades its
// rating rows.
type RosterService struct {
	store         store.Ledger
	defaultRating int
}

func NewRosterService(store store.Ledger, defaultRating int) *RosterService {
	return &RosterService{
		store:         store,
		defaultRating: defaultRating,
	}
}

func (s *RosterService) CreatePlayer(ctx context.Context, userId int64, name string) (*models.Player, error) {
	if name == "" {
		return nil, models.NewValidationError("player name is required")
	}

	p, err := s.store.CreatePlayer(ctx, userId, name, s.defaultRating)
	if err != nil {
		return nil, err
	}

	log.Infof("player %s (id %d) created for user %d", p.PlayerName, p.PlayerId, userId)
	return p, nil
}

func (s *RosterService) DeletePlayer(ctx context.Context, userId int64, name string) error {
	return s.store.DeletePlayer(ctx, userId, name)
}

func (s *RosterService) CreateGameType(ctx context.Context, userId int64, name string, numPlayers, teamSize int, halfPointsAllowed bool) (*models.GameType, error) {
	if name == "" {
		return nil, models.NewValidationError("gametype name is required")
	}
	if numPlayers < 2 {
		return nil, models.NewValidationError("a gametype needs at least 2 players, got %d", numPlayers)
	}
	if teamSize < 1 {
		return nil, models.NewValidationError("team size must be at least 1, got %d", teamSize)
	}

	gt, err := s.store.CreateGameType(ctx, models.GameType{
		UserId:            userId,
		GameName:          name,
		NumPlayers:        numPlayers,
		TeamSize:          teamSize,
		HalfPointsAllowed: halfPointsAllowed,
	}, s.defaultRating)
	if err != nil {
		return nil, err
	}

	log.Infof("gametype %s (id %d) created for user %d", gt.GameName, gt.GameId, userId)
	return gt, nil
}

func (s *RosterService) DeleteGameType(ctx context.Context, userId int64, name string) error {
	return s.store.DeleteGameType(ctx, userId, name)
}
