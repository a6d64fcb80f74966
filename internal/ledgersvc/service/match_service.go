package service

import (
	"context"
	"errors"
	"time"

	"github.com/eloboard/elo-services/internal/ledgersvc/config"
	"github.com/eloboard/elo-services/internal/ledgersvc/models"
	"github.com/eloboard/elo-services/internal/ledgersvc/store"
	log "github.com/sirupsen/logrus"
)

// PlayerResult is what a recorded match did to one player.
type PlayerResult struct {
	PlayerName string `json:"player_name"`
	PlayerId   int64  `json:"player_id"`
	Delta      int    `json:"delta"`
	Elo        int    `json:"elo"`
	HistText   string `json:"hist_text"`
}

// RecordedMatch is the committed outcome of one submission.
type RecordedMatch struct {
	Game       models.GameType `json:"game"`
	Teams      [][]string      `json:"teams"`
	Results    []PlayerResult  `json:"results"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// MatchService validates match submissions and applies them to the
// ledger: one history line and one rating delta per named player, all
// committed as a single unit.
type MatchService struct {
	store  store.Ledger
	policy config.UnknownPlayerPolicy
}

func NewMatchService(store store.Ledger, policy config.UnknownPlayerPolicy) *MatchService {
	return &MatchService{
		store:  store,
		policy: policy,
	}
}

// Record applies one match submission for the owner. Unknown player
// names are skipped or fail the whole submission, depending on the
// configured policy. Nothing is written until every named player has
// been resolved and the whole batch commits together.
func (s *MatchService) Record(ctx context.Context, userId int64, sub models.MatchSubmission) (*RecordedMatch, error) {
	if verr := sub.Validate(); verr != nil {
		return nil, verr
	}

	gt, err := s.store.GetGameTypeByName(ctx, userId, sub.GameName)
	if err != nil {
		return nil, err
	}

	recordedAt := sub.Timestamp
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	updates := make([]store.MatchUpdate, 0, 4)
	results := make([]PlayerResult, 0, 4)

	for i, team := range sub.Teams {
		outcome := models.OutcomeFromScore(sub.TeamScores[i])
		histText := models.RenderHistory(team, outcome, sub.Opponents(i), gt.GameName)

		for j, name := range team {
			p, err := s.store.GetPlayerByName(ctx, userId, name)
			if err != nil {
				if errors.Is(err, models.ErrPlayerNotFound) {
					if s.policy == config.PolicyReject {
						return nil, models.NewValidationError("unknown player %q in team %d", name, i)
					}
					log.Warnf("user %d recorded a match with unknown player %q, skipping", userId, name)
					continue
				}
				return nil, err
			}

			updates = append(updates, store.MatchUpdate{
				PlayerId:   p.PlayerId,
				Delta:      sub.EloDeltas[i][j],
				HistText:   histText,
				RecordedAt: recordedAt,
			})
			results = append(results, PlayerResult{
				PlayerName: p.PlayerName,
				PlayerId:   p.PlayerId,
				Delta:      sub.EloDeltas[i][j],
				HistText:   histText,
			})
		}
	}

	if len(updates) > 0 {
		elos, err := s.store.ApplyMatch(ctx, userId, gt.GameId, updates)
		if err != nil {
			if errors.Is(err, models.ErrRatingRowMissing) {
				// Invariant breach: the roster manager should have
				// backfilled this row. Never patch it up mid-match.
				log.Errorf("BUG: rating row missing while recording match for user %d game %d", userId, gt.GameId)
			}
			return nil, err
		}
		for i := range results {
			results[i].Elo = elos[i]
		}
	}

	return &RecordedMatch{
		Game:       *gt,
		Teams:      sub.Teams,
		Results:    results,
		RecordedAt: recordedAt,
	}, nil
}

// SetRating overwrites one rating unconditionally. No delta, no
// history entry; this is the manual override, not a match result.
func (s *MatchService) SetRating(ctx context.Context, userId int64, playerName, gameName string, elo int) error {
	gt, err := s.store.GetGameTypeByName(ctx, userId, gameName)
	if err != nil {
		return err
	}

	p, err := s.store.GetPlayerByName(ctx, userId, playerName)
	if err != nil {
		return err
	}

	err = s.store.SetRating(ctx, userId, p.PlayerId, gt.GameId, elo)
	if errors.Is(err, models.ErrRatingRowMissing) {
		log.Errorf("BUG: rating row missing for user %d player %d game %d", userId, p.PlayerId, gt.GameId)
	}

	return err
}
