package service

import (
	"context"
	"testing"
	"time"

	"github.com/eloboard/elo-services/internal/ledgersvc/config"
	"github.com/eloboard/elo-services/internal/ledgersvc/models"
	"github.com/eloboard/elo-services/internal/ledgersvc/store/memory"
	"github.com/stretchr/testify/suite"
)

type MatchSuite struct {
	suite.Suite
	store  *memory.Store
	roster *RosterService
	match  *MatchService
	ctx    context.Context
}

func TestMatchSuite(t *testing.T) {
	suite.Run(t, new(MatchSuite))
}

func (s *MatchSuite) SetupTest() {
	s.store = memory.New()
	s.roster = NewRosterService(s.store, models.DefaultRating)
	s.match = NewMatchService(s.store, config.PolicySkip)
	s.ctx = context.Background()
}

func (s *MatchSuite) setupChess(players ...string) {
	_, err := s.roster.CreateGameType(s.ctx, 1, "Chess", 2, 1, false)
	s.Require().NoError(err)
	for _, name := range players {
		_, err := s.roster.CreatePlayer(s.ctx, 1, name)
		s.Require().NoError(err)
	}
}

func (s *MatchSuite) TestRecordTwoPlayerMatch() {
	s.setupChess("Alice", "Bob")

	ts := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	rec, err := s.match.Record(s.ctx, 1, models.MatchSubmission{
		GameName:   "Chess",
		Teams:      [][]string{{"Alice"}, {"Bob"}},
		TeamScores: []int{1, 0},
		EloDeltas:  [][]int{{16}, {-16}},
		Timestamp:  ts,
	})
	s.Require().NoError(err)
	s.Require().Len(rec.Results, 2)

	s.Equal("Alice", rec.Results[0].PlayerName)
	s.Equal(1416, rec.Results[0].Elo)
	s.Equal("['Alice'] beat [['Bob']] at Chess", rec.Results[0].HistText)

	s.Equal("Bob", rec.Results[1].PlayerName)
	s.Equal(1384, rec.Results[1].Elo)
	s.Equal("['Bob'] lost to [['Alice']] at Chess", rec.Results[1].HistText)

	entries, err := s.store.ListHistory(s.ctx, 1, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(ts, entries[0].RecordedAt)
}

func (s *MatchSuite) TestRecordTie() {
	s.setupChess("Alice", "Bob")

	rec, err := s.match.Record(s.ctx, 1, models.MatchSubmission{
		GameName:   "Chess",
		Teams:      [][]string{{"Alice"}, {"Bob"}},
		TeamScores: []int{5, 5},
		EloDeltas:  [][]int{{0}, {0}},
	})
	s.Require().NoError(err)
	s.Equal("['Alice'] tied [['Bob']] at Chess", rec.Results[0].HistText)
	s.Equal(1400, rec.Results[0].Elo)
}

func (s *MatchSuite) TestRecordUnknownGame() {
	s.setupChess("Alice", "Bob")

	_, err := s.match.Record(s.ctx, 1, models.MatchSubmission{
		GameName:   "Checkers",
		Teams:      [][]string{{"Alice"}, {"Bob"}},
		TeamScores: []int{1, 0},
		EloDeltas:  [][]int{{16}, {-16}},
	})
	s.ErrorIs(err, models.ErrGameNotFound)
}

func (s *MatchSuite) TestSkipPolicyIgnoresUnknownPlayers() {
	s.setupChess("Alice")

	rec, err := s.match.Record(s.ctx, 1, models.MatchSubmission{
		GameName:   "Chess",
		Teams:      [][]string{{"Alice"}, {"Nobody"}},
		TeamScores: []int{1, 0},
		EloDeltas:  [][]int{{16}, {-16}},
	})
	s.Require().NoError(err)
	s.Require().Len(rec.Results, 1)
	s.Equal("Alice", rec.Results[0].PlayerName)
	s.Equal(1416, rec.Results[0].Elo)

	// the unknown player produced no history entry
	entries, err := s.store.ListHistory(s.ctx, 1, 0)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *MatchSuite) TestRejectPolicyFailsWholeSubmission() {
	s.setupChess("Alice")
	strict := NewMatchService(s.store, config.PolicyReject)

	_, err := strict.Record(s.ctx, 1, models.MatchSubmission{
		GameName:   "Chess",
		Teams:      [][]string{{"Alice"}, {"Nobody"}},
		TeamScores: []int{1, 0},
		EloDeltas:  [][]int{{16}, {-16}},
	})

	var verr *models.ValidationError
	s.Require().ErrorAs(err, &verr)

	// nothing was written
	alice, err := s.store.GetPlayerByName(s.ctx, 1, "Alice")
	s.Require().NoError(err)
	elo, err := s.store.GetRating(s.ctx, 1, alice.PlayerId, 1)
	s.Require().NoError(err)
	s.Equal(1400, elo)

	entries, err := s.store.ListHistory(s.ctx, 1, 0)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *MatchSuite) TestRecordValidatesShapeBeforeWriting() {
	s.setupChess("Alice", "Bob")

	var verr *models.ValidationError
	_, err := s.match.Record(s.ctx, 1, models.MatchSubmission{
		GameName:   "Chess",
		Teams:      [][]string{{"Alice"}, {"Bob"}},
		TeamScores: []int{1},
		EloDeltas:  [][]int{{16}, {-16}},
	})
	s.Require().ErrorAs(err, &verr)

	entries, err := s.store.ListHistory(s.ctx, 1, 0)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *MatchSuite) TestTeamMatchHistoryAndDeltas() {
	_, err := s.roster.CreateGameType(s.ctx, 1, "Foosball", 4, 2, false)
	s.Require().NoError(err)
	for _, name := range []string{"Alice", "Bob", "Carol", "Dave"} {
		_, err := s.roster.CreatePlayer(s.ctx, 1, name)
		s.Require().NoError(err)
	}

	rec, err := s.match.Record(s.ctx, 1, models.MatchSubmission{
		GameName:   "Foosball",
		Teams:      [][]string{{"Alice", "Bob"}, {"Carol", "Dave"}},
		TeamScores: []int{0, 1},
		EloDeltas:  [][]int{{-10, -12}, {11, 9}},
	})
	s.Require().NoError(err)
	s.Require().Len(rec.Results, 4)

	s.Equal("['Alice', 'Bob'] lost to [['Carol', 'Dave']] at Foosball", rec.Results[0].HistText)
	s.Equal(1390, rec.Results[0].Elo)
	s.Equal(1388, rec.Results[1].Elo)
	s.Equal("['Carol', 'Dave'] beat [['Alice', 'Bob']] at Foosball", rec.Results[2].HistText)
	s.Equal(1411, rec.Results[2].Elo)
	s.Equal(1409, rec.Results[3].Elo)
}

func (s *MatchSuite) TestSetRatingOverridesWithoutHistory() {
	s.setupChess("Bob")

	s.Require().NoError(s.match.SetRating(s.ctx, 1, "Bob", "Chess", 1500))

	bob, err := s.store.GetPlayerByName(s.ctx, 1, "Bob")
	s.Require().NoError(err)
	elo, err := s.store.GetRating(s.ctx, 1, bob.PlayerId, 1)
	s.Require().NoError(err)
	s.Equal(1500, elo)

	entries, err := s.store.ListHistory(s.ctx, 1, 0)
	s.Require().NoError(err)
	s.Empty(entries, "direct overrides do not touch history")
}

func (s *MatchSuite) TestSetRatingNotFoundErrors() {
	s.setupChess("Bob")

	s.ErrorIs(s.match.SetRating(s.ctx, 1, "Bob", "Checkers", 1500), models.ErrGameNotFound)
	s.ErrorIs(s.match.SetRating(s.ctx, 1, "Ghost", "Chess", 1500), models.ErrPlayerNotFound)
}
