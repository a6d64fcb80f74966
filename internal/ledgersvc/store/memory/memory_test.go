package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/eloboard/elo-services/internal/ledgersvc/models"
	"github.com/eloboard/elo-services/internal/ledgersvc/store"
	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func (s *StoreSuite) newGame(userId int64, name string) models.GameType {
	return models.GameType{
		UserId:     userId,
		GameName:   name,
		NumPlayers: 2,
		TeamSize:   1,
	}
}

func (s *StoreSuite) TestCreatePlayerBackfillsRatings() {
	_, err := s.store.CreateGameType(s.ctx, s.newGame(1, "Chess"), 1400)
	s.Require().NoError(err)
	_, err = s.store.CreateGameType(s.ctx, s.newGame(1, "Darts"), 1400)
	s.Require().NoError(err)

	p, err := s.store.CreatePlayer(s.ctx, 1, "Alice", 1400)
	s.Require().NoError(err)

	s.Equal(2, s.store.RatingCount(1))

	elo, err := s.store.GetRating(s.ctx, 1, p.PlayerId, 1)
	s.Require().NoError(err)
	s.Equal(1400, elo)
}

func (s *StoreSuite) TestCreateGameTypeBackfillsRatings() {
	_, err := s.store.CreatePlayer(s.ctx, 1, "Alice", 1400)
	s.Require().NoError(err)
	_, err = s.store.CreatePlayer(s.ctx, 1, "Bob", 1400)
	s.Require().NoError(err)

	_, err = s.store.CreateGameType(s.ctx, s.newGame(1, "Chess"), 1400)
	s.Require().NoError(err)

	s.Equal(2, s.store.RatingCount(1))
}

// The rating rows for an owner are always exactly players x gametypes,
// through any sequence of creates and deletes.
func (s *StoreSuite) TestRatingCrossJoinInvariant() {
	for i := 0; i < 3; i++ {
		_, err := s.store.CreatePlayer(s.ctx, 1, fmt.Sprintf("p%d", i), 1400)
		s.Require().NoError(err)
	}
	for i := 0; i < 4; i++ {
		_, err := s.store.CreateGameType(s.ctx, s.newGame(1, fmt.Sprintf("g%d", i)), 1400)
		s.Require().NoError(err)
	}
	s.Equal(12, s.store.RatingCount(1))

	s.Require().NoError(s.store.DeletePlayer(s.ctx, 1, "p1"))
	s.Equal(8, s.store.RatingCount(1))

	s.Require().NoError(s.store.DeleteGameType(s.ctx, 1, "g0"))
	s.Equal(6, s.store.RatingCount(1))

	_, err := s.store.CreatePlayer(s.ctx, 1, "p9", 1400)
	s.Require().NoError(err)
	s.Equal(9, s.store.RatingCount(1))
}

func (s *StoreSuite) TestDuplicateNamesRejected() {
	_, err := s.store.CreatePlayer(s.ctx, 1, "Alice", 1400)
	s.Require().NoError(err)
	_, err = s.store.CreatePlayer(s.ctx, 1, "Alice", 1400)
	s.ErrorIs(err, models.ErrDuplicateName)

	_, err = s.store.CreateGameType(s.ctx, s.newGame(1, "Chess"), 1400)
	s.Require().NoError(err)
	_, err = s.store.CreateGameType(s.ctx, s.newGame(1, "Chess"), 1400)
	s.ErrorIs(err, models.ErrDuplicateName)

	// same names under another owner are fine
	_, err = s.store.CreatePlayer(s.ctx, 2, "Alice", 1400)
	s.NoError(err)
}

func (s *StoreSuite) TestIdsAreMonotonicPerOwner() {
	for i := 0; i < 5; i++ {
		p, err := s.store.CreatePlayer(s.ctx, 1, fmt.Sprintf("p%d", i), 1400)
		s.Require().NoError(err)
		s.Equal(int64(i+1), p.PlayerId)
	}

	// deleting the max id does not free it for reuse
	s.Require().NoError(s.store.DeletePlayer(s.ctx, 1, "p4"))
	p, err := s.store.CreatePlayer(s.ctx, 1, "p5", 1400)
	s.Require().NoError(err)
	s.Equal(int64(6), p.PlayerId)

	// other owners allocate independently
	p, err = s.store.CreatePlayer(s.ctx, 2, "solo", 1400)
	s.Require().NoError(err)
	s.Equal(int64(1), p.PlayerId)
}

func (s *StoreSuite) TestConcurrentCreationsAllocateUniqueIds() {
	const n = 20

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.store.CreatePlayer(s.ctx, 1, fmt.Sprintf("p%d", i), 1400)
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	players, err := s.store.ListPlayers(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(players, n)

	seen := make(map[int64]bool, n)
	for _, p := range players {
		s.False(seen[p.PlayerId], "duplicate id %d", p.PlayerId)
		s.GreaterOrEqual(p.PlayerId, int64(1))
		s.LessOrEqual(p.PlayerId, int64(n))
		seen[p.PlayerId] = true
	}
}

func (s *StoreSuite) TestApplyMatchIsAtomic() {
	_, err := s.store.CreateGameType(s.ctx, s.newGame(1, "Chess"), 1400)
	s.Require().NoError(err)
	alice, err := s.store.CreatePlayer(s.ctx, 1, "Alice", 1400)
	s.Require().NoError(err)

	now := time.Now().UTC()
	updates := []store.MatchUpdate{
		{PlayerId: alice.PlayerId, Delta: 16, HistText: "x", RecordedAt: now},
		{PlayerId: 999, Delta: -16, HistText: "y", RecordedAt: now}, // no rating row
	}

	_, err = s.store.ApplyMatch(s.ctx, 1, 1, updates)
	s.ErrorIs(err, models.ErrRatingRowMissing)

	// nothing from the failed batch landed
	elo, err := s.store.GetRating(s.ctx, 1, alice.PlayerId, 1)
	s.Require().NoError(err)
	s.Equal(1400, elo)

	entries, err := s.store.ListHistory(s.ctx, 1, 0)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *StoreSuite) TestApplyMatchUpdatesRatingsAndHistory() {
	_, err := s.store.CreateGameType(s.ctx, s.newGame(1, "Chess"), 1400)
	s.Require().NoError(err)
	alice, err := s.store.CreatePlayer(s.ctx, 1, "Alice", 1400)
	s.Require().NoError(err)
	bob, err := s.store.CreatePlayer(s.ctx, 1, "Bob", 1400)
	s.Require().NoError(err)

	now := time.Now().UTC()
	elos, err := s.store.ApplyMatch(s.ctx, 1, 1, []store.MatchUpdate{
		{PlayerId: alice.PlayerId, Delta: 16, HistText: "a", RecordedAt: now},
		{PlayerId: bob.PlayerId, Delta: -16, HistText: "b", RecordedAt: now},
	})
	s.Require().NoError(err)
	s.Equal([]int{1416, 1384}, elos)

	entries, err := s.store.ListHistory(s.ctx, 1, alice.PlayerId)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("a", entries[0].HistText)
}

func (s *StoreSuite) TestHistorySurvivesDeletion() {
	_, err := s.store.CreateGameType(s.ctx, s.newGame(1, "Chess"), 1400)
	s.Require().NoError(err)
	alice, err := s.store.CreatePlayer(s.ctx, 1, "Alice", 1400)
	s.Require().NoError(err)

	_, err = s.store.ApplyMatch(s.ctx, 1, 1, []store.MatchUpdate{
		{PlayerId: alice.PlayerId, Delta: 16, HistText: "a", RecordedAt: time.Now()},
	})
	s.Require().NoError(err)

	s.Require().NoError(s.store.DeletePlayer(s.ctx, 1, "Alice"))

	_, err = s.store.GetRating(s.ctx, 1, alice.PlayerId, 1)
	s.ErrorIs(err, models.ErrRatingRowMissing)

	entries, err := s.store.ListHistory(s.ctx, 1, alice.PlayerId)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *StoreSuite) TestListHistoryNewestFirstAndScoped() {
	_, err := s.store.CreateGameType(s.ctx, s.newGame(1, "Chess"), 1400)
	s.Require().NoError(err)
	alice, err := s.store.CreatePlayer(s.ctx, 1, "Alice", 1400)
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		_, err := s.store.ApplyMatch(s.ctx, 1, 1, []store.MatchUpdate{
			{PlayerId: alice.PlayerId, Delta: 1, HistText: fmt.Sprintf("h%d", i), RecordedAt: time.Now()},
		})
		s.Require().NoError(err)
	}

	entries, err := s.store.ListHistory(s.ctx, 1, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("h2", entries[0].HistText)
	s.Equal("h0", entries[2].HistText)

	// other owners see nothing
	entries, err = s.store.ListHistory(s.ctx, 2, 0)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *StoreSuite) TestSetRating() {
	_, err := s.store.CreateGameType(s.ctx, s.newGame(1, "Chess"), 1400)
	s.Require().NoError(err)
	bob, err := s.store.CreatePlayer(s.ctx, 1, "Bob", 1400)
	s.Require().NoError(err)

	s.Require().NoError(s.store.SetRating(s.ctx, 1, bob.PlayerId, 1, 1500))

	elo, err := s.store.GetRating(s.ctx, 1, bob.PlayerId, 1)
	s.Require().NoError(err)
	s.Equal(1500, elo)

	s.ErrorIs(s.store.SetRating(s.ctx, 1, 999, 1, 1500), models.ErrRatingRowMissing)
}

func (s *StoreSuite) TestUsers() {
	u, err := s.store.CreateUser(s.ctx, "owner", "hash")
	s.Require().NoError(err)
	s.Equal(int64(1), u.UserId)

	_, err = s.store.CreateUser(s.ctx, "owner", "hash2")
	s.ErrorIs(err, models.ErrDuplicateUser)

	got, err := s.store.GetUserByName(s.ctx, "owner")
	s.Require().NoError(err)
	s.Equal("hash", got.PasswordHash)

	_, err = s.store.GetUserByName(s.ctx, "nobody")
	s.ErrorIs(err, models.ErrUserNotFound)
}
