package memory

import (
	"context"
	"sync"
	"time"

	"github.com/eloboard/elo-services/internal/ledgersvc/models"
	"github.com/eloboard/elo-services/internal/ledgersvc/store"
)

// Store is an in-memory implementation of the ledger store. It exists
// so the services can be exercised without a postgres instance; every
// method is atomic under one mutex, matching the transactional
// guarantees of the real store.
type Store struct {
	mu sync.Mutex

	users      map[string]*models.User
	nextUserId int64

	players map[int64]map[int64]*models.Player // userId -> playerId
	games   map[int64]map[int64]*models.GameType
	ratings map[ratingKey]int

	history    []models.HistoryEntry
	nextHistId int64

	counters map[counterKey]int64
}

type ratingKey struct {
	userId   int64
	playerId int64
	gameId   int64
}

type counterKey struct {
	userId int64
	kind   string
}

// New creates an empty in-memory ledger.
func New() *Store {
	return &Store{
		users:    make(map[string]*models.User),
		players:  make(map[int64]map[int64]*models.Player),
		games:    make(map[int64]map[int64]*models.GameType),
		ratings:  make(map[ratingKey]int),
		counters: make(map[counterKey]int64),
	}
}

// Ensure Store implements the interface
var _ store.Ledger = (*Store)(nil)

func (s *Store) nextID(userId int64, kind string) int64 {
	key := counterKey{userId: userId, kind: kind}
	s.counters[key]++
	return s.counters[key]
}

// Users

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return nil, models.ErrDuplicateUser
	}

	s.nextUserId++
	u := &models.User{
		UserId:       s.nextUserId,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[username] = u

	copied := *u
	return &copied, nil
}

func (s *Store) GetUserByName(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil, models.ErrUserNotFound
	}

	copied := *u
	return &copied, nil
}

// Roster

func (s *Store) CreatePlayer(ctx context.Context, userId int64, name string, defaultRating int) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.players[userId] {
		if p.PlayerName == name {
			return nil, models.ErrDuplicateName
		}
	}

	playerId := s.nextID(userId, "player")
	p := &models.Player{UserId: userId, PlayerId: playerId, PlayerName: name}
	if s.players[userId] == nil {
		s.players[userId] = make(map[int64]*models.Player)
	}
	s.players[userId][playerId] = p

	for gameId := range s.games[userId] {
		s.ratings[ratingKey{userId, playerId, gameId}] = defaultRating
	}

	copied := *p
	return &copied, nil
}

func (s *Store) DeletePlayer(ctx context.Context, userId int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var playerId int64 = -1
	for id, p := range s.players[userId] {
		if p.PlayerName == name {
			playerId = id
			break
		}
	}
	if playerId == -1 {
		return models.ErrPlayerNotFound
	}

	delete(s.players[userId], playerId)
	for key := range s.ratings {
		if key.userId == userId && key.playerId == playerId {
			delete(s.ratings, key)
		}
	}

	return nil
}

func (s *Store) CreateGameType(ctx context.Context, gt models.GameType, defaultRating int) (*models.GameType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.games[gt.UserId] {
		if g.GameName == gt.GameName {
			return nil, models.ErrDuplicateName
		}
	}

	gt.GameId = s.nextID(gt.UserId, "game")
	if s.games[gt.UserId] == nil {
		s.games[gt.UserId] = make(map[int64]*models.GameType)
	}
	stored := gt
	s.games[gt.UserId][gt.GameId] = &stored

	for playerId := range s.players[gt.UserId] {
		s.ratings[ratingKey{gt.UserId, playerId, gt.GameId}] = defaultRating
	}

	copied := gt
	return &copied, nil
}

func (s *Store) DeleteGameType(ctx context.Context, userId int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var gameId int64 = -1
	for id, g := range s.games[userId] {
		if g.GameName == name {
			gameId = id
			break
		}
	}
	if gameId == -1 {
		return models.ErrGameNotFound
	}

	delete(s.games[userId], gameId)
	for key := range s.ratings {
		if key.userId == userId && key.gameId == gameId {
			delete(s.ratings, key)
		}
	}

	return nil
}

// Lookups and projections

func (s *Store) GetPlayerByName(ctx context.Context, userId int64, name string) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.players[userId] {
		if p.PlayerName == name {
			copied := *p
			return &copied, nil
		}
	}

	return nil, models.ErrPlayerNotFound
}

func (s *Store) GetGameTypeByName(ctx context.Context, userId int64, name string) (*models.GameType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.games[userId] {
		if g.GameName == name {
			copied := *g
			return &copied, nil
		}
	}

	return nil, models.ErrGameNotFound
}

func (s *Store) ListPlayers(ctx context.Context, userId int64) ([]models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := make([]models.Player, 0, len(s.players[userId]))
	for _, p := range s.players[userId] {
		players = append(players, *p)
	}

	return players, nil
}

func (s *Store) ListGameTypes(ctx context.Context, userId int64) ([]models.GameType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	games := make([]models.GameType, 0, len(s.games[userId]))
	for _, g := range s.games[userId] {
		games = append(games, *g)
	}

	return games, nil
}

func (s *Store) ListHistory(ctx context.Context, userId int64, playerId int64) ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.HistoryEntry, 0, 16)
	// newest first
	for i := len(s.history) - 1; i >= 0; i-- {
		h := s.history[i]
		if h.UserId != userId {
			continue
		}
		if playerId != 0 && h.PlayerId != playerId {
			continue
		}
		entries = append(entries, h)
	}

	return entries, nil
}

// Ratings

func (s *Store) GetRating(ctx context.Context, userId, playerId, gameId int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elo, ok := s.ratings[ratingKey{userId, playerId, gameId}]
	if !ok {
		return 0, models.ErrRatingRowMissing
	}

	return elo, nil
}

func (s *Store) SetRating(ctx context.Context, userId, playerId, gameId int64, elo int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ratingKey{userId, playerId, gameId}
	if _, ok := s.ratings[key]; !ok {
		return models.ErrRatingRowMissing
	}
	s.ratings[key] = elo

	return nil
}

func (s *Store) ApplyMatch(ctx context.Context, userId, gameId int64, updates []store.MatchUpdate) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Verify every rating row first so the batch applies all-or-nothing.
	for _, u := range updates {
		if _, ok := s.ratings[ratingKey{userId, u.PlayerId, gameId}]; !ok {
			return nil, models.ErrRatingRowMissing
		}
	}

	elos := make([]int, 0, len(updates))
	for _, u := range updates {
		s.nextHistId++
		s.history = append(s.history, models.HistoryEntry{
			HistId:     s.nextHistId,
			UserId:     userId,
			PlayerId:   u.PlayerId,
			GameId:     gameId,
			HistText:   u.HistText,
			RecordedAt: u.RecordedAt,
		})

		key := ratingKey{userId, u.PlayerId, gameId}
		s.ratings[key] += u.Delta
		elos = append(elos, s.ratings[key])
	}

	return elos, nil
}

// RatingCount reports how many rating rows an owner has. Test helper
// for checking the player x gametype cross-join invariant.
func (s *Store) RatingCount(userId int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key := range s.ratings {
		if key.userId == userId {
			n++
		}
	}

	return n
}
