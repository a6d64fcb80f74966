package store

import (
	"context"
	"time"

	"github.com/eloboard/elo-services/internal/ledgersvc/models"
)

// MatchUpdate is one player's slice of a match submission: the history
// line to append and the delta to add to their rating. A batch of
// these is applied as a single atomic unit.
type MatchUpdate struct {
	PlayerId   int64
	Delta      int
	HistText   string
	RecordedAt time.Time
}

// Ledger is the entity repository for the rating ledger. Every
// mutating call is atomic: it either fully commits or leaves no trace.
// All reads and writes are scoped to one owner; ids are only ever
// meaningful within that owner's scope.
type Ledger interface {
	// Users
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetUserByName(ctx context.Context, username string) (*models.User, error)

	// Roster. Creating a player backfills a default rating for every
	// gametype of the owner and vice versa; deleting cascades into
	// ratings but never into history.
	CreatePlayer(ctx context.Context, userId int64, name string, defaultRating int) (*models.Player, error)
	DeletePlayer(ctx context.Context, userId int64, name string) error
	CreateGameType(ctx context.Context, gt models.GameType, defaultRating int) (*models.GameType, error)
	DeleteGameType(ctx context.Context, userId int64, name string) error

	// Lookups and projections
	GetPlayerByName(ctx context.Context, userId int64, name string) (*models.Player, error)
	GetGameTypeByName(ctx context.Context, userId int64, name string) (*models.GameType, error)
	ListPlayers(ctx context.Context, userId int64) ([]models.Player, error)
	ListGameTypes(ctx context.Context, userId int64) ([]models.GameType, error)
	// ListHistory returns the owner's history, newest first. A
	// non-zero playerId narrows it to that player.
	ListHistory(ctx context.Context, userId int64, playerId int64) ([]models.HistoryEntry, error)

	// Ratings
	GetRating(ctx context.Context, userId, playerId, gameId int64) (int, error)
	SetRating(ctx context.Context, userId, playerId, gameId int64, elo int) error

	// ApplyMatch appends every history line and adds every delta in
	// one transaction, returning the resulting elo per update in input
	// order. A missing rating row aborts the whole batch with
	// models.ErrRatingRowMissing.
	ApplyMatch(ctx context.Context, userId, gameId int64, updates []MatchUpdate) ([]int, error)
}
