package models

// DefaultRating is the elo every (player, gametype) pair starts at.
const DefaultRating = 1400

// Rating is keyed by (owner, player, gametype). Exactly one row exists
// for every player/gametype pair of an owner.
type Rating struct {
	UserId   int64 `json:"user_id"`
	PlayerId int64 `json:"player_id"`
	GameId   int64 `json:"game_id"`
	Elo      int   `json:"elo"`
}
