package models

// GameType is an owner-scoped kind of game (e.g. Chess). GameId is
// unique only within the owner's scope.
type GameType struct {
	UserId            int64  `json:"user_id"`
	GameId            int64  `json:"game_id"`
	GameName          string `json:"game_name"`
	NumPlayers        int    `json:"num_players"`
	TeamSize          int    `json:"team_size"`
	HalfPointsAllowed bool   `json:"half_points_allowed"`
}
