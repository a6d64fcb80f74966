package models

// Player belongs to exactly one owner. PlayerId is unique only within
// that owner's scope and must never be compared across owners.
type Player struct {
	UserId     int64  `json:"user_id"`
	PlayerId   int64  `json:"player_id"`
	PlayerName string `json:"player_name"`
}
