package models

import (
	"time"
)

// HistoryEntry is an append-only audit record. Deleting a player or
// gametype never touches history.
type HistoryEntry struct {
	HistId     int64     `json:"hist_id"`
	UserId     int64     `json:"user_id"`
	PlayerId   int64     `json:"player_id"`
	GameId     int64     `json:"game_id"`
	HistText   string    `json:"hist_text"`
	RecordedAt time.Time `json:"recorded_at"`
}
