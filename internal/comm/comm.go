package comm

import (
	"time"
)

// TopicMatchRecorded is the NATS subject the ledger service publishes
// match events on and the websocket hub subscribes to.
const TopicMatchRecorded = "ledger.match.recorded"

// PlayerResult is the per-player outcome of one recorded match.
type PlayerResult struct {
	PlayerName string `json:"player_name"`
	PlayerId   int64  `json:"player_id"`
	Delta      int    `json:"delta"`
	Elo        int    `json:"elo"`
	History    string `json:"history"`
}

// MatchRecorded is published after a match submission commits.
type MatchRecorded struct {
	EventId    string         `json:"event_id"`
	UserId     int64          `json:"user_id"`
	GameName   string         `json:"game_name"`
	GameId     int64          `json:"game_id"`
	Teams      [][]string     `json:"teams"`
	Results    []PlayerResult `json:"results"`
	RecordedAt time.Time      `json:"recorded_at"`
}
