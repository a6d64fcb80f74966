package broker

import (
	"encoding/json"

	"github.com/eloboard/elo-services/internal/comm"
	"github.com/eloboard/elo-services/internal/ledgersvc/service"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Broker fans committed match results out over NATS. A nil broker (no
// NATS configured) is a no-op, so the ledger works without it.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

// PublishMatchRecorded publishes the event after the match committed.
// Publish failures are logged, not propagated: the ledger is already
// consistent and the feed is best-effort.
func (b *Broker) PublishMatchRecorded(userId int64, rec *service.RecordedMatch) {
	if b == nil || b.Conn == nil {
		return
	}

	event := comm.MatchRecorded{
		EventId:    uuid.NewString(),
		UserId:     userId,
		GameName:   rec.Game.GameName,
		GameId:     rec.Game.GameId,
		Teams:      rec.Teams,
		Results:    make([]comm.PlayerResult, 0, len(rec.Results)),
		RecordedAt: rec.RecordedAt,
	}
	for _, r := range rec.Results {
		event.Results = append(event.Results, comm.PlayerResult{
			PlayerName: r.PlayerName,
			PlayerId:   r.PlayerId,
			Delta:      r.Delta,
			Elo:        r.Elo,
			History:    r.HistText,
		})
	}

	bytes, err := json.Marshal(event)
	if err != nil {
		log.Errorf("failed to marshal match event: %s", err)
		return
	}

	if err := b.Conn.Publish(comm.TopicMatchRecorded, bytes); err != nil {
		log.Errorf("failed to publish to NATS topic %s: %s", comm.TopicMatchRecorded, err)
		return
	}

	log.Infof("published match event %s for user %d", event.EventId, userId)
}
