package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/eloboard/elo-services/internal/comm"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	conn   *websocket.Conn
	userId int64
	mu     sync.Mutex
}

func (c *client) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub pushes match events to connected websocket clients. Each client
// only sees events for its own owner.
type Hub struct {
	connMap sync.Map // socketId -> *client
}

func NewHub() *Hub {
	return &Hub{}
}

// Subscribe wires the hub to the match event subject. Events fan out
// to every connected socket of the event's owner.
func (h *Hub) Subscribe(nc *nats.Conn) (*nats.Subscription, error) {
	return nc.Subscribe(comm.TopicMatchRecorded, func(msg *nats.Msg) {
		event := &comm.MatchRecorded{}
		if err := json.Unmarshal(msg.Data, event); err != nil {
			log.Errorf("Error nats message %s", err)
			return
		}

		h.connMap.Range(func(key, value interface{}) bool {
			c := value.(*client)
			if c.userId != event.UserId {
				return true
			}
			if err := c.send(event); err != nil {
				log.Warnf("failed to push event to socket %v: %s", key, err)
			}
			return true
		})
	})
}

// Serve upgrades the request and keeps the socket registered until the
// client goes away. userId must already be authenticated by the caller.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userId int64) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("websocket upgrade failed: %s", err)
		return
	}

	socketId := uuid.NewString()
	c := &client{conn: conn, userId: userId}
	h.connMap.Store(socketId, c)
	log.Infof("live feed socket %s opened for user %d", socketId, userId)

	defer func() {
		h.connMap.Delete(socketId)
		conn.Close()
		log.Infof("live feed socket %s closed", socketId)
	}()

	// The feed is one-way; reads only detect disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
