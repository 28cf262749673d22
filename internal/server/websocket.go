package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocket upgrader with reasonable settings
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now, tighten in production
		return true
	},
}

// wsClient is one connected participant: a websocket connection plus the
// buffered send channel the room writes frames into.
type wsClient struct {
	service  *Service
	conn     *websocket.Conn
	send     chan []byte
	clientID string
	room     *Room
}

// WebSocketHandler upgrades the connection and runs the join handshake: the
// first frame must be a join_game message naming the room.
func (s *Service) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	client := &wsClient{
		service:  s,
		conn:     conn,
		send:     make(chan []byte, 256),
		clientID: uuid.NewString(),
	}

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	_, message, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		return
	}
	var env Envelope
	if err := json.Unmarshal(message, &env); err != nil || env.Type != MsgJoinGame {
		log.Warn().Str("clientID", client.clientID).Msg("Expected join_game as first message")
		conn.Close()
		return
	}
	var join JoinGame
	if err := json.Unmarshal(env.Data, &join); err != nil {
		conn.Close()
		return
	}

	room, err := s.manager.GetOrCreate(join.GameID)
	if err != nil {
		log.Error().Err(err).Str("gameID", join.GameID).Msg("Failed to create room")
		conn.Close()
		return
	}
	client.room = room
	room.Join(client.clientID, client.send)

	go client.writePump()
	go client.readPump()
}

// readPump feeds inbound player actions into the room until the connection
// drops. A disconnect mid-action leaves the authoritative state untouched:
// only fully received, validated actions commit.
func (c *wsClient) readPump() {
	defer func() {
		c.service.manager.Release(c.room, c.clientID)
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("clientID", c.clientID).Msg("WebSocket error")
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			log.Warn().Str("clientID", c.clientID).Msg("Dropping malformed frame")
			continue
		}
		if env.Type != MsgPlayerAction {
			continue
		}
		var action PlayerAction
		if err := json.Unmarshal(env.Data, &action); err != nil {
			log.Warn().Str("clientID", c.clientID).Msg("Dropping malformed player action")
			continue
		}
		c.room.HandleAction(c.clientID, action)
	}
}

// writePump drains the send channel onto the wire and keeps the connection
// alive with pings.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
