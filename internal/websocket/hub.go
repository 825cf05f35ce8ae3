package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"primoboost-be/internal/pkg/logger"
	"primoboost-be/internal/shell"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "shell_events"

// Hub tracks the websocket connections mirroring each shell session. A
// session can have several connections (multiple tabs); every connection
// receives the same snapshots.
type Hub struct {
	// Identifies this instance on the cluster channel so its own
	// publications are not delivered twice to local clients.
	instanceId uuid.UUID

	// SessionID -> connections for that shell session
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance delivery
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		instanceId: uuid.New(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
					h.logger.Info("Hub", "Session fully disconnected", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// PublishShellSnapshot implements shell.SnapshotPublisher. Every settled
// shell update lands here and is mirrored to the session's connections,
// on this instance and via Redis on the others.
func (h *Hub) PublishShellSnapshot(sessionId uuid.UUID, state shell.State) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "shell_snapshot",
		"data": state,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal shell snapshot", map[string]interface{}{"error": err.Error()})
		return
	}

	h.sendLocal(sessionId, data)

	if h.rdb != nil {
		payload := map[string]interface{}{
			"origin":            h.instanceId.String(),
			"target_session_id": sessionId.String(),
			"message":           json.RawMessage(data),
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), clusterChannel, jsonPayload)
	}
}

func (h *Hub) sendLocal(sessionId uuid.UUID, data []byte) {
	h.mu.RLock()
	clients, found := h.clients[sessionId]
	h.mu.RUnlock()

	if !found {
		return
	}
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping message", map[string]interface{}{"session_id": sessionId})
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the shared channel and delivers only to
	// sessions it holds locally.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		h.handleClusterMessage([]byte(msg.Payload))
	}
}

func (h *Hub) handleClusterMessage(data []byte) {
	var payload struct {
		Origin          string          `json:"origin"`
		TargetSessionID string          `json:"target_session_id"`
		Message         json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("Redis msg parse error: %v", err)
		return
	}

	// Snapshots published by this instance were already delivered locally.
	if payload.Origin == h.instanceId.String() {
		return
	}

	sessionId, err := uuid.Parse(payload.TargetSessionID)
	if err != nil {
		return
	}

	h.sendLocal(sessionId, payload.Message)
}
