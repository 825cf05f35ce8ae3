package websocket

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func registerTestClient(h *Hub, sessionId uuid.UUID) *Client {
	client := &Client{Hub: h, Send: make(chan []byte, 4), SessionID: sessionId}
	h.mu.Lock()
	h.clients[sessionId] = append(h.clients[sessionId], client)
	h.mu.Unlock()
	return client
}

func clusterPayload(t *testing.T, origin string, sessionId uuid.UUID, message string) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]interface{}{
		"origin":            origin,
		"target_session_id": sessionId.String(),
		"message":           json.RawMessage(message),
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return data
}

func TestClusterMessageFromOtherInstanceIsDelivered(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	sessionId := uuid.New()
	client := registerTestClient(h, sessionId)

	message := `{"type":"shell_snapshot","data":{}}`
	h.handleClusterMessage(clusterPayload(t, uuid.New().String(), sessionId, message))

	select {
	case got := <-client.Send:
		if string(got) != message {
			t.Fatalf("delivered %q, want %q", got, message)
		}
	default:
		t.Fatal("expected snapshot from another instance to be delivered")
	}
}

func TestClusterMessageFromOwnInstanceIsSkipped(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	sessionId := uuid.New()
	client := registerTestClient(h, sessionId)

	// Own publications already went out via sendLocal; relaying them
	// back would hand every connected client a duplicate snapshot.
	h.handleClusterMessage(clusterPayload(t, h.instanceId.String(), sessionId, `{"type":"shell_snapshot","data":{}}`))

	select {
	case got := <-client.Send:
		t.Fatalf("own-instance message must not be redelivered, got %q", got)
	default:
	}
}
