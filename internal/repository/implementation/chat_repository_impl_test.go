package implementation

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestDeleteMessagesBySessionFiltersOnSessionColumn(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewChatRepository(db)

	if err := repo.DeleteMessagesBySession(context.Background(), uuid.New()); err != nil {
		t.Fatalf("DeleteMessagesBySession: %v", err)
	}

	sql := rec.last()
	if !strings.Contains(sql, `DELETE FROM "chat_messages"`) {
		t.Fatalf("expected delete on chat_messages, got: %s", sql)
	}
	// chat_messages carries the session reference as chat_session_id.
	if !strings.Contains(sql, "WHERE chat_session_id =") {
		t.Fatalf("expected filter on chat_session_id, got: %s", sql)
	}
}
