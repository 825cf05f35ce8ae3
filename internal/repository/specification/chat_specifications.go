package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByChatSessionID filters messages belonging to a chat session.
type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}
