package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is one floating-chatbot conversation. Closing and reopening the
// panel resets the session: history is truncated to the welcome message and
// the generation counter is bumped so late replies from the previous
// conversation can be dropped.
type ChatSession struct {
	Id         uuid.UUID
	UserId     *uuid.UUID // nil for anonymous visitors
	Generation int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	CreatedAt     time.Time
}
