package contract

import (
	"context"

	"primoboost-be/internal/entity"
	"primoboost-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatRepository interface {
	CreateSession(ctx context.Context, session *entity.ChatSession) error
	UpdateSession(ctx context.Context, session *entity.ChatSession) error
	FindOneSession(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)

	CreateMessage(ctx context.Context, message *entity.ChatMessage) error
	FindAllMessages(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	DeleteMessagesBySession(ctx context.Context, sessionId uuid.UUID) error
}
