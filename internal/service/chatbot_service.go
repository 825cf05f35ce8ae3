package service

import (
	"context"
	"errors"
	"time"

	"primoboost-be/internal/constant"
	"primoboost-be/internal/dto"
	"primoboost-be/internal/entity"
	"primoboost-be/internal/pkg/logger"
	"primoboost-be/internal/repository/specification"
	"primoboost-be/internal/repository/unitofwork"
	"primoboost-be/pkg/intent"
	"primoboost-be/pkg/llm"

	"github.com/google/uuid"
)

var ErrSessionReset = errors.New("chat session was reset")

const (
	ReplySourceRemote   = "remote"
	ReplySourceLocal    = "local"
	ReplySourceFallback = "fallback"
)

type IChatbotService interface {
	CreateSession(ctx context.Context, userId *uuid.UUID) (*dto.CreateChatSessionResponse, error)
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	ResetSession(ctx context.Context, request *dto.ResetChatSessionRequest) (*dto.CreateChatSessionResponse, error)
	GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatMessageDTO, error)
}

type chatbotService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.Provider
	matcher     *intent.Matcher
	logger      logger.ILogger
}

func NewChatbotService(uowFactory unitofwork.RepositoryFactory, llmProvider llm.Provider, log logger.ILogger) IChatbotService {
	return &chatbotService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		matcher:     intent.NewMatcher(constant.ChatKnowledgeBase),
		logger:      log,
	}
}

func (s *chatbotService) CreateSession(ctx context.Context, userId *uuid.UUID) (*dto.CreateChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := &entity.ChatSession{
		Id:         uuid.New(),
		UserId:     userId,
		Generation: 1,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatRepository().CreateSession(ctx, session); err != nil {
		return nil, err
	}

	welcome := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleModel,
		Content:       constant.ChatWelcomeMessage,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatRepository().CreateMessage(ctx, welcome); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateChatSessionResponse{
		Id:      session.Id,
		Welcome: constant.ChatWelcomeMessage,
	}, nil
}

// SendChat resolves a reply for the user's message. The remote completion is
// always attempted and strictly preferred; the local knowledge-base match
// covers remote failures; the apology string covers everything else.
func (s *chatbotService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatRepository().FindOneSession(ctx, specification.ByID{ID: request.ChatSessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("chat session not found")
	}
	generation := session.Generation

	sent := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleUser,
		Content:       request.Chat,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatRepository().CreateMessage(ctx, sent); err != nil {
		return nil, err
	}

	reply, source := s.resolveReply(ctx, request.Chat)

	// The remote attempt can outlive a panel close/reopen. A reset bumps the
	// session generation, so a reply computed against the old conversation is
	// dropped instead of being appended to the fresh one.
	session, err = uow.ChatRepository().FindOneSession(ctx, specification.ByID{ID: request.ChatSessionId})
	if err != nil {
		return nil, err
	}
	if session == nil || session.Generation != generation {
		s.logger.Info("ChatbotService", "Dropping reply for reset session", map[string]interface{}{
			"chat_session_id": request.ChatSessionId,
		})
		return nil, ErrSessionReset
	}

	replyMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleModel,
		Content:       reply,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatRepository().CreateMessage(ctx, replyMessage); err != nil {
		return nil, err
	}

	return &dto.SendChatResponse{
		ChatSessionId: session.Id,
		Sent:          toChatMessageDTO(sent),
		Reply:         toChatMessageDTO(replyMessage),
		Source:        source,
	}, nil
}

// resolveReply always returns a usable string.
func (s *chatbotService) resolveReply(ctx context.Context, message string) (string, string) {
	if remote, ok := s.tryRemote(ctx, message); ok {
		return remote, ReplySourceRemote
	}
	if local, ok := s.matcher.Match(message); ok {
		return local, ReplySourceLocal
	}
	return constant.ChatFallbackMessage, ReplySourceFallback
}

// tryRemote never fails upward. Missing configuration, transport errors, and
// malformed payloads all collapse to "no answer" so the caller falls back.
func (s *chatbotService) tryRemote(ctx context.Context, message string) (string, bool) {
	if s.llmProvider == nil {
		return "", false
	}
	reply, err := s.llmProvider.ChatWithSystem(ctx, constant.ChatSystemPrompt, message,
		llm.WithTemperature(0.4),
	)
	if err != nil {
		s.logger.Warn("ChatbotService", "Remote completion unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return "", false
	}
	if reply == "" {
		return "", false
	}
	return reply, true
}

// ResetSession truncates the conversation back to a single welcome message
// and bumps the generation counter so in-flight replies get dropped.
func (s *chatbotService) ResetSession(ctx context.Context, request *dto.ResetChatSessionRequest) (*dto.CreateChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatRepository().FindOneSession(ctx, specification.ByID{ID: request.ChatSessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("chat session not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatRepository().DeleteMessagesBySession(ctx, session.Id); err != nil {
		return nil, err
	}

	session.Generation++
	session.UpdatedAt = time.Now()
	if err := uow.ChatRepository().UpdateSession(ctx, session); err != nil {
		return nil, err
	}

	welcome := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleModel,
		Content:       constant.ChatWelcomeMessage,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatRepository().CreateMessage(ctx, welcome); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateChatSessionResponse{
		Id:      session.Id,
		Welcome: constant.ChatWelcomeMessage,
	}, nil
}

func (s *chatbotService) GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatMessageDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.ChatRepository().FindAllMessages(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	history := make([]*dto.ChatMessageDTO, 0, len(messages))
	for _, m := range messages {
		history = append(history, toChatMessageDTO(m))
	}
	return history, nil
}

func toChatMessageDTO(m *entity.ChatMessage) *dto.ChatMessageDTO {
	return &dto.ChatMessageDTO{
		Id:        m.Id,
		Role:      m.Role,
		Chat:      m.Content,
		CreatedAt: m.CreatedAt,
	}
}
