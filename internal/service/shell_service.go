package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"primoboost-be/internal/dto"
	"primoboost-be/internal/entity"
	"primoboost-be/internal/pkg/logger"
	"primoboost-be/internal/repository/memory"
	"primoboost-be/internal/repository/specification"
	"primoboost-be/internal/repository/unitofwork"
	"primoboost-be/internal/shell"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

var ErrShellNotFound = errors.New("shell session not found")

type IShellService interface {
	CreateSession(ctx context.Context) (*dto.CreateShellSessionResponse, error)
	GetShell(sessionId uuid.UUID) (*shell.Shell, error)
	SessionExists(sessionId uuid.UUID) bool
	AttachUser(ctx context.Context, sessionId uuid.UUID, userId *uuid.UUID) error

	// Consume starts draining the purchase-completed topic and fanning each
	// settled purchase out to the buyer's live shells.
	Consume(ctx context.Context) error
}

type shellService struct {
	uowFactory  unitofwork.RepositoryFactory
	sessionRepo *memory.ShellSessionRepository
	router      *shell.Router
	publisher   shell.SnapshotPublisher
	pubSub      *gochannel.GoChannel
	topicName   string
	opts        shell.Options
	logger      logger.ILogger

	// sessionId -> userId index for purchase fan-out. Entries for evicted
	// shells are cleaned lazily on lookup.
	mu    sync.RWMutex
	users map[uuid.UUID]uuid.UUID
}

func NewShellService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo *memory.ShellSessionRepository,
	publisher shell.SnapshotPublisher,
	pubSub *gochannel.GoChannel,
	topicName string,
	opts shell.Options,
	log logger.ILogger,
) IShellService {
	return &shellService{
		uowFactory:  uowFactory,
		sessionRepo: sessionRepo,
		router:      shell.NewRouter(),
		publisher:   publisher,
		pubSub:      pubSub,
		topicName:   topicName,
		opts:        opts,
		logger:      log,
		users:       make(map[uuid.UUID]uuid.UUID),
	}
}

func (s *shellService) CreateSession(ctx context.Context) (*dto.CreateShellSessionResponse, error) {
	id := uuid.New()
	sh := shell.NewShell(id, s.router, s, s.publisher, s.logger, s.opts)
	s.sessionRepo.Save(sh)

	s.logger.Info("ShellService", "Shell session created", map[string]interface{}{
		"session_id": id,
	})

	return &dto.CreateShellSessionResponse{SessionId: id}, nil
}

func (s *shellService) GetShell(sessionId uuid.UUID) (*shell.Shell, error) {
	sh, found := s.sessionRepo.Get(sessionId.String())
	if !found {
		s.mu.Lock()
		delete(s.users, sessionId)
		s.mu.Unlock()
		return nil, ErrShellNotFound
	}
	return sh, nil
}

func (s *shellService) SessionExists(sessionId uuid.UUID) bool {
	_, found := s.sessionRepo.Get(sessionId.String())
	return found
}

// AttachUser binds the authenticated user to a shell session, feeding the
// shell the auth provider's signals. A nil userId means logout.
func (s *shellService) AttachUser(ctx context.Context, sessionId uuid.UUID, userId *uuid.UUID) error {
	sh, err := s.GetShell(sessionId)
	if err != nil {
		return err
	}

	if userId == nil {
		s.mu.Lock()
		delete(s.users, sessionId)
		s.mu.Unlock()
		sh.SetAuth(false, false, nil)
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *userId})
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	s.mu.Lock()
	s.users[sessionId] = user.Id
	s.mu.Unlock()

	sh.SetAuth(false, true, user)
	return nil
}

// GetSubscriptionFor implements shell.SubscriptionLookup: the most recent
// active, unexpired subscription, or nil.
func (s *shellService) GetSubscriptionFor(ctx context.Context, userId uuid.UUID) (*entity.UserSubscription, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	subs, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		if sub.Status == entity.SubscriptionStatusActive && time.Now().Before(sub.EndDate) {
			return sub, nil
		}
	}
	return nil, nil
}

func (s *shellService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *shellService) processMessage(msg *message.Message) {
	var payload dto.PurchaseCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("ShellService", "Failed to unmarshal purchase message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid messages never become valid, drop them
		return
	}

	for _, sh := range s.shellsForUser(payload.UserId) {
		switch payload.Kind {
		case dto.PurchaseKindAddon:
			sh.CompleteAddonPurchase(payload.FeatureKey)
		default:
			sh.CompleteSubscriptionPurchase()
		}
	}

	s.logger.Info("ShellService", "Purchase fanned out", map[string]interface{}{
		"user_id": payload.UserId,
		"kind":    payload.Kind,
	})
	msg.Ack()
}

func (s *shellService) shellsForUser(userId uuid.UUID) []*shell.Shell {
	s.mu.RLock()
	sessionIds := make([]uuid.UUID, 0)
	for sessionId, uid := range s.users {
		if uid == userId {
			sessionIds = append(sessionIds, sessionId)
		}
	}
	s.mu.RUnlock()

	shells := make([]*shell.Shell, 0, len(sessionIds))
	for _, sessionId := range sessionIds {
		if sh, err := s.GetShell(sessionId); err == nil {
			shells = append(shells, sh)
		}
	}
	return shells
}
