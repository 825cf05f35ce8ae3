package service

import (
	"context"

	"primoboost-be/internal/pkg/logger"
	"primoboost-be/pkg/events"
	pkgNats "primoboost-be/pkg/nats"
)

const auditDurableName = "audit-log"

// IAuditService drains the NATS event stream into the structured log, so
// every auth and purchase event leaves a durable audit trail even when no
// other consumer cares about it.
type IAuditService interface {
	Start() error
}

type auditService struct {
	subscriber *pkgNats.Subscriber
	logger     logger.ILogger
}

func NewAuditService(subscriber *pkgNats.Subscriber, log logger.ILogger) IAuditService {
	return &auditService{
		subscriber: subscriber,
		logger:     log,
	}
}

func (s *auditService) Start() error {
	if s.subscriber == nil {
		s.logger.Warn("AuditService", "NATS subscriber unavailable, audit trail disabled", nil)
		return nil
	}
	return s.subscriber.Subscribe("events.>", auditDurableName, s.record)
}

func (s *auditService) record(ctx context.Context, event events.Event) error {
	s.logger.Info("Audit", event.EventType(), event.Payload())
	return nil
}
