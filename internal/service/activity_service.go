package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/gripe-service/internal/events"
)

// ActivityService records stress and gripe mutations as structured log
// entries, replacing handler-side print statements with event handlers.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventStressCreated, a.handleStressCreated)
	a.dispatcher.Subscribe(events.EventGripeAdded, a.handleGripeAdded)
	a.dispatcher.Subscribe(events.EventStressDeleted, a.handleStressDeleted)
}

func (a *ActivityService) handleStressCreated(ctx context.Context, event events.Event) error {
	a.logger.Info("StressCreated", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (a *ActivityService) handleGripeAdded(ctx context.Context, event events.Event) error {
	a.logger.Info("GripeAdded", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (a *ActivityService) handleStressDeleted(ctx context.Context, event events.Event) error {
	a.logger.Info("StressDeleted", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}
