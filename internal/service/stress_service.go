package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/gripe-service/internal/domain"
	"github.com/spec-kit/gripe-service/internal/events"
	"github.com/spec-kit/gripe-service/internal/repository"
	apperrors "github.com/spec-kit/gripe-service/pkg/util/errorutil"
)

const gripePreviewLen = 60

// StressService coordinates stress and gripe workflows. Duplicate stress
// names and duplicate gripe texts are silent no-ops, never errors.
type StressService struct {
	stresses   repository.StressRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	randInt    func(n int) int
}

// NewStressService constructs the service.
func NewStressService(stresses repository.StressRepository, dispatcher events.Dispatcher, logger *zap.Logger) *StressService {
	return &StressService{
		stresses:   stresses,
		dispatcher: dispatcher,
		logger:     logger,
		randInt:    rand.Intn,
	}
}

// ListStresses returns all stresses owned by the user in insertion order.
func (s *StressService) ListStresses(ctx context.Context, user domain.Identity) ([]domain.Stress, error) {
	return s.stresses.ListByOwner(ctx, user.UserID)
}

// ReorderWithFirst swaps the named stress to position 0 so a just-selected
// stress stays pinned at the top of the selector. The input is returned
// unchanged when the name is absent.
func ReorderWithFirst(stresses []domain.Stress, name string) []domain.Stress {
	for i := range stresses {
		if stresses[i].Name == name {
			stresses[0], stresses[i] = stresses[i], stresses[0]
			break
		}
	}
	return stresses
}

// AddStress creates a stress owned by the user. Empty names and names the
// user already owns are no-ops; both return a nil stress.
func (s *StressService) AddStress(ctx context.Context, user domain.Identity, name string) (*domain.Stress, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	stress := &domain.Stress{
		Name:       name,
		GripeCount: 0,
		Gripes:     []domain.Gripe{},
		Owners:     []string{user.UserID},
	}
	if err := s.stresses.Create(ctx, stress); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			s.logger.Info("stress not added, name already exists",
				zap.String("name", name), zap.String("user_id", user.UserID))
			return nil, nil
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventStressCreated,
		UserID: user.UserID,
		Payload: events.StressCreatedPayload{
			StressID: stress.ID,
			Name:     stress.Name,
		},
	})
	return stress, nil
}

// AddGripe appends a gripe to the named stress. The gripe takes the next
// counter value as its number; duplicate text leaves the stress untouched,
// so the counter only ever reflects gripes actually added.
func (s *StressService) AddGripe(ctx context.Context, user domain.Identity, stressName, text string) (*domain.Gripe, error) {
	if text == "" {
		return nil, nil
	}

	stress, err := s.stresses.GetByNameAndOwner(ctx, stressName, user.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewStressNotFound(stressName)
		}
		return nil, err
	}

	if stress.HasGripe(text) {
		s.logger.Info("gripe not added, text already exists",
			zap.String("stress", stressName), zap.String("user_id", user.UserID))
		return nil, nil
	}

	stress.GripeCount++
	gripe := domain.Gripe{
		Number: stress.GripeCount,
		Text:   text,
	}
	stress.Gripes = append(stress.Gripes, gripe)

	if err := s.stresses.UpdateGripes(ctx, stress); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventGripeAdded,
		UserID: user.UserID,
		Payload: events.GripeAddedPayload{
			StressID:    stress.ID,
			StressName:  stress.Name,
			GripeNumber: gripe.Number,
			TextPreview: preview(text),
		},
	})
	return &gripe, nil
}

// PickRandomGripe draws a uniformly random gripe from the stress.
func (s *StressService) PickRandomGripe(stress *domain.Stress) (*domain.Gripe, error) {
	if len(stress.Gripes) == 0 {
		return nil, apperrors.NewNoGripes(stress.Name)
	}
	return &stress.Gripes[s.randInt(len(stress.Gripes))], nil
}

// GetStress fetches a stress by name, enforcing ownership.
func (s *StressService) GetStress(ctx context.Context, user domain.Identity, name string) (*domain.Stress, error) {
	stress, err := s.stresses.GetByNameAndOwner(ctx, name, user.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewStressNotFound(name)
		}
		return nil, err
	}
	return stress, nil
}

// DeleteStress removes the stress with its embedded gripes.
func (s *StressService) DeleteStress(ctx context.Context, user domain.Identity, name string) error {
	stress, err := s.stresses.GetByNameAndOwner(ctx, name, user.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewStressNotFound(name)
		}
		return err
	}

	if err := s.stresses.DeleteByNameAndOwner(ctx, name, user.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewStressNotFound(name)
		}
		return err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventStressDeleted,
		UserID: user.UserID,
		Payload: events.StressDeletedPayload{
			Name:       stress.Name,
			GripeCount: stress.GripeCount,
		},
	})
	return nil
}

func (s *StressService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func preview(text string) string {
	if len(text) > gripePreviewLen {
		return text[:gripePreviewLen]
	}
	return text
}
