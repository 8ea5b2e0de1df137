package services

import (
	"context"
	"fmt"

	"github.com/daylog/daylog/server/internal/model"
	"github.com/daylog/daylog/server/internal/store"
)

const maxInterruptionMinutes = 480

// InterruptionService handles interruption logging and listing.
type InterruptionService struct {
	store store.Store
}

func NewInterruptionService(s store.Store) *InterruptionService {
	return &InterruptionService{store: s}
}

// LogInterruption validates and persists a focus break. DurationMinutes and
// EndTime are both optional; the aggregation core resolves duration later.
func (s *InterruptionService) LogInterruption(ctx context.Context, i *model.Interruption) (*model.Interruption, error) {
	if i.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}
	if !i.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown interruption kind %q", model.ErrValidation, i.Kind)
	}
	if i.Time.IsZero() {
		return nil, fmt.Errorf("%w: time is required", model.ErrValidation)
	}
	if i.DurationMinutes != nil {
		if d := *i.DurationMinutes; d < 1 || d > maxInterruptionMinutes {
			return nil, fmt.Errorf("%w: durationMinutes must be between 1 and %d",
				model.ErrValidation, maxInterruptionMinutes)
		}
	}
	if i.EndTime != nil && !i.EndTime.After(i.Time) {
		return nil, fmt.Errorf("%w: endTime must be after time", model.ErrValidation)
	}
	i.Note = normalizeText(i.Note)
	return s.store.Interruptions().Create(ctx, i)
}

func (s *InterruptionService) ListInterruptions(ctx context.Context, userID string, r model.ListRange) ([]*model.Interruption, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}
	return s.store.Interruptions().List(ctx, userID, r)
}
