package services

import (
	"context"
	"fmt"

	"github.com/daylog/daylog/server/internal/model"
	"github.com/daylog/daylog/server/internal/store"
)

// ReflectionService manages the single end-of-day review per calendar day.
type ReflectionService struct {
	store store.Store
}

func NewReflectionService(s store.Store) *ReflectionService {
	return &ReflectionService{store: s}
}

// SaveReflection upserts the reflection for (userID, date). Provided fields
// overwrite stored ones; omitted fields are preserved, so the same payload
// saved twice converges to one identical record.
func (s *ReflectionService) SaveReflection(ctx context.Context, userID, date string, f model.ReviewFields) (*model.DailyReview, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}
	if err := validDate(date); err != nil {
		return nil, err
	}
	if f.GoalsMet != nil {
		switch *f.GoalsMet {
		case model.GoalsMetYes, model.GoalsMetPartial, model.GoalsMetNo:
		default:
			return nil, fmt.Errorf("%w: goalsMet must be yes, partial or no", model.ErrValidation)
		}
	}
	if f.ActualFocusHours != nil && (*f.ActualFocusHours < 0 || *f.ActualFocusHours > 24) {
		return nil, fmt.Errorf("%w: actualFocusHours must be between 0 and 24", model.ErrValidation)
	}

	// Blank text never reaches storage; it would defeat the COALESCE merge.
	f.WhatWorked = normalizeText(f.WhatWorked)
	f.WhatDidnt = normalizeText(f.WhatDidnt)
	f.Why = normalizeText(f.Why)
	f.Adjustment = normalizeText(f.Adjustment)

	return s.store.Reviews().Upsert(ctx, userID, date, f)
}

func (s *ReflectionService) GetReflection(ctx context.Context, userID, date string) (*model.DailyReview, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	return s.store.Reviews().GetByDate(ctx, userID, date)
}

// ListReflections returns reviews in [startDate, endDate], newest first.
// Empty bounds mean unbounded.
func (s *ReflectionService) ListReflections(ctx context.Context, userID, startDate, endDate string) ([]*model.DailyReview, error) {
	if startDate != "" {
		if err := validDate(startDate); err != nil {
			return nil, err
		}
	}
	if endDate != "" {
		if err := validDate(endDate); err != nil {
			return nil, err
		}
	}
	return s.store.Reviews().List(ctx, userID, startDate, endDate)
}
