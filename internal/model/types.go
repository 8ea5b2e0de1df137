package model

import "time"

// Category classifies an activity block.
type Category string

const (
	CategoryStudy   Category = "Study"
	CategoryCoding  Category = "Coding"
	CategoryWork    Category = "Work"
	CategoryReading Category = "Reading"
	CategoryRest    Category = "Rest"
	CategorySocial  Category = "Social"
	CategoryOther   Category = "Other"
)

// Categories lists every valid activity category.
var Categories = []Category{
	CategoryStudy, CategoryCoding, CategoryWork, CategoryReading,
	CategoryRest, CategorySocial, CategoryOther,
}

// FocusCategories are the categories counted toward focus-time metrics.
var FocusCategories = []Category{
	CategoryStudy, CategoryCoding, CategoryWork, CategoryReading,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// IsFocus reports whether c counts toward focus time.
func (c Category) IsFocus() bool {
	for _, v := range FocusCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Normalize maps unknown or absent category values to Other.
func (c Category) Normalize() Category {
	if c.Valid() {
		return c
	}
	return CategoryOther
}

// Activity is an immutable time block the user logged.
type Activity struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Category   Category  `json:"category"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Note       *string   `json:"note,omitempty"`
	EnergyCost *string   `json:"energyCost,omitempty"` // light | medium | heavy
	WorkType   *string   `json:"workType,omitempty"`   // deep | shallow | mixed | rest
	CreatedAt  time.Time `json:"createdAt"`
}

// InterruptionKind classifies an interruption.
type InterruptionKind string

const (
	InterruptionPhone       InterruptionKind = "Phone"
	InterruptionSocialMedia InterruptionKind = "Social Media"
	InterruptionNoise       InterruptionKind = "Noise"
	InterruptionOtherKind   InterruptionKind = "Other"
)

// InterruptionKinds lists every valid interruption kind.
var InterruptionKinds = []InterruptionKind{
	InterruptionPhone, InterruptionSocialMedia, InterruptionNoise, InterruptionOtherKind,
}

// Valid reports whether k is one of the known interruption kinds.
func (k InterruptionKind) Valid() bool {
	for _, v := range InterruptionKinds {
		if k == v {
			return true
		}
	}
	return false
}

// Interruption records a break in focus. DurationMinutes and EndTime are
// both optional; resolution order is DurationMinutes, then EndTime-Time,
// then a fixed 5-minute default.
type Interruption struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	ActivityID      *string          `json:"activityId,omitempty"`
	Time            time.Time        `json:"time"`
	EndTime         *time.Time       `json:"endTime,omitempty"`
	DurationMinutes *int             `json:"durationMinutes,omitempty"`
	Kind            InterruptionKind `json:"kind"`
	Note            *string          `json:"note,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// DailyPlan holds the user's goals and focus budget for one calendar day.
// Date is a YYYY-MM-DD key in the reference timezone.
type DailyPlan struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	Date              string    `json:"date"`
	Goals             []string  `json:"goals"`
	PlannedFocusHours float64   `json:"plannedFocusHours"`
	CreatedAt         time.Time `json:"createdAt"`
}

// GoalCompletion marks a single plan goal done or not done.
type GoalCompletion struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	GoalIndex int    `json:"goalIndex"`
	Completed bool   `json:"completed"`
}

// GoalState maps goal index to completion for one day.
type GoalState map[int]bool

// GoalsMet summarizes how a day's goals went.
type GoalsMet string

const (
	GoalsMetYes     GoalsMet = "yes"
	GoalsMetPartial GoalsMet = "partial"
	GoalsMetNo      GoalsMet = "no"
)

// DailyReview is the single end-of-day reflection for a calendar day.
// At most one exists per (user, date); writes go through an upsert.
// All text fields are optional and never stored as empty strings.
type DailyReview struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Date             string    `json:"date"`
	PlanID           *string   `json:"planId,omitempty"`
	GoalsMet         *GoalsMet `json:"goalsMet,omitempty"`
	ActualFocusHours *float64  `json:"actualFocusHours,omitempty"`
	WhatWorked       *string   `json:"whatWorked,omitempty"`
	WhatDidnt        *string   `json:"whatDidnt,omitempty"`
	Why              *string   `json:"why,omitempty"`
	Adjustment       *string   `json:"adjustment,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ReviewFields carries the optional fields of a reflection upsert.
// Nil means "leave the stored value unchanged".
type ReviewFields struct {
	PlanID           *string   `json:"planId,omitempty"`
	GoalsMet         *GoalsMet `json:"goalsMet,omitempty"`
	ActualFocusHours *float64  `json:"actualFocusHours,omitempty"`
	WhatWorked       *string   `json:"whatWorked,omitempty"`
	WhatDidnt        *string   `json:"whatDidnt,omitempty"`
	Why              *string   `json:"why,omitempty"`
	Adjustment       *string   `json:"adjustment,omitempty"`
}

// ListRange bounds a list query. Zero values mean unbounded.
type ListRange struct {
	Start time.Time
	End   time.Time
}
