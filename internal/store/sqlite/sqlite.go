// Package sqlite implements the record store against a local database file.
// It backs the "local" build target: a single-user device keeps all records
// on disk and the engine aggregates them exactly as it would remote data.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/daylog/daylog/server/internal/model"
	"github.com/daylog/daylog/server/internal/store"
)

// New opens (or creates) the database file and returns a Store over it.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB wires a Store over an existing connection (used by tests).
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Activities() store.Activities       { return &activities{db: s.db} }
func (s *sqliteStore) Interruptions() store.Interruptions { return &interruptions{db: s.db} }
func (s *sqliteStore) Plans() store.Plans                 { return &plans{db: s.db} }
func (s *sqliteStore) Reviews() store.Reviews             { return &reviews{db: s.db} }
func (s *sqliteStore) Goals() store.Goals                 { return &goals{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Activities ---

type activities struct{ db *sql.DB }

func (a *activities) Create(ctx context.Context, in *model.Activity) (*model.Activity, error) {
	out := *in
	out.ID = uuid.New().String()
	out.CreatedAt = time.Now().UTC()

	_, err := a.db.ExecContext(ctx, `
        INSERT INTO activities (id, user_id, category, start_time, end_time, note, energy_cost, work_type, created_at)
        VALUES (?,?,?,?,?,?,?,?,?)`,
		out.ID, out.UserID, string(out.Category), out.StartTime.UTC(), out.EndTime.UTC(),
		out.Note, out.EnergyCost, out.WorkType, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *activities) List(ctx context.Context, userID string, r model.ListRange) ([]*model.Activity, error) {
	q := `SELECT id, user_id, category, start_time, end_time, note, energy_cost, work_type, created_at
          FROM activities WHERE user_id = ?`
	args := []interface{}{userID}
	if !r.Start.IsZero() {
		q += ` AND start_time >= ?`
		args = append(args, r.Start.UTC())
	}
	if !r.End.IsZero() {
		q += ` AND start_time <= ?`
		args = append(args, r.End.UTC())
	}
	q += ` ORDER BY start_time ASC`

	rows, err := a.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Activity
	for rows.Next() {
		var rec model.Activity
		var cat string
		if err := rows.Scan(&rec.ID, &rec.UserID, &cat, &rec.StartTime, &rec.EndTime,
			&rec.Note, &rec.EnergyCost, &rec.WorkType, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Category = model.Category(cat)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// --- Interruptions ---

type interruptions struct{ db *sql.DB }

func (s *interruptions) Create(ctx context.Context, in *model.Interruption) (*model.Interruption, error) {
	out := *in
	out.ID = uuid.New().String()
	out.CreatedAt = time.Now().UTC()

	var end *time.Time
	if out.EndTime != nil {
		t := out.EndTime.UTC()
		end = &t
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO interruptions (id, user_id, activity_id, time, end_time, duration_minutes, kind, note, created_at)
        VALUES (?,?,?,?,?,?,?,?,?)`,
		out.ID, out.UserID, out.ActivityID, out.Time.UTC(), end,
		out.DurationMinutes, string(out.Kind), out.Note, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *interruptions) List(ctx context.Context, userID string, r model.ListRange) ([]*model.Interruption, error) {
	q := `SELECT id, user_id, activity_id, time, end_time, duration_minutes, kind, note, created_at
          FROM interruptions WHERE user_id = ?`
	args := []interface{}{userID}
	if !r.Start.IsZero() {
		q += ` AND time >= ?`
		args = append(args, r.Start.UTC())
	}
	if !r.End.IsZero() {
		q += ` AND time <= ?`
		args = append(args, r.End.UTC())
	}
	q += ` ORDER BY time ASC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Interruption
	for rows.Next() {
		var rec model.Interruption
		var kind string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ActivityID, &rec.Time, &rec.EndTime,
			&rec.DurationMinutes, &kind, &rec.Note, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Kind = model.InterruptionKind(kind)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// --- Plans ---

type plans struct{ db *sql.DB }

func (s *plans) Upsert(ctx context.Context, p *model.DailyPlan) (*model.DailyPlan, error) {
	goalsJSON, err := json.Marshal(p.Goals)
	if err != nil {
		return nil, err
	}

	out := *p
	out.ID = uuid.New().String()
	out.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO daily_plans (id, user_id, date, goals, planned_focus_hours, created_at)
        VALUES (?,?,?,?,?,?)
        ON CONFLICT (user_id, date) DO UPDATE SET
            goals = excluded.goals,
            planned_focus_hours = excluded.planned_focus_hours`,
		out.ID, out.UserID, out.Date, string(goalsJSON), out.PlannedFocusHours, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	// Re-read so callers see the surviving id and created_at on conflict.
	return s.GetByDate(ctx, p.UserID, p.Date)
}

func (s *plans) GetByDate(ctx context.Context, userID, date string) (*model.DailyPlan, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, user_id, date, goals, planned_focus_hours, created_at
        FROM daily_plans WHERE user_id = ? AND date = ?`, userID, date)

	var p model.DailyPlan
	var goalsJSON string
	err := row.Scan(&p.ID, &p.UserID, &p.Date, &goalsJSON, &p.PlannedFocusHours, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(goalsJSON), &p.Goals); err != nil {
		return nil, err
	}
	return &p, nil
}

// --- Reviews ---

type reviews struct{ db *sql.DB }

const reviewColumns = `id, user_id, date, plan_id, goals_met, actual_focus_hours,
    what_worked, what_didnt, why, adjustment, created_at, updated_at`

func (s *reviews) GetByDate(ctx context.Context, userID, date string) (*model.DailyReview, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM daily_reviews WHERE user_id = ? AND date = ?`, userID, date)
	return scanReview(row)
}

func (s *reviews) Upsert(ctx context.Context, userID, date string, f model.ReviewFields) (*model.DailyReview, error) {
	now := time.Now().UTC()

	// Merge semantics: a nil field keeps the stored value, via COALESCE on
	// the conflict path. The UNIQUE (user_id, date) index makes the whole
	// statement atomic, so near-simultaneous saves cannot create two rows.
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO daily_reviews (id, user_id, date, plan_id, goals_met, actual_focus_hours,
            what_worked, what_didnt, why, adjustment, created_at, updated_at)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
        ON CONFLICT (user_id, date) DO UPDATE SET
            plan_id            = COALESCE(excluded.plan_id, daily_reviews.plan_id),
            goals_met          = COALESCE(excluded.goals_met, daily_reviews.goals_met),
            actual_focus_hours = COALESCE(excluded.actual_focus_hours, daily_reviews.actual_focus_hours),
            what_worked        = COALESCE(excluded.what_worked, daily_reviews.what_worked),
            what_didnt         = COALESCE(excluded.what_didnt, daily_reviews.what_didnt),
            why                = COALESCE(excluded.why, daily_reviews.why),
            adjustment         = COALESCE(excluded.adjustment, daily_reviews.adjustment),
            updated_at         = excluded.updated_at`,
		uuid.New().String(), userID, date, f.PlanID, goalsMetValue(f.GoalsMet), f.ActualFocusHours,
		f.WhatWorked, f.WhatDidnt, f.Why, f.Adjustment, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetByDate(ctx, userID, date)
}

func (s *reviews) List(ctx context.Context, userID, startDate, endDate string) ([]*model.DailyReview, error) {
	q := `SELECT ` + reviewColumns + ` FROM daily_reviews WHERE user_id = ?`
	args := []interface{}{userID}
	if startDate != "" {
		q += ` AND date >= ?`
		args = append(args, startDate)
	}
	if endDate != "" {
		q += ` AND date <= ?`
		args = append(args, endDate)
	}
	q += ` ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.DailyReview
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (*model.DailyReview, error) {
	var r model.DailyReview
	var goalsMet *string
	err := row.Scan(&r.ID, &r.UserID, &r.Date, &r.PlanID, &goalsMet, &r.ActualFocusHours,
		&r.WhatWorked, &r.WhatDidnt, &r.Why, &r.Adjustment, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if goalsMet != nil {
		gm := model.GoalsMet(*goalsMet)
		r.GoalsMet = &gm
	}
	return &r, nil
}

func goalsMetValue(gm *model.GoalsMet) *string {
	if gm == nil {
		return nil
	}
	s := string(*gm)
	return &s
}

// --- Goals ---

type goals struct{ db *sql.DB }

func (s *goals) SetCompletion(ctx context.Context, g model.GoalCompletion) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO goal_completions (user_id, date, goal_index, completed)
        VALUES (?,?,?,?)
        ON CONFLICT (user_id, date, goal_index) DO UPDATE SET completed = excluded.completed`,
		g.UserID, g.Date, g.GoalIndex, g.Completed)
	return err
}

func (s *goals) State(ctx context.Context, userID, date string) (model.GoalState, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT goal_index, completed FROM goal_completions WHERE user_id = ? AND date = ?`,
		userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	state := make(model.GoalState)
	for rows.Next() {
		var idx int
		var completed bool
		if err := rows.Scan(&idx, &completed); err != nil {
			return nil, err
		}
		state[idx] = completed
	}
	return state, rows.Err()
}
