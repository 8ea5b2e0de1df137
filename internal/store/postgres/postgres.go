// Package postgres implements the record store for server deployments
// using the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/daylog/daylog/server/internal/model"
	"github.com/daylog/daylog/server/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and
// verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Activities() store.Activities       { return &activities{db: s.db} }
func (s *pgStore) Interruptions() store.Interruptions { return &interruptions{db: s.db} }
func (s *pgStore) Plans() store.Plans                 { return &plans{db: s.db} }
func (s *pgStore) Reviews() store.Reviews             { return &reviews{db: s.db} }
func (s *pgStore) Goals() store.Goals                 { return &goals{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Activities ---

type activities struct{ db *sql.DB }

func (a *activities) Create(ctx context.Context, in *model.Activity) (*model.Activity, error) {
	out := *in
	out.ID = uuid.New().String()

	row := a.db.QueryRowContext(ctx, `
        INSERT INTO activities (id, user_id, category, start_time, end_time, note, energy_cost, work_type)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at`,
		out.ID, out.UserID, string(out.Category), out.StartTime.UTC(), out.EndTime.UTC(),
		out.Note, out.EnergyCost, out.WorkType)
	if err := row.Scan(&out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *activities) List(ctx context.Context, userID string, r model.ListRange) ([]*model.Activity, error) {
	q := `SELECT id, user_id, category, start_time, end_time, note, energy_cost, work_type, created_at
          FROM activities WHERE user_id = $1`
	args := []interface{}{userID}
	if !r.Start.IsZero() {
		args = append(args, r.Start.UTC())
		q += fmt.Sprintf(` AND start_time >= $%d`, len(args))
	}
	if !r.End.IsZero() {
		args = append(args, r.End.UTC())
		q += fmt.Sprintf(` AND start_time <= $%d`, len(args))
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

	var end *time.Time
	if out.EndTime != nil {
		t := out.EndTime.UTC()
		end = &t
	}
	row := s.db.QueryRowContext(ctx, `
        INSERT INTO interruptions (id, user_id, activity_id, time, end_time, duration_minutes, kind, note)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at`,
		out.ID, out.UserID, out.ActivityID, out.Time.UTC(), end,
		out.DurationMinutes, string(out.Kind), out.Note)
	if err := row.Scan(&out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *interruptions) List(ctx context.Context, userID string, r model.ListRange) ([]*model.Interruption, error) {
	q := `SELECT id, user_id, activity_id, time, end_time, duration_minutes, kind, note, created_at
          FROM interruptions WHERE user_id = $1`
	args := []interface{}{userID}
	if !r.Start.IsZero() {
		args = append(args, r.Start.UTC())
		q += fmt.Sprintf(` AND time >= $%d`, len(args))
	}
	if !r.End.IsZero() {
		args = append(args, r.End.UTC())
		q += fmt.Sprintf(` AND time <= $%d`, len(args))
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

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO daily_plans (id, user_id, date, goals, planned_focus_hours)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (user_id, date) DO UPDATE SET
            goals = EXCLUDED.goals,
            planned_focus_hours = EXCLUDED.planned_focus_hours`,
		uuid.New().String(), p.UserID, p.Date, string(goalsJSON), p.PlannedFocusHours)
	if err != nil {
		return nil, err
	}
	return s.GetByDate(ctx, p.UserID, p.Date)
}

func (s *plans) GetByDate(ctx context.Context, userID, date string) (*model.DailyPlan, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, user_id, date, goals, planned_focus_hours, created_at
        FROM daily_plans WHERE user_id = $1 AND date = $2`, userID, date)

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
		`SELECT `+reviewColumns+` FROM daily_reviews WHERE user_id = $1 AND date = $2`, userID, date)
	return scanReview(row)
}

func (s *reviews) Upsert(ctx context.Context, userID, date string, f model.ReviewFields) (*model.DailyReview, error) {
	var goalsMet *string
	if f.GoalsMet != nil {
		v := string(*f.GoalsMet)
		goalsMet = &v
	}

	// Single atomic statement: the UNIQUE (user_id, date) index guarantees
	// at most one review per day even under concurrent saves.
	row := s.db.QueryRowContext(ctx, `
        INSERT INTO daily_reviews (id, user_id, date, plan_id, goals_met, actual_focus_hours,
            what_worked, what_didnt, why, adjustment)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        ON CONFLICT (user_id, date) DO UPDATE SET
            plan_id            = COALESCE(EXCLUDED.plan_id, daily_reviews.plan_id),
            goals_met          = COALESCE(EXCLUDED.goals_met, daily_reviews.goals_met),
            actual_focus_hours = COALESCE(EXCLUDED.actual_focus_hours, daily_reviews.actual_focus_hours),
            what_worked        = COALESCE(EXCLUDED.what_worked, daily_reviews.what_worked),
            what_didnt         = COALESCE(EXCLUDED.what_didnt, daily_reviews.what_didnt),
            why                = COALESCE(EXCLUDED.why, daily_reviews.why),
            adjustment         = COALESCE(EXCLUDED.adjustment, daily_reviews.adjustment),
            updated_at         = now()
        RETURNING `+reviewColumns,
		uuid.New().String(), userID, date, f.PlanID, goalsMet, f.ActualFocusHours,
		f.WhatWorked, f.WhatDidnt, f.Why, f.Adjustment)
	return scanReview(row)
}

func (s *reviews) List(ctx context.Context, userID, startDate, endDate string) ([]*model.DailyReview, error) {
	q := `SELECT ` + reviewColumns + ` FROM daily_reviews WHERE user_id = $1`
	args := []interface{}{userID}
	if startDate != "" {
		args = append(args, startDate)
		q += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if endDate != "" {
		args = append(args, endDate)
		q += fmt.Sprintf(` AND date <= $%d`, len(args))
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

// --- Goals ---

type goals struct{ db *sql.DB }

func (s *goals) SetCompletion(ctx context.Context, g model.GoalCompletion) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO goal_completions (user_id, date, goal_index, completed)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (user_id, date, goal_index) DO UPDATE SET completed = EXCLUDED.completed`,
		g.UserID, g.Date, g.GoalIndex, g.Completed)
	return err
}

func (s *goals) State(ctx context.Context, userID, date string) (model.GoalState, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT goal_index, completed FROM goal_completions WHERE user_id = $1 AND date = $2`,
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
