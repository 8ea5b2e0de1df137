// Package remote implements the record store against a remote tracker
// service over its REST API. It lets thin clients (CLI, local agents)
// use the same Store contract as the embedded backends.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/daylog/daylog/server/internal/model"
	"github.com/daylog/daylog/server/internal/store"
)

const defaultTimeout = 10 * time.Second

// New constructs a Store that proxies every call to the service at baseURL.
func New(baseURL string) store.Store {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Content-Type", "application/json")
	return &remoteStore{c: c}
}

// NewWithClient is used by tests to inject a configured client.
func NewWithClient(c *resty.Client) store.Store { return &remoteStore{c: c} }

type remoteStore struct{ c *resty.Client }

func (s *remoteStore) Activities() store.Activities       { return &activities{c: s.c} }
func (s *remoteStore) Interruptions() store.Interruptions { return &interruptions{c: s.c} }
func (s *remoteStore) Plans() store.Plans                 { return &plans{c: s.c} }
func (s *remoteStore) Reviews() store.Reviews             { return &reviews{c: s.c} }
func (s *remoteStore) Goals() store.Goals                 { return &goals{c: s.c} }

// HealthPing implements health.HealthPinger by probing the service's
// health endpoint.
func (s *remoteStore) HealthPing(ctx context.Context) error {
	resp, err := s.c.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("remote health: status %d", resp.StatusCode())
	}
	return nil
}

// checkStatus maps HTTP errors onto the store's sentinel errors so callers
// can errors.Is the same way they do against the embedded backends.
func checkStatus(resp *resty.Response, want int) error {
	code := resp.StatusCode()
	if code == want {
		return nil
	}
	switch code {
	case http.StatusNotFound:
		return model.ErrNotFound
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", model.ErrValidation, resp.String())
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", model.ErrConflict, resp.String())
	default:
		return fmt.Errorf("remote store: status %d: %s", code, resp.String())
	}
}

func rangeParams(r model.ListRange) map[string]string {
	params := map[string]string{}
	if !r.Start.IsZero() {
		params["start"] = r.Start.UTC().Format(time.RFC3339)
	}
	if !r.End.IsZero() {
		params["end"] = r.End.UTC().Format(time.RFC3339)
	}
	return params
}

// --- Activities ---

type activities struct{ c *resty.Client }

func (a *activities) Create(ctx context.Context, in *model.Activity) (*model.Activity, error) {
	var out model.Activity
	resp, err := a.c.R().SetContext(ctx).
		SetBody(in).
		SetResult(&out).
		Post(fmt.Sprintf("/api/users/%s/activities", in.UserID))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *activities) List(ctx context.Context, userID string, r model.ListRange) ([]*model.Activity, error) {
	var out []*model.Activity
	resp, err := a.c.R().SetContext(ctx).
		SetQueryParams(rangeParams(r)).
		SetResult(&out).
		Get(fmt.Sprintf("/api/users/%s/activities", userID))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Interruptions ---

type interruptions struct{ c *resty.Client }

func (s *interruptions) Create(ctx context.Context, in *model.Interruption) (*model.Interruption, error) {
	var out model.Interruption
	resp, err := s.c.R().SetContext(ctx).
		SetBody(in).
		SetResult(&out).
		Post(fmt.Sprintf("/api/users/%s/interruptions", in.UserID))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *interruptions) List(ctx context.Context, userID string, r model.ListRange) ([]*model.Interruption, error) {
	var out []*model.Interruption
	resp, err := s.c.R().SetContext(ctx).
		SetQueryParams(rangeParams(r)).
		SetResult(&out).
		Get(fmt.Sprintf("/api/users/%s/interruptions", userID))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Plans ---

type plans struct{ c *resty.Client }

func (s *plans) Upsert(ctx context.Context, p *model.DailyPlan) (*model.DailyPlan, error) {
	var out model.DailyPlan
	resp, err := s.c.R().SetContext(ctx).
		SetBody(p).
		SetResult(&out).
		Put(fmt.Sprintf("/api/users/%s/plans/%s", p.UserID, p.Date))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *plans) GetByDate(ctx context.Context, userID, date string) (*model.DailyPlan, error) {
	var out model.DailyPlan
	resp, err := s.c.R().SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/api/users/%s/plans/%s", userID, date))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Reviews ---

type reviews struct{ c *resty.Client }

type reflectionUpsertRequest struct {
	Date string `json:"date"`
	model.ReviewFields
}

func (s *reviews) Upsert(ctx context.Context, userID, date string, f model.ReviewFields) (*model.DailyReview, error) {
	var out model.DailyReview
	resp, err := s.c.R().SetContext(ctx).
		SetBody(reflectionUpsertRequest{Date: date, ReviewFields: f}).
		SetResult(&out).
		Post(fmt.Sprintf("/api/users/%s/reflections", userID))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *reviews) GetByDate(ctx context.Context, userID, date string) (*model.DailyReview, error) {
	var out model.DailyReview
	resp, err := s.c.R().SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/api/users/%s/reflections/%s", userID, date))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *reviews) List(ctx context.Context, userID, startDate, endDate string) ([]*model.DailyReview, error) {
	params := map[string]string{}
	if startDate != "" {
		params["start"] = startDate
	}
	if endDate != "" {
		params["end"] = endDate
	}
	var out []*model.DailyReview
	resp, err := s.c.R().SetContext(ctx).
		SetQueryParams(params).
		SetResult(&out).
		Get(fmt.Sprintf("/api/users/%s/reflections", userID))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Goals ---

type goals struct{ c *resty.Client }

type goalToggleRequest struct {
	Completed bool `json:"completed"`
}

func (s *goals) SetCompletion(ctx context.Context, g model.GoalCompletion) error {
	resp, err := s.c.R().SetContext(ctx).
		SetBody(goalToggleRequest{Completed: g.Completed}).
		Post(fmt.Sprintf("/api/users/%s/plans/%s/goals/%s",
			g.UserID, g.Date, strconv.Itoa(g.GoalIndex)))
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK)
}

func (s *goals) State(ctx context.Context, userID, date string) (model.GoalState, error) {
	// Wire shape keys goal indexes as strings; JSON objects cannot carry
	// integer keys.
	var raw map[string]bool
	resp, err := s.c.R().SetContext(ctx).
		SetResult(&raw).
		Get(fmt.Sprintf("/api/users/%s/plans/%s/goals", userID, date))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}
	state := make(model.GoalState, len(raw))
	for k, v := range raw {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("remote store: bad goal index %q", k)
		}
		state[idx] = v
	}
	return state, nil
}
