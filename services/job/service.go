// Package job serves the dashboard's job views over the upstream jobs API,
// relabelling raw status enums and deriving payment state where the upstream
// omits it.
package job

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"aussiemate/models"
	"aussiemate/paginate"
	"aussiemate/services/snapshot"
	"aussiemate/status"
	"aussiemate/upstream"

	"go.uber.org/zap"
)

// ListParams are the dashboard's job list controls. Status takes a display
// label (Upcoming/Ongoing/Completed/Cancelled); PaymentStatus is derived, so
// either filter forces the client-side path.
type ListParams struct {
	paginate.Params
	Status        string `form:"status"`
	PaymentStatus string `form:"paymentStatus"`
	Type          string `form:"type"`
	Search        string `form:"search"`
	DateFrom      string `form:"dateFrom"` // YYYY-MM-DD
	DateTo        string `form:"dateTo"`
}

// ListResult is one page of jobs plus where the data came from.
type ListResult struct {
	Items  []models.Job  `json:"items"`
	Meta   paginate.Meta `json:"meta"`
	Source string        `json:"source"`
}

// Service defines the business logic interface for job administration.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	All(ctx context.Context) ([]models.Job, string, error)
	SetPaymentStatus(ctx context.Context, id, paymentStatus string) (string, error)
	RefreshSnapshot(ctx context.Context) (int, error)
}

// DefaultJobService implements Service against the upstream core API.
type DefaultJobService struct {
	Upstream  *upstream.Client
	Snapshots *snapshot.Store
	Logger    *zap.Logger
}

func (s *DefaultJobService) fetchPage() paginate.FetchPage[models.Job] {
	return func(ctx context.Context, page, perPage int) ([]models.Job, *paginate.Meta, error) {
		query := map[string]string{
			"page":  strconv.Itoa(page),
			"limit": strconv.Itoa(perPage),
		}
		raw, err := s.Upstream.Do(ctx, http.MethodGet, "/jobs", query, nil)
		if err != nil {
			return nil, nil, err
		}
		return paginate.DecodeList[models.Job](raw)
	}
}

func (s *DefaultJobService) List(ctx context.Context, params ListParams) (*ListResult, error) {
	params.Params = params.Params.Normalized()
	fetch := s.fetchPage()

	clientSide := params.Status != "" || params.PaymentStatus != "" ||
		params.Type != "" || params.Search != "" || params.DateFrom != "" || params.DateTo != ""
	if !clientSide {
		items, meta, err := fetch(ctx, params.Page, params.PerPage)
		if err != nil {
			return nil, err
		}
		fillPaymentStatus(items)
		if meta != nil {
			return &ListResult{Items: items, Meta: *meta, Source: "live"}, nil
		}
		pageItems, pageMeta := paginate.Slice(items, params.Params)
		return &ListResult{Items: pageItems, Meta: pageMeta, Source: "fetch_all"}, nil
	}

	all, source, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	filtered := filterJobs(all, params)
	pageItems, pageMeta := paginate.Slice(filtered, params.Params)
	return &ListResult{Items: pageItems, Meta: pageMeta, Source: source}, nil
}

// All returns every job, preferring a materialized snapshot over walking the
// upstream pages.
func (s *DefaultJobService) All(ctx context.Context) ([]models.Job, string, error) {
	if s.Snapshots != nil {
		if jobs, err := s.Snapshots.LoadJobs(ctx); err == nil {
			fillPaymentStatus(jobs)
			return jobs, "snapshot", nil
		}
	}
	all, err := paginate.CollectAll(ctx, s.fetchPage())
	if err != nil {
		return nil, "", err
	}
	fillPaymentStatus(all)
	return all, "fetch_all", nil
}

// fillPaymentStatus derives the payment status for jobs whose record lacks
// one.
func fillPaymentStatus(jobs []models.Job) {
	for i := range jobs {
		if jobs[i].PaymentStatus == "" {
			jobs[i].PaymentStatus = status.DerivePaymentStatus(status.JobLabel(jobs[i].Status))
		}
	}
}

func filterJobs(all []models.Job, params ListParams) []models.Job {
	filtered := make([]models.Job, 0, len(all))
	search := strings.ToLower(strings.TrimSpace(params.Search))
	from, to := parseDate(params.DateFrom), parseDate(params.DateTo)
	for _, j := range all {
		if params.Status != "" && !strings.EqualFold(status.JobLabel(j.Status), params.Status) {
			continue
		}
		if params.PaymentStatus != "" {
			ps := status.Normalize(status.CategoryPayment, j.PaymentStatus).Label
			if ps == status.UnknownLabel {
				ps = status.DerivePaymentStatus(status.JobLabel(j.Status))
			}
			if !strings.EqualFold(ps, params.PaymentStatus) {
				continue
			}
		}
		if params.Type != "" && !strings.EqualFold(j.Type, params.Type) {
			continue
		}
		if !from.IsZero() || !to.IsZero() {
			when := jobDate(j)
			if when.IsZero() {
				continue
			}
			if !from.IsZero() && when.Before(from) {
				continue
			}
			// The window end is inclusive of the whole dateTo day.
			if !to.IsZero() && !when.Before(to.Add(24*time.Hour)) {
				continue
			}
		}
		if search != "" {
			hay := strings.ToLower(j.JobID + " " + j.Customer.Name + " " + j.Cleaner.Name + " " + j.Address)
			if !strings.Contains(hay, search) {
				continue
			}
		}
		filtered = append(filtered, j)
	}
	return filtered
}

func jobDate(j models.Job) time.Time {
	if j.ScheduledAt != nil {
		return *j.ScheduledAt
	}
	if j.CreatedAt != nil {
		return *j.CreatedAt
	}
	return time.Time{}
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Get fetches a single job.
func (s *DefaultJobService) Get(ctx context.Context, id string) (*models.Job, error) {
	raw, err := s.Upstream.Do(ctx, http.MethodGet, "/jobs/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	j, err := decodeJob(raw)
	if err != nil {
		return nil, err
	}
	if j.PaymentStatus == "" {
		j.PaymentStatus = status.DerivePaymentStatus(status.JobLabel(j.Status))
	}
	return j, nil
}

func decodeJob(raw []byte) (*models.Job, error) {
	var j models.Job
	if err := json.Unmarshal(raw, &j); err == nil && j.ID != "" {
		return &j, nil
	}
	var wrapped struct {
		Data models.Job `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data.ID != "" {
		j = wrapped.Data
		return &j, nil
	}
	return nil, fmt.Errorf("unrecognized job response shape")
}

// SetPaymentStatus overrides a job's payment status. Several speculative
// PUT/PATCH shapes are in the wild; they are tried in order.
func (s *DefaultJobService) SetPaymentStatus(ctx context.Context, id, paymentStatus string) (string, error) {
	if paymentStatus == "" {
		return "", fmt.Errorf("payment status is required")
	}
	strategies := []upstream.Strategy[map[string]interface{}]{
		{
			Name: "put_payment_status",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				return s.Upstream.DoJSON(ctx, http.MethodPut, "/jobs/"+id+"/payment-status", nil,
					map[string]string{"status": paymentStatus})
			},
		},
		{
			Name: "patch_payment_status",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				return s.Upstream.DoJSON(ctx, http.MethodPatch, "/jobs/"+id+"/payment-status", nil,
					map[string]string{"status": paymentStatus})
			},
		},
		{
			Name: "put_job_camel_field",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				return s.Upstream.DoJSON(ctx, http.MethodPut, "/jobs/"+id, nil,
					map[string]string{"paymentStatus": paymentStatus})
			},
		},
		{
			Name: "patch_job_snake_field",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				return s.Upstream.DoJSON(ctx, http.MethodPatch, "/jobs/"+id, nil,
					map[string]string{"payment_status": paymentStatus})
			},
		},
	}
	_, name, err := upstream.ProbeFirst(ctx, s.Logger, "job.payment_status", strategies)
	return name, err
}

// RefreshSnapshot walks the full job list and materializes it.
func (s *DefaultJobService) RefreshSnapshot(ctx context.Context) (int, error) {
	if s.Snapshots == nil {
		return 0, fmt.Errorf("snapshot store not configured")
	}
	all, err := paginate.CollectAll(ctx, s.fetchPage())
	if err != nil {
		return 0, err
	}
	if err := s.Snapshots.SaveJobs(ctx, all); err != nil {
		return 0, err
	}
	s.Logger.Info("job snapshot refreshed", zap.Int("count", len(all)))
	return len(all), nil
}
