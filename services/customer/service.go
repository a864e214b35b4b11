// Package customer serves the dashboard's customer views.
package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"aussiemate/models"
	"aussiemate/paginate"
	"aussiemate/upstream"

	"go.uber.org/zap"
)

// ListParams are the dashboard's customer list controls.
type ListParams struct {
	paginate.Params
	Search string `form:"search"`
}

// ListResult is one page of customers.
type ListResult struct {
	Items  []models.Customer `json:"items"`
	Meta   paginate.Meta     `json:"meta"`
	Source string            `json:"source"`
}

// Service defines the business logic interface for customer administration.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, id string) (*models.Customer, error)
	Jobs(ctx context.Context, id string, p paginate.Params) ([]models.Job, paginate.Meta, error)
	Reviews(ctx context.Context, id string, p paginate.Params) ([]models.Review, paginate.Meta, error)
	Count(ctx context.Context) int
}

// DefaultCustomerService implements Service against the upstream core API.
type DefaultCustomerService struct {
	Upstream *upstream.Client
	Logger   *zap.Logger
}

func (s *DefaultCustomerService) fetchPage() paginate.FetchPage[models.Customer] {
	return func(ctx context.Context, page, perPage int) ([]models.Customer, *paginate.Meta, error) {
		query := map[string]string{
			"page":  strconv.Itoa(page),
			"limit": strconv.Itoa(perPage),
		}
		raw, err := s.Upstream.Do(ctx, http.MethodGet, "/customers", query, nil)
		if err != nil {
			return nil, nil, err
		}
		return paginate.DecodeList[models.Customer](raw)
	}
}

func (s *DefaultCustomerService) List(ctx context.Context, params ListParams) (*ListResult, error) {
	params.Params = params.Params.Normalized()
	fetch := s.fetchPage()

	if params.Search == "" {
		items, meta, err := fetch(ctx, params.Page, params.PerPage)
		if err != nil {
			return nil, err
		}
		if meta != nil {
			return &ListResult{Items: items, Meta: *meta, Source: "live"}, nil
		}
		pageItems, pageMeta := paginate.Slice(items, params.Params)
		return &ListResult{Items: pageItems, Meta: pageMeta, Source: "fetch_all"}, nil
	}

	all, err := paginate.CollectAll(ctx, fetch)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(params.Search))
	filtered := make([]models.Customer, 0, len(all))
	for _, c := range all {
		hay := strings.ToLower(c.Name + " " + c.Email + " " + c.Phone)
		if strings.Contains(hay, search) {
			filtered = append(filtered, c)
		}
	}
	pageItems, pageMeta := paginate.Slice(filtered, params.Params)
	return &ListResult{Items: pageItems, Meta: pageMeta, Source: "fetch_all"}, nil
}

func (s *DefaultCustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	raw, err := s.Upstream.Do(ctx, http.MethodGet, "/customers/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	var c models.Customer
	if err := json.Unmarshal(raw, &c); err == nil && c.ID != "" {
		return &c, nil
	}
	var wrapped struct {
		Data models.Customer `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data.ID != "" {
		c = wrapped.Data
		return &c, nil
	}
	return nil, fmt.Errorf("unrecognized customer response shape")
}

func (s *DefaultCustomerService) Jobs(ctx context.Context, id string, p paginate.Params) ([]models.Job, paginate.Meta, error) {
	p = p.Normalized()
	raw, err := s.Upstream.Do(ctx, http.MethodGet, "/customers/"+id+"/jobs", pageQuery(p), nil)
	if err != nil {
		return nil, paginate.Meta{}, err
	}
	items, meta, err := paginate.DecodeList[models.Job](raw)
	if err != nil {
		return nil, paginate.Meta{}, err
	}
	if meta != nil {
		return items, *meta, nil
	}
	pageItems, pageMeta := paginate.Slice(items, p)
	return pageItems, pageMeta, nil
}

func (s *DefaultCustomerService) Reviews(ctx context.Context, id string, p paginate.Params) ([]models.Review, paginate.Meta, error) {
	p = p.Normalized()
	raw, err := s.Upstream.Do(ctx, http.MethodGet, "/customers/"+id+"/reviews", pageQuery(p), nil)
	if err != nil {
		return nil, paginate.Meta{}, err
	}
	items, meta, err := paginate.DecodeList[models.Review](raw)
	if err != nil {
		return nil, paginate.Meta{}, err
	}
	if meta != nil {
		return items, *meta, nil
	}
	pageItems, pageMeta := paginate.Slice(items, p)
	return pageItems, pageMeta, nil
}

// Count returns the total number of customers, degrading to zero on failure.
func (s *DefaultCustomerService) Count(ctx context.Context) int {
	items, meta, err := s.fetchPage()(ctx, 1, 1)
	if err != nil {
		s.Logger.Warn("failed to count customers, serving zero", zap.Error(err))
		return 0
	}
	if meta != nil && meta.Total > 0 {
		return meta.Total
	}
	// No envelope: the page is the full set.
	if len(items) > 1 {
		return len(items)
	}
	all, err := paginate.CollectAll(ctx, s.fetchPage())
	if err != nil {
		s.Logger.Warn("failed to count customers, serving zero", zap.Error(err))
		return 0
	}
	return len(all)
}

func pageQuery(p paginate.Params) map[string]string {
	return map[string]string{
		"page":  strconv.Itoa(p.Page),
		"limit": strconv.Itoa(p.PerPage),
	}
}
