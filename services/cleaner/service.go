package cleaner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"aussiemate/models"
	"aussiemate/paginate"
	"aussiemate/services/snapshot"
	"aussiemate/status"
	"aussiemate/upstream"

	"go.uber.org/zap"
)

// DefaultCleanerService implements Service against the upstream core API.
type DefaultCleanerService struct {
	Upstream  *upstream.Client
	Snapshots *snapshot.Store // optional; nil disables snapshot reads
	Logger    *zap.Logger
}

func (s *DefaultCleanerService) fetchPage(path string) paginate.FetchPage[models.Cleaner] {
	return func(ctx context.Context, page, perPage int) ([]models.Cleaner, *paginate.Meta, error) {
		query := map[string]string{
			"page":  strconv.Itoa(page),
			"limit": strconv.Itoa(perPage),
		}
		raw, err := s.Upstream.Do(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return nil, nil, err
		}
		return paginate.DecodeList[models.Cleaner](raw)
	}
}

// List returns one page of cleaners. When the upstream provides a pagination
// envelope and the filters are plain, the page passes through; any display
// vocabulary filter or search term forces the fetch-all path, because the
// upstream cannot filter by labels it does not know.
func (s *DefaultCleanerService) List(ctx context.Context, params ListParams) (*ListResult, error) {
	return s.list(ctx, "/cleaners", params)
}

// KYCList is the verification queue view of the same data.
func (s *DefaultCleanerService) KYCList(ctx context.Context, params ListParams) (*ListResult, error) {
	return s.list(ctx, "/cleaners/kyc", params)
}

func (s *DefaultCleanerService) list(ctx context.Context, path string, params ListParams) (*ListResult, error) {
	params.Params = params.Params.Normalized()
	fetch := s.fetchPage(path)

	clientSide := params.Status != "" || params.Badge != "" || params.Search != ""
	if !clientSide {
		items, meta, err := fetch(ctx, params.Page, params.PerPage)
		if err != nil {
			return nil, err
		}
		if meta != nil {
			return &ListResult{Items: items, Meta: *meta, Source: "live"}, nil
		}
		// No envelope: treat what came back as the whole set and re-paginate.
		pageItems, pageMeta := paginate.Slice(items, params.Params)
		return &ListResult{Items: pageItems, Meta: pageMeta, Source: "fetch_all"}, nil
	}

	all, source, err := s.allCleaners(ctx, fetch)
	if err != nil {
		return nil, err
	}
	filtered := filterCleaners(all, params)
	pageItems, pageMeta := paginate.Slice(filtered, params.Params)
	return &ListResult{Items: pageItems, Meta: pageMeta, Source: source}, nil
}

// allCleaners prefers a materialized snapshot and falls back to walking every
// upstream page.
func (s *DefaultCleanerService) allCleaners(ctx context.Context, fetch paginate.FetchPage[models.Cleaner]) ([]models.Cleaner, string, error) {
	if s.Snapshots != nil {
		if cleaners, err := s.Snapshots.LoadCleaners(ctx); err == nil {
			return cleaners, "snapshot", nil
		}
	}
	all, err := paginate.CollectAll(ctx, fetch)
	if err != nil {
		return nil, "", err
	}
	return all, "fetch_all", nil
}

func filterCleaners(all []models.Cleaner, params ListParams) []models.Cleaner {
	filtered := make([]models.Cleaner, 0, len(all))
	search := strings.ToLower(strings.TrimSpace(params.Search))
	for _, c := range all {
		if params.Status != "" {
			label := status.Normalize(status.CategoryApproval, approvalValue(c)).Label
			if !strings.EqualFold(label, params.Status) {
				continue
			}
		}
		if params.Badge != "" && !strings.EqualFold(c.Badge, params.Badge) {
			continue
		}
		if search != "" {
			hay := strings.ToLower(c.Name + " " + c.Email + " " + c.Phone)
			if !strings.Contains(hay, search) {
				continue
			}
		}
		filtered = append(filtered, c)
	}
	return filtered
}

// approvalValue picks whichever field the upstream populated for approval
// state; both have been observed, and absence means a cleaner who has not
// uploaded anything yet.
func approvalValue(c models.Cleaner) string {
	if c.ApprovalStatus != "" {
		return c.ApprovalStatus
	}
	return c.KYC.Status
}

// Get looks a cleaner up by ID. The direct endpoint does not exist on every
// deployment, so this probes the known shapes and finally scans the full list.
func (s *DefaultCleanerService) Get(ctx context.Context, id string) (*models.Cleaner, error) {
	strategies := []upstream.Strategy[*models.Cleaner]{
		{
			Name: "direct_id",
			Call: func(ctx context.Context) (*models.Cleaner, error) {
				raw, err := s.Upstream.Do(ctx, http.MethodGet, "/cleaners/"+id, nil, nil)
				if err != nil {
					return nil, err
				}
				return decodeCleaner(raw)
			},
		},
		{
			Name: "query_id",
			Call: func(ctx context.Context) (*models.Cleaner, error) {
				return s.findInQuery(ctx, id, map[string]string{"id": id})
			},
		},
		{
			Name: "query_cleaner_id",
			Call: func(ctx context.Context) (*models.Cleaner, error) {
				return s.findInQuery(ctx, id, map[string]string{"cleanerId": id})
			},
		},
		{
			Name: "scan_full_list",
			Call: func(ctx context.Context) (*models.Cleaner, error) {
				all, err := paginate.CollectAll(ctx, s.fetchPage("/cleaners"))
				if err != nil {
					return nil, err
				}
				for i := range all {
					if all[i].ID == id {
						return &all[i], nil
					}
				}
				return nil, fmt.Errorf("cleaner %s not present in list", id)
			},
		},
	}
	c, _, err := upstream.ProbeFirst(ctx, s.Logger, "cleaner.get", strategies)
	return c, err
}

func (s *DefaultCleanerService) findInQuery(ctx context.Context, id string, query map[string]string) (*models.Cleaner, error) {
	raw, err := s.Upstream.Do(ctx, http.MethodGet, "/cleaners", query, nil)
	if err != nil {
		return nil, err
	}
	items, _, err := paginate.DecodeList[models.Cleaner](raw)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("cleaner %s not returned for query", id)
}

// decodeCleaner tolerates both a bare cleaner object and a {data: {...}}
// wrapper.
func decodeCleaner(raw []byte) (*models.Cleaner, error) {
	var c models.Cleaner
	if err := json.Unmarshal(raw, &c); err == nil && c.ID != "" {
		return &c, nil
	}
	var wrapped struct {
		Data models.Cleaner `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data.ID != "" {
		c = wrapped.Data
		return &c, nil
	}
	return nil, fmt.Errorf("unrecognized cleaner response shape")
}

// Jobs returns a cleaner's job history, re-paginated when the upstream sends
// no envelope.
func (s *DefaultCleanerService) Jobs(ctx context.Context, id string, p paginate.Params) ([]models.Job, paginate.Meta, error) {
	p = p.Normalized()
	query := map[string]string{
		"page":  strconv.Itoa(p.Page),
		"limit": strconv.Itoa(p.PerPage),
	}
	raw, err := s.Upstream.Do(ctx, http.MethodGet, "/cleaners/"+id+"/jobs", query, nil)
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

// RefreshSnapshot walks the full cleaner list and materializes it.
func (s *DefaultCleanerService) RefreshSnapshot(ctx context.Context) (int, error) {
	if s.Snapshots == nil {
		return 0, fmt.Errorf("snapshot store not configured")
	}
	all, err := paginate.CollectAll(ctx, s.fetchPage("/cleaners"))
	if err != nil {
		return 0, err
	}
	if err := s.Snapshots.SaveCleaners(ctx, all); err != nil {
		return 0, err
	}
	s.Logger.Info("cleaner snapshot refreshed", zap.Int("count", len(all)))
	return len(all), nil
}
