// Package paginate compensates for upstream list endpoints that may or may
// not return pagination metadata. When the envelope is present and the filter
// is expressible upstream, pages pass through; otherwise the full result set
// is walked into memory and re-paginated here.
package paginate

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	// DefaultPerPage is the page size used when the caller does not ask for one.
	DefaultPerPage = 10
	// FetchAllPerPage is the page size used when walking the entire result set.
	FetchAllPerPage = 100
	// MaxPageIterations caps a fetch-all walk in case the upstream never
	// signals the last page.
	MaxPageIterations = 100
)

// Meta is the pagination envelope of a list response.
type Meta struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Params selects a page of a result set.
type Params struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"perPage" json:"perPage"`
}

// Normalized returns the params with defaults applied and out-of-range values
// clamped.
func (p Params) Normalized() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	return p
}

// TotalPages computes the page count for n items at the given page size,
// never less than 1.
func TotalPages(n, perPage int) int {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	pages := (n + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Slice returns page p.Page (1-indexed) of items along with the resulting
// metadata. Pages past the end come back empty, not as an error.
func Slice[T any](items []T, p Params) ([]T, Meta) {
	p = p.Normalized()
	meta := Meta{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      len(items),
		TotalPages: TotalPages(len(items), p.PerPage),
	}
	start := (p.Page - 1) * p.PerPage
	if start >= len(items) {
		return []T{}, meta
	}
	end := start + p.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], meta
}

// FetchPage loads one upstream page. A nil Meta means the response carried no
// pagination envelope.
type FetchPage[T any] func(ctx context.Context, page, perPage int) ([]T, *Meta, error)

// CollectAll walks every upstream page sequentially into one slice. It stops
// on an empty page, a short page when there is no envelope, or when the
// envelope reports the last page. The iteration cap guards against an
// upstream that keeps returning the same full page forever.
func CollectAll[T any](ctx context.Context, fetch FetchPage[T]) ([]T, error) {
	all := make([]T, 0, FetchAllPerPage)
	for page := 1; page <= MaxPageIterations; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, meta, err := fetch(ctx, page, FetchAllPerPage)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
		}
		all = append(all, items...)
		if len(items) == 0 {
			break
		}
		if meta != nil {
			if meta.TotalPages > 0 && page >= meta.TotalPages {
				break
			}
			if meta.Total > 0 && len(all) >= meta.Total {
				break
			}
		} else if len(items) < FetchAllPerPage {
			break
		}
	}
	return all, nil
}

// listEnvelope is the loose shape of upstream list responses: either a bare
// JSON array, or an object with the items under "data" (or "items"/"results")
// and an optional "pagination" object.
type listEnvelope struct {
	Data       json.RawMessage `json:"data"`
	Items      json.RawMessage `json:"items"`
	Results    json.RawMessage `json:"results"`
	Pagination *Meta           `json:"pagination"`
	Meta       *Meta           `json:"meta"`
}

// DecodeList decodes a list response body into items plus the pagination
// envelope if one was present.
func DecodeList[T any](body []byte) ([]T, *Meta, error) {
	var items []T
	// Bare array first.
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil, nil
	}

	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, nil, fmt.Errorf("unrecognized list response shape: %w", err)
	}
	raw := env.Data
	if raw == nil {
		raw = env.Items
	}
	if raw == nil {
		raw = env.Results
	}
	if raw == nil {
		return []T{}, nil, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil, fmt.Errorf("failed to decode list items: %w", err)
	}
	meta := env.Pagination
	if meta == nil {
		meta = env.Meta
	}
	return items, meta, nil
}
