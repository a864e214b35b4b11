package customer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aussiemate/models"
	"aussiemate/paginate"
	"aussiemate/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *DefaultCustomerService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &DefaultCustomerService{
		Upstream: upstream.NewClient(srv.URL, 5*time.Second, zap.NewNop()),
		Logger:   zap.NewNop(),
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestListSearchWalksAllPages(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			writeJSON(w, []models.Customer{})
			return
		}
		writeJSON(w, []models.Customer{
			{ID: "a", Name: "Priya Shah"},
			{ID: "b", Name: "Mark Webb"},
		})
	})

	result, err := svc.List(context.Background(), ListParams{Search: "priya"})
	require.NoError(t, err)
	assert.Equal(t, "fetch_all", result.Source)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "a", result.Items[0].ID)
}

func TestGetDecodesWrappedCustomer(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/u1", r.URL.Path)
		writeJSON(w, map[string]interface{}{"data": models.Customer{ID: "u1", Name: "Priya"}})
	})

	c, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Priya", c.Name)
}

func TestCountPrefersEnvelopeTotal(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"data":       []models.Customer{{ID: "a"}},
			"pagination": paginate.Meta{Page: 1, PerPage: 1, Total: 412, TotalPages: 412},
		})
	})
	assert.Equal(t, 412, svc.Count(context.Background()))
}

func TestCountDegradesToZero(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	assert.Equal(t, 0, svc.Count(context.Background()))
}

func TestReviewsRepaginateWithoutEnvelope(t *testing.T) {
	reviews := make([]models.Review, 12)
	for i := range reviews {
		reviews[i].ID = string(rune('a' + i))
	}
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/u1/reviews", r.URL.Path)
		writeJSON(w, reviews)
	})

	items, meta, err := svc.Reviews(context.Background(), "u1", paginate.Params{Page: 2, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 12, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
}
