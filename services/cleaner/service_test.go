package cleaner

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

func newTestService(t *testing.T, handler http.HandlerFunc) *DefaultCleanerService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &DefaultCleanerService{
		Upstream: upstream.NewClient(srv.URL, 5*time.Second, zap.NewNop()),
		Logger:   zap.NewNop(),
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestListPassesThroughWithEnvelope(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cleaners", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		writeJSON(w, map[string]interface{}{
			"data":       []models.Cleaner{{ID: "c11"}},
			"pagination": paginate.Meta{Page: 2, PerPage: 10, Total: 11, TotalPages: 2},
		})
	})

	result, err := svc.List(context.Background(), ListParams{Params: paginate.Params{Page: 2}})
	require.NoError(t, err)
	assert.Equal(t, "live", result.Source)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 2, result.Meta.Page)
	assert.Equal(t, 11, result.Meta.Total)
}

func TestListRepaginatesWithoutEnvelope(t *testing.T) {
	cleaners := make([]models.Cleaner, 15)
	for i := range cleaners {
		cleaners[i].ID = string(rune('a' + i))
	}
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, cleaners)
	})

	result, err := svc.List(context.Background(), ListParams{Params: paginate.Params{Page: 2, PerPage: 10}})
	require.NoError(t, err)
	assert.Equal(t, "fetch_all", result.Source)
	assert.Len(t, result.Items, 5)
	assert.Equal(t, 15, result.Meta.Total)
	assert.Equal(t, 2, result.Meta.TotalPages)
}

func TestListStatusFilterWalksEverything(t *testing.T) {
	all := []models.Cleaner{
		{ID: "a", ApprovalStatus: "approved"},
		{ID: "b", ApprovalStatus: "submitted"},
		{ID: "c", KYC: models.CleanerKYC{Status: "no_documents"}},
		{ID: "d", ApprovalStatus: "rejected"},
	}
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			writeJSON(w, []models.Cleaner{})
			return
		}
		writeJSON(w, all)
	})

	// "Pending" covers submitted and the no-documents spelling.
	result, err := svc.List(context.Background(), ListParams{Status: "Pending"})
	require.NoError(t, err)
	assert.Equal(t, "fetch_all", result.Source)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "b", result.Items[0].ID)
	assert.Equal(t, "c", result.Items[1].ID)
}

func TestListSearchFilter(t *testing.T) {
	all := []models.Cleaner{
		{ID: "a", Name: "Sarah Nguyen", Email: "sarah@example.com"},
		{ID: "b", Name: "Tom Ellis", Email: "tom@example.com"},
	}
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			writeJSON(w, []models.Cleaner{})
			return
		}
		writeJSON(w, all)
	})

	result, err := svc.List(context.Background(), ListParams{Search: "sarah"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "a", result.Items[0].ID)
}

func TestGetFallsBackThroughShapes(t *testing.T) {
	var paths []string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path+"?"+r.URL.RawQuery)
		switch {
		case r.URL.Path == "/cleaners/c7":
			w.WriteHeader(http.StatusNotFound)
		case r.URL.Query().Get("id") == "c7":
			// Deployment ignores unknown filters and returns other cleaners.
			writeJSON(w, []models.Cleaner{{ID: "zz"}})
		case r.URL.Query().Get("cleanerId") == "c7":
			writeJSON(w, map[string]interface{}{"data": []models.Cleaner{{ID: "c7", Name: "Found"}}})
		default:
			writeJSON(w, []models.Cleaner{})
		}
	})

	c, err := svc.Get(context.Background(), "c7")
	require.NoError(t, err)
	assert.Equal(t, "Found", c.Name)
	require.Len(t, paths, 3)
	assert.Equal(t, "/cleaners/c7?", paths[0])
}

func TestGetScansFullListAsLastResort(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/cleaners/c2":
			w.WriteHeader(http.StatusNotFound)
		case r.URL.Query().Get("id") != "" || r.URL.Query().Get("cleanerId") != "":
			w.WriteHeader(http.StatusNotFound)
		case r.URL.Query().Get("page") == "1":
			writeJSON(w, []models.Cleaner{{ID: "c1"}, {ID: "c2", Name: "Scan Hit"}})
		default:
			writeJSON(w, []models.Cleaner{})
		}
	})

	c, err := svc.Get(context.Background(), "c2")
	require.NoError(t, err)
	assert.Equal(t, "Scan Hit", c.Name)
}

func TestGetUnauthorizedStopsProbing(t *testing.T) {
	calls := 0
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := svc.Get(context.Background(), "c1")
	assert.ErrorIs(t, err, upstream.ErrUnauthorized)
	assert.Equal(t, 1, calls)
}

func TestSetDocumentStatusPrefersActionEndpoint(t *testing.T) {
	var hits []string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.Method+" "+r.URL.Path)
		writeJSON(w, map[string]string{"message": "ok"})
	})

	strategy, err := svc.SetDocumentStatus(context.Background(), "c1", "police_check", "approved")
	require.NoError(t, err)
	assert.Equal(t, "kyc_document_action", strategy)
	assert.Equal(t, []string{"POST /cleaners/kyc/c1/documents/police_check/approve"}, hits)
}

func TestSetDocumentStatusNonVerdictSkipsActionEndpoint(t *testing.T) {
	var hits []string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.Method+" "+r.URL.Path)
		writeJSON(w, map[string]string{"message": "ok"})
	})

	strategy, err := svc.SetDocumentStatus(context.Background(), "c1", "police_check", "pending")
	require.NoError(t, err)
	assert.Equal(t, "put_document_status_path", strategy)
	assert.Equal(t, []string{"PUT /cleaners/c1/documents/police_check/pending"}, hits)
}

func TestSetDocumentStatusRequiresVerdict(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no upstream call expected")
	})
	_, err := svc.SetDocumentStatus(context.Background(), "c1", "doc", "")
	assert.Error(t, err)
}

func TestSetKYCVerifiedFallsBack(t *testing.T) {
	var hits []string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.Method+" "+r.URL.Path)
		if r.URL.Path == "/cleaners/kyc/c1/revoke" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, map[string]string{"message": "ok"})
	})

	strategy, err := svc.SetKYCVerified(context.Background(), "c1", false)
	require.NoError(t, err)
	assert.Equal(t, "patch_verified_flag", strategy)
	assert.Equal(t, []string{
		"PUT /cleaners/kyc/c1/revoke",
		"PATCH /cleaners/c1",
	}, hits)
}

func TestKYCStatsDegradesToZeros(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	stats := svc.KYCStats(context.Background())
	assert.Equal(t, models.KYCStats{}, stats)
}

func TestKYCStatsDecodesWrappedShape(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"data": models.KYCStats{Total: 9, Pending: 4, Approved: 3, Rejected: 2},
		})
	})

	stats := svc.KYCStats(context.Background())
	assert.Equal(t, 9, stats.Total)
	assert.Equal(t, 4, stats.Pending)
}
