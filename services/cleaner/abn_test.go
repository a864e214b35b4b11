package cleaner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aussiemate/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateABN(t *testing.T) {
	tests := []struct {
		name string
		abn  string
		want bool
	}{
		{"valid", "51824753556", true},
		{"valid with spaces", "51 824 753 556", true},
		{"checksum failure", "51824753557", false},
		{"too short", "5182475355", false},
		{"too long", "518247535561", false},
		{"letters", "51824&5355a", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateABN(tt.abn))
		})
	}
}

func TestVerifyABNChecksumFailureSkipsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("an invalid ABN must never reach the upstream")
	}))
	defer srv.Close()

	svc := &DefaultCleanerService{
		Upstream: upstream.NewClient(srv.URL, time.Second, zap.NewNop()),
		Logger:   zap.NewNop(),
	}

	result, strategy, err := svc.VerifyABN(context.Background(), "c1", "11111111111")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Empty(t, strategy)
	assert.NotEmpty(t, result.Message)
}

func TestVerifyABNFallsThroughShapes(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		// The action endpoint does not exist on this deployment.
		if r.URL.Path == "/cleaners/kyc/c1/abn/verify" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	svc := &DefaultCleanerService{
		Upstream: upstream.NewClient(srv.URL, time.Second, zap.NewNop()),
		Logger:   zap.NewNop(),
	}

	result, strategy, err := svc.VerifyABN(context.Background(), "c1", "51824753556")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.True(t, result.Verified)
	assert.Equal(t, "put_abn_subresource", strategy)
	assert.Equal(t, []string{
		"POST /cleaners/kyc/c1/abn/verify",
		"PUT /cleaners/c1/abn",
	}, paths)
}
