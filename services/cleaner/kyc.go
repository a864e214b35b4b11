package cleaner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"aussiemate/models"
	"aussiemate/upstream"

	"go.uber.org/zap"
)

// KYCStats returns the verification queue aggregate. A failed fetch degrades
// to zeros with a warning; the dashboard renders an empty panel rather than
// an error banner.
func (s *DefaultCleanerService) KYCStats(ctx context.Context) models.KYCStats {
	raw, err := s.Upstream.Do(ctx, http.MethodGet, "/cleaners/kyc/stats", nil, nil)
	if err != nil {
		s.Logger.Warn("failed to load KYC stats, serving zeros", zap.Error(err))
		return models.KYCStats{}
	}
	stats, err := decodeKYCStats(raw)
	if err != nil {
		s.Logger.Warn("unrecognized KYC stats shape, serving zeros", zap.Error(err))
		return models.KYCStats{}
	}
	return stats
}

func decodeKYCStats(raw []byte) (models.KYCStats, error) {
	var stats models.KYCStats
	if err := json.Unmarshal(raw, &stats); err == nil && stats != (models.KYCStats{}) {
		return stats, nil
	}
	var wrapped struct {
		Data models.KYCStats `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return models.KYCStats{}, err
	}
	return wrapped.Data, nil
}

// SetDocumentStatus records an admin verdict on a single KYC document. The
// upstream write contract is unstable, so the known shapes are tried in
// order; the returned name says which one landed.
func (s *DefaultCleanerService) SetDocumentStatus(ctx context.Context, id, docKey, verdict string) (string, error) {
	if verdict == "" {
		return "", fmt.Errorf("verdict is required")
	}

	var strategies []upstream.Strategy[map[string]interface{}]

	// The dedicated action endpoint only exists for approve/reject.
	if action, ok := verdictAction(verdict); ok {
		strategies = append(strategies, upstream.Strategy[map[string]interface{}]{
			Name: "kyc_document_action",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				path := fmt.Sprintf("/cleaners/kyc/%s/documents/%s/%s", id, docKey, action)
				return s.Upstream.DoJSON(ctx, http.MethodPost, path, nil, nil)
			},
		})
	}

	strategies = append(strategies,
		upstream.Strategy[map[string]interface{}]{
			Name: "put_document_status_path",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				path := fmt.Sprintf("/cleaners/%s/documents/%s/%s", id, docKey, verdict)
				return s.Upstream.DoJSON(ctx, http.MethodPut, path, nil, nil)
			},
		},
		upstream.Strategy[map[string]interface{}]{
			Name: "put_document_body",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				path := fmt.Sprintf("/cleaners/%s/documents/%s", id, docKey)
				return s.Upstream.DoJSON(ctx, http.MethodPut, path, nil, map[string]string{"status": verdict})
			},
		},
		upstream.Strategy[map[string]interface{}]{
			Name: "bulk_document_update",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				body := map[string]interface{}{
					"documents": map[string]interface{}{
						docKey: map[string]string{"status": verdict},
					},
				}
				return s.Upstream.DoJSON(ctx, http.MethodPut, "/cleaners/"+id, nil, body)
			},
		},
	)

	_, name, err := upstream.ProbeFirst(ctx, s.Logger, "kyc.document_status", strategies)
	return name, err
}

func verdictAction(verdict string) (string, bool) {
	switch verdict {
	case "approved":
		return "approve", true
	case "rejected":
		return "reject", true
	default:
		return "", false
	}
}

// SetKYCVerified flips the overall verification flag.
func (s *DefaultCleanerService) SetKYCVerified(ctx context.Context, id string, verified bool) (string, error) {
	action := "approve"
	if !verified {
		action = "revoke"
	}
	strategies := []upstream.Strategy[map[string]interface{}]{
		{
			Name: "kyc_action_endpoint",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				return s.Upstream.DoJSON(ctx, http.MethodPut, "/cleaners/kyc/"+id+"/"+action, nil, nil)
			},
		},
		{
			Name: "patch_verified_flag",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				return s.Upstream.DoJSON(ctx, http.MethodPatch, "/cleaners/"+id, nil,
					map[string]bool{"kycVerified": verified})
			},
		},
		{
			Name: "put_kyc_subresource",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				return s.Upstream.DoJSON(ctx, http.MethodPut, "/cleaners/"+id+"/kyc", nil,
					map[string]bool{"verified": verified})
			},
		},
	}
	_, name, err := upstream.ProbeFirst(ctx, s.Logger, "kyc.verified_flag", strategies)
	return name, err
}

// SetKYCStatus overrides the overall KYC status string.
func (s *DefaultCleanerService) SetKYCStatus(ctx context.Context, id, kycStatus string) (string, error) {
	if kycStatus == "" {
		return "", fmt.Errorf("status is required")
	}
	strategies := []upstream.Strategy[map[string]interface{}]{
		{
			Name: "put_kyc_status",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				return s.Upstream.DoJSON(ctx, http.MethodPut, "/cleaners/kyc/"+id+"/status", nil,
					map[string]string{"status": kycStatus})
			},
		},
		{
			Name: "patch_kyc_status_field",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				return s.Upstream.DoJSON(ctx, http.MethodPatch, "/cleaners/"+id, nil,
					map[string]string{"kycStatus": kycStatus})
			},
		},
		{
			Name: "put_kyc_object",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				body := map[string]interface{}{"kyc": map[string]string{"status": kycStatus}}
				return s.Upstream.DoJSON(ctx, http.MethodPut, "/cleaners/"+id, nil, body)
			},
		},
	}
	_, name, err := upstream.ProbeFirst(ctx, s.Logger, "kyc.status_override", strategies)
	return name, err
}
