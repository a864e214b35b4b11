package cleaner

import (
	"context"
	"net/http"
	"strings"
	"unicode"

	"aussiemate/models"
	"aussiemate/upstream"
)

// abnWeights are the ABR checksum weights for the 11 ABN digits.
var abnWeights = [11]int{10, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19}

// ValidateABN checks the Australian Business Number checksum: 11 digits,
// subtract 1 from the first, weighted sum divisible by 89. Spaces are
// ignored.
func ValidateABN(abn string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, abn)
	if len(cleaned) != 11 {
		return false
	}
	sum := 0
	for i, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
		digit := int(r - '0')
		if i == 0 {
			digit--
		}
		sum += digit * abnWeights[i]
	}
	return sum%89 == 0
}

// VerifyABN validates the ABN locally, then records the verification
// upstream through the known endpoint shapes. A checksum failure never
// reaches the upstream.
func (s *DefaultCleanerService) VerifyABN(ctx context.Context, id, abn string) (*models.ABNResult, string, error) {
	if !ValidateABN(abn) {
		return &models.ABNResult{
			ABN:     abn,
			Valid:   false,
			Message: "ABN failed checksum validation",
		}, "", nil
	}

	strategies := []upstream.Strategy[map[string]interface{}]{
		{
			Name: "kyc_abn_action",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				return s.Upstream.DoJSON(ctx, http.MethodPost, "/cleaners/kyc/"+id+"/abn/verify", nil,
					map[string]string{"abn": abn})
			},
		},
		{
			Name: "put_abn_subresource",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				return s.Upstream.DoJSON(ctx, http.MethodPut, "/cleaners/"+id+"/abn", nil,
					map[string]interface{}{"abn": abn, "verified": true})
			},
		},
		{
			Name: "patch_abn_fields",
			Call: func(ctx context.Context) (map[string]interface{}, error) {
				return s.Upstream.DoJSON(ctx, http.MethodPatch, "/cleaners/"+id, nil,
					map[string]interface{}{"abn": abn, "abnVerified": true})
			},
		},
	}

	_, name, err := upstream.ProbeFirst(ctx, s.Logger, "kyc.abn_verify", strategies)
	if err != nil {
		return nil, "", err
	}
	return &models.ABNResult{
		ABN:      abn,
		Valid:    true,
		Verified: true,
		Message:  "ABN verified",
	}, name, nil
}
