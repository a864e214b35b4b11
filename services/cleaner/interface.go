package cleaner

import (
	"context"

	"aussiemate/models"
	"aussiemate/paginate"
)

// ListParams are the dashboard's cleaner list controls. Status and Badge are
// display-vocabulary values; filtering by them happens client-side because
// the upstream only understands its own raw enums.
type ListParams struct {
	paginate.Params
	Status string `form:"status"`
	Badge  string `form:"badge"`
	Search string `form:"search"`
}

// ListResult is one page of cleaners plus where the data came from.
type ListResult struct {
	Items  []models.Cleaner `json:"items"`
	Meta   paginate.Meta    `json:"meta"`
	Source string           `json:"source"` // "live", "fetch_all" or "snapshot"
}

// Service defines the business logic interface for cleaner and KYC
// administration.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, id string) (*models.Cleaner, error)
	Jobs(ctx context.Context, id string, p paginate.Params) ([]models.Job, paginate.Meta, error)

	KYCList(ctx context.Context, params ListParams) (*ListResult, error)
	KYCStats(ctx context.Context) models.KYCStats

	// Write operations return the name of the endpoint shape that carried the
	// change, for the audit trail.
	SetDocumentStatus(ctx context.Context, id, docKey, verdict string) (string, error)
	SetKYCVerified(ctx context.Context, id string, verified bool) (string, error)
	SetKYCStatus(ctx context.Context, id, kycStatus string) (string, error)
	VerifyABN(ctx context.Context, id, abn string) (*models.ABNResult, string, error)

	RefreshSnapshot(ctx context.Context) (int, error)
}
