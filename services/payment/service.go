// Package payment builds the payments/escrow view of jobs and, when Stripe
// is configured, enriches transaction detail with live gateway state.
// Payment capture and escrow release themselves happen upstream; this service
// only renders and relabels.
package payment

import (
	"context"
	"math"
	"strings"

	"aussiemate/models"
	"aussiemate/paginate"
	"aussiemate/services/job"
	"aussiemate/status"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// Platform split of a job amount.
const (
	PlatformFeeRate = 0.15
	GSTRate         = 0.10
)

// ListParams are the dashboard's transaction list controls. EscrowStatus is
// derived from job status when absent, so it always filters client-side.
type ListParams struct {
	paginate.Params
	EscrowStatus string `form:"escrowStatus"`
	Search       string `form:"search"`
}

// ListResult is one page of transactions.
type ListResult struct {
	Items  []models.Transaction `json:"items"`
	Meta   paginate.Meta        `json:"meta"`
	Source string               `json:"source"`
}

// Service defines the business logic interface for the payments view.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, jobID string) (*models.Transaction, error)
}

// DefaultPaymentService implements Service over the job service.
type DefaultPaymentService struct {
	Jobs          job.Service
	Logger        *zap.Logger
	StripeEnabled bool
}

// Breakdown splits a gross amount into platform fee, GST and the cleaner's
// net, each rounded to cents.
func Breakdown(gross float64) models.FeeBreakdown {
	fee := round2(gross * PlatformFeeRate)
	gst := round2(gross * GSTRate)
	return models.FeeBreakdown{
		Gross:       round2(gross),
		PlatformFee: fee,
		GST:         gst,
		Net:         round2(gross - fee - gst),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FromJob renders a job as a transaction. The escrow balance is the cleaner's
// net while funds are held and zero once released or returned.
func FromJob(j models.Job) models.Transaction {
	amounts := Breakdown(j.Amount)
	escrowStatus := j.PaymentStatus
	if escrowStatus == "" {
		escrowStatus = status.DerivePaymentStatus(status.JobLabel(j.Status))
	}
	balance := 0.0
	label := status.Normalize(status.CategoryPayment, escrowStatus).Label
	if label == status.PaymentHeld || label == status.PaymentPending || label == status.UnknownLabel {
		balance = amounts.Net
	}
	return models.Transaction{
		ID:              "txn-" + j.ID,
		JobID:           j.ID,
		JobRef:          j.JobID,
		CustomerName:    j.Customer.Name,
		CleanerName:     j.Cleaner.Name,
		Amounts:         amounts,
		EscrowBalance:   balance,
		EscrowStatus:    escrowStatus,
		Method:          j.PaymentMethod,
		PaymentIntentID: j.PaymentIntent,
		CreatedAt:       j.CreatedAt,
	}
}

func (s *DefaultPaymentService) List(ctx context.Context, params ListParams) (*ListResult, error) {
	params.Params = params.Params.Normalized()
	jobs, source, err := s.Jobs.All(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(params.Search))
	transactions := make([]models.Transaction, 0, len(jobs))
	for _, j := range jobs {
		txn := FromJob(j)
		if params.EscrowStatus != "" {
			label := status.Normalize(status.CategoryPayment, txn.EscrowStatus).Label
			if !strings.EqualFold(label, params.EscrowStatus) {
				continue
			}
		}
		if search != "" {
			hay := strings.ToLower(txn.JobRef + " " + txn.CustomerName + " " + txn.CleanerName)
			if !strings.Contains(hay, search) {
				continue
			}
		}
		transactions = append(transactions, txn)
	}

	pageItems, pageMeta := paginate.Slice(transactions, params.Params)
	return &ListResult{Items: pageItems, Meta: pageMeta, Source: source}, nil
}

func (s *DefaultPaymentService) Get(ctx context.Context, jobID string) (*models.Transaction, error) {
	j, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	txn := FromJob(*j)
	s.enrichFromStripe(&txn)
	return &txn, nil
}

// enrichFromStripe attaches live payment intent state when the transaction
// carries a reference and Stripe is configured. Failures only log; the
// transaction renders without gateway detail.
func (s *DefaultPaymentService) enrichFromStripe(txn *models.Transaction) {
	if !s.StripeEnabled || txn.PaymentIntentID == "" {
		return
	}
	pi, err := paymentintent.Get(txn.PaymentIntentID, &stripe.PaymentIntentParams{})
	if err != nil {
		s.Logger.Warn("failed to fetch payment intent",
			zap.String("paymentIntent", txn.PaymentIntentID),
			zap.Error(err))
		return
	}
	txn.Gateway = &models.GatewayDetails{
		Status:         string(pi.Status),
		Amount:         pi.Amount,
		AmountReceived: pi.AmountReceived,
		Currency:       string(pi.Currency),
	}
}

// EscrowHeldTotal sums the escrow balances currently held, for the stats
// panel.
func EscrowHeldTotal(jobs []models.Job) float64 {
	total := 0.0
	for _, j := range jobs {
		txn := FromJob(j)
		total += txn.EscrowBalance
	}
	return round2(total)
}

// RevenueTotal sums platform fees over completed jobs.
func RevenueTotal(jobs []models.Job) float64 {
	total := 0.0
	for _, j := range jobs {
		if status.JobLabel(j.Status) != status.JobCompleted {
			continue
		}
		total += Breakdown(j.Amount).PlatformFee
	}
	return round2(total)
}
