package payment

import (
	"testing"
	"time"

	"aussiemate/models"
	"aussiemate/status"

	"github.com/stretchr/testify/assert"
)

func TestBreakdown(t *testing.T) {
	b := Breakdown(100)
	assert.Equal(t, 100.0, b.Gross)
	assert.Equal(t, 15.0, b.PlatformFee)
	assert.Equal(t, 10.0, b.GST)
	assert.Equal(t, 75.0, b.Net)
}

func TestBreakdownRoundsToCents(t *testing.T) {
	b := Breakdown(99.99)
	assert.Equal(t, 99.99, b.Gross)
	assert.Equal(t, 15.0, b.PlatformFee)
	assert.Equal(t, 10.0, b.GST)
	assert.Equal(t, 74.99, b.Net)

	b = Breakdown(0)
	assert.Equal(t, 0.0, b.PlatformFee)
	assert.Equal(t, 0.0, b.Net)
}

func TestFromJobDerivesEscrowStatus(t *testing.T) {
	tests := []struct {
		jobStatus   string
		wantEscrow  string
		wantBalance float64
	}{
		{"scheduled", status.PaymentHeld, 75},
		{"in_progress", status.PaymentHeld, 75},
		{"completed", status.PaymentReleased, 0},
		{"cancelled", status.PaymentCancelled, 0},
		// Unrecognized job states keep funds held.
		{"mystery", status.PaymentHeld, 75},
	}
	now := time.Now()
	for _, tt := range tests {
		t.Run(tt.jobStatus, func(t *testing.T) {
			j := models.Job{
				ID:        "j1",
				Status:    tt.jobStatus,
				Amount:    100,
				CreatedAt: &now,
			}
			txn := FromJob(j)
			assert.Equal(t, tt.wantEscrow, txn.EscrowStatus)
			assert.Equal(t, tt.wantBalance, txn.EscrowBalance)
			assert.Equal(t, "txn-j1", txn.ID)
		})
	}
}

func TestFromJobPrefersExplicitPaymentStatus(t *testing.T) {
	j := models.Job{
		ID:            "j2",
		Status:        "completed",
		PaymentStatus: "refunded",
		Amount:        200,
	}
	txn := FromJob(j)
	assert.Equal(t, "refunded", txn.EscrowStatus)
	assert.Equal(t, 0.0, txn.EscrowBalance)
}

func TestEscrowHeldTotal(t *testing.T) {
	jobs := []models.Job{
		{ID: "a", Status: "scheduled", Amount: 100},  // held: net 75
		{ID: "b", Status: "completed", Amount: 100},  // released: 0
		{ID: "c", Status: "in_progress", Amount: 40}, // held: net 30
	}
	assert.Equal(t, 105.0, EscrowHeldTotal(jobs))
}

func TestRevenueTotal(t *testing.T) {
	jobs := []models.Job{
		{ID: "a", Status: "completed", Amount: 100}, // fee 15
		{ID: "b", Status: "completed", Amount: 200}, // fee 30
		{ID: "c", Status: "scheduled", Amount: 999}, // not completed, excluded
	}
	assert.Equal(t, 45.0, RevenueTotal(jobs))
}
