package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeJobStatuses(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"posted", JobUpcoming},
		{"scheduled", JobUpcoming},
		{"pending", JobUpcoming},
		{"in_progress", JobOngoing},
		{"In Progress", JobOngoing},
		{"in-progress", JobOngoing},
		{"pending_customer_confirmation", JobOngoing},
		{"completed", JobCompleted},
		{"DONE", JobCompleted},
		{"cancelled", JobCancelled},
		{"canceled", JobCancelled},
		{"expired", JobCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(CategoryJob, tt.raw).Label)
		})
	}
}

func TestNormalizeApprovalConflation(t *testing.T) {
	// Cleaners with no or partial uploads render as Pending alongside
	// genuinely submitted ones.
	for _, raw := range []string{"no_documents", "partial", "", "submitted", "in_review"} {
		assert.Equal(t, "Pending", Normalize(CategoryApproval, raw).Label, "raw=%q", raw)
	}
}

func TestNormalizeUnknownFallback(t *testing.T) {
	badge := Normalize(CategoryJob, "quantum_flux")
	assert.Equal(t, UnknownLabel, badge.Label)
	assert.Equal(t, "bg-gray-100", badge.Colors.Background)
	assert.Equal(t, "text-gray-600", badge.Colors.Text)

	// Unknown categories also fall back instead of panicking.
	assert.Equal(t, UnknownLabel, Normalize(Category("nope"), "active").Label)
}

func TestNormalizeEveryMappedValueHasColors(t *testing.T) {
	for category, table := range tables {
		for raw := range table {
			badge := Normalize(category, raw)
			assert.NotEqual(t, UnknownLabel, badge.Label, "category=%s raw=%q", category, raw)
			assert.NotEmpty(t, badge.Colors.Background, "category=%s raw=%q", category, raw)
			assert.NotEmpty(t, badge.Colors.Text, "category=%s raw=%q", category, raw)
			assert.NotEmpty(t, badge.Colors.Dot, "category=%s raw=%q", category, raw)
		}
	}
}

func TestSharedLabelsResolveToOneColorsEntry(t *testing.T) {
	// "Pending" and "Cancelled" exist in more than one vocabulary but each
	// label has exactly one colors entry, so every category renders them the
	// same way.
	assert.Equal(t,
		Normalize(CategoryPayment, "pending").Colors,
		Normalize(CategoryApproval, "pending").Colors)
	assert.Equal(t,
		Normalize(CategoryPayment, "pending").Colors,
		Normalize(CategoryCleaner, "pending").Colors)
	assert.Equal(t, amberColors, Normalize(CategoryApproval, "pending").Colors)

	assert.Equal(t,
		Normalize(CategoryJob, "cancelled").Colors,
		Normalize(CategoryPayment, "cancelled").Colors)
}

func TestNormalizeIsStable(t *testing.T) {
	first := Normalize(CategoryPayment, "escrowed")
	second := Normalize(CategoryPayment, "escrowed")
	assert.Equal(t, first, second)
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(CategoryPayment, "released"))
	assert.True(t, Known(CategoryPayment, "Held"))
	assert.False(t, Known(CategoryPayment, "teleported"))
	assert.False(t, Known(Category("nope"), "released"))
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		jobStatus string
		want      string
	}{
		{JobUpcoming, PaymentHeld},
		{JobOngoing, PaymentHeld},
		{JobCompleted, PaymentReleased},
		{JobCancelled, PaymentCancelled},
		{UnknownLabel, PaymentHeld},
		{"", PaymentHeld},
	}
	for _, tt := range tests {
		t.Run(tt.jobStatus, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePaymentStatus(tt.jobStatus))
		})
	}
}

func TestJobLabel(t *testing.T) {
	assert.Equal(t, JobOngoing, JobLabel("started"))
	assert.Equal(t, UnknownLabel, JobLabel("gibberish"))
}
