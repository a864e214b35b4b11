package models

import "time"

// FeeBreakdown is the platform's split of a job amount: 15% platform fee and
// 10% GST come out of the gross, the remainder is owed to the cleaner.
type FeeBreakdown struct {
	Gross       float64 `json:"gross"`
	PlatformFee float64 `json:"platformFee"`
	GST         float64 `json:"gst"`
	Net         float64 `json:"net"`
}

// Transaction is the payments/escrow view of a job.
type Transaction struct {
	ID              string       `json:"id,omitempty"`
	JobID           string       `json:"jobId,omitempty"`
	JobRef          string       `json:"jobRef,omitempty"`
	CustomerName    string       `json:"customerName,omitempty"`
	CleanerName     string       `json:"cleanerName,omitempty"`
	Amounts         FeeBreakdown `json:"amounts"`
	EscrowBalance   float64      `json:"escrowBalance"`
	EscrowStatus    string       `json:"escrowStatus,omitempty"` // raw, e.g. "escrowed", "released"
	Method          string       `json:"method,omitempty"`       // e.g. "card", "paypal"
	PaymentIntentID string       `json:"paymentIntentId,omitempty"`
	CreatedAt       *time.Time   `json:"createdAt,omitempty"`

	// Live gateway state, populated only when Stripe is configured and the
	// transaction carries a payment intent reference.
	Gateway *GatewayDetails `json:"gateway,omitempty"`
}

// GatewayDetails is the subset of a Stripe payment intent surfaced on the
// transaction detail view.
type GatewayDetails struct {
	Status         string `json:"status"`
	Amount         int64  `json:"amount"`
	AmountReceived int64  `json:"amountReceived"`
	Currency       string `json:"currency"`
}
