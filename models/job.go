package models

import "time"

// JobParty is the customer or cleaner sub-record embedded in a job.
type JobParty struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// Job mirrors the upstream job record. Status holds the raw backend enum;
// PaymentStatus may be absent entirely, in which case it is derived from the
// job status at read time.
type Job struct {
	ID            string     `json:"id,omitempty"`
	JobID         string     `json:"jobId,omitempty"` // human-facing reference, e.g. "AM-1042"
	Type          string     `json:"type,omitempty"`  // e.g. "end_of_lease", "regular", "deep_clean"
	Status        string     `json:"status,omitempty"`
	PaymentStatus string     `json:"paymentStatus,omitempty"`
	Amount        float64    `json:"amount,omitempty"`
	Currency      string     `json:"currency,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	PaymentIntent string     `json:"paymentIntentId,omitempty"`
	Address       string     `json:"address,omitempty"`
	Customer      JobParty   `json:"customer,omitzero"`
	Cleaner       JobParty   `json:"cleaner,omitzero"`
	ScheduledAt   *time.Time `json:"scheduledAt,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}
