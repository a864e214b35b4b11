package models

import "time"

// Customer mirrors the upstream customer record.
type Customer struct {
	ID           string     `json:"id,omitempty"`
	Name         string     `json:"name,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Avatar       string     `json:"avatar,omitempty"`
	Address      string     `json:"address,omitempty"`
	TotalSpend   float64    `json:"totalSpend,omitempty"`
	JobsCount    int        `json:"jobsCount,omitempty"`
	ReviewsCount int        `json:"reviewsCount,omitempty"`
	JoinedAt     *time.Time `json:"joinedAt,omitempty"`
}

// Review is a customer review attached to a completed job.
type Review struct {
	ID        string     `json:"id,omitempty"`
	JobID     string     `json:"jobId,omitempty"`
	CleanerID string     `json:"cleanerId,omitempty"`
	Rating    float64    `json:"rating,omitempty"` // expected value between 1 and 5
	Comment   string     `json:"comment,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}
