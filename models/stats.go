package models

import "time"

// DashboardStats is the aggregate panel on the admin landing page. Any figure
// whose source fetch fails is reported as zero rather than failing the page.
type DashboardStats struct {
	TotalCleaners  int      `json:"totalCleaners"`
	TotalCustomers int      `json:"totalCustomers"`
	KYC            KYCStats `json:"kyc"`

	JobsUpcoming  int `json:"jobsUpcoming"`
	JobsOngoing   int `json:"jobsOngoing"`
	JobsCompleted int `json:"jobsCompleted"`
	JobsCancelled int `json:"jobsCancelled"`

	RevenueTotal float64 `json:"revenueTotal"`
	EscrowHeld   float64 `json:"escrowHeld"`

	GeneratedAt time.Time `json:"generatedAt"`
}
