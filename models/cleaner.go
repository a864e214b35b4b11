package models

import "time"

// KYCDocument is one verification document with its own approval state.
// Status carries the raw backend vocabulary ("approved", "pending",
// "no_documents", "partial", ...); display labels come from the status tables.
type KYCDocument struct {
	Key        string     `json:"key"` // e.g. "abn", "police_check", "photo_id", "certificate"
	Name       string     `json:"name,omitempty"`
	URL        string     `json:"url,omitempty"`
	Status     string     `json:"status,omitempty"`
	Note       string     `json:"note,omitempty"`
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
}

// CleanerKYC groups the verification state of a cleaner.
type CleanerKYC struct {
	Status      string        `json:"status,omitempty"` // raw overall KYC status
	Verified    bool          `json:"verified,omitempty"`
	ABN         string        `json:"abn,omitempty"`
	ABNVerified bool          `json:"abnVerified,omitempty"`
	Documents   []KYCDocument `json:"documents,omitempty"`
}

// Cleaner mirrors whatever the upstream API returns for a cleaner; every
// field is optional and consumers fall back to zero values.
type Cleaner struct {
	ID             string     `json:"id,omitempty"`
	Name           string     `json:"name,omitempty"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Avatar         string     `json:"avatar,omitempty"`
	Role           string     `json:"role,omitempty"`
	Badge          string     `json:"badge,omitempty"`  // Bronze/Silver/Gold/Platinum, display only
	Status         string     `json:"status,omitempty"` // raw cleaner status
	ApprovalStatus string     `json:"approvalStatus,omitempty"`
	KYC            CleanerKYC `json:"kyc,omitzero"`
	JobsCompleted  int        `json:"jobsCompleted,omitempty"`
	JobsActive     int        `json:"jobsActive,omitempty"`
	TotalEarnings  float64    `json:"totalEarnings,omitempty"`
	Rating         float64    `json:"rating,omitempty"`
	JoinedAt       *time.Time `json:"joinedAt,omitempty"`
}

// KYCStats is the aggregate shown on the verification dashboard.
type KYCStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// ABNResult is the outcome of an ABN verification attempt.
type ABNResult struct {
	ABN      string `json:"abn"`
	Valid    bool   `json:"valid"`
	Verified bool   `json:"verified"`
	Message  string `json:"message,omitempty"`
}
