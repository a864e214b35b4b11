// Package status translates the upstream API's assorted status vocabularies
// into the fixed set of labels the dashboard renders. The upstream has shipped
// several historical spellings for the same state; the tables here are the one
// place that conflation lives.
package status

import "strings"

// Category selects which vocabulary table a raw value is looked up in.
type Category string

const (
	CategoryJob      Category = "jobStatus"
	CategoryPayment  Category = "paymentStatus"
	CategoryApproval Category = "approvalStatus"
	CategoryCleaner  Category = "cleanerStatus"
)

// Colors are the badge color tokens for a canonical label.
type Colors struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Dot        string `json:"dot"`
}

// Badge is a canonical display label with its color tokens.
type Badge struct {
	Label  string `json:"label"`
	Colors Colors `json:"colors"`
}

// Canonical job status labels.
const (
	JobUpcoming  = "Upcoming"
	JobOngoing   = "Ongoing"
	JobCompleted = "Completed"
	JobCancelled = "Cancelled"
)

// Canonical payment status labels.
const (
	PaymentHeld      = "Held"
	PaymentReleased  = "Released"
	PaymentRefunded  = "Refunded"
	PaymentCancelled = "Cancelled"
	PaymentPending   = "Pending"
)

// UnknownLabel is the neutral fallback for values no table recognizes.
const UnknownLabel = "Unknown"

var (
	grayColors   = Colors{Background: "bg-gray-100", Text: "text-gray-600", Dot: "bg-gray-400"}
	blueColors   = Colors{Background: "bg-blue-100", Text: "text-blue-700", Dot: "bg-blue-500"}
	amberColors  = Colors{Background: "bg-amber-100", Text: "text-amber-700", Dot: "bg-amber-500"}
	greenColors  = Colors{Background: "bg-emerald-100", Text: "text-emerald-700", Dot: "bg-emerald-500"}
	redColors    = Colors{Background: "bg-red-100", Text: "text-red-700", Dot: "bg-red-500"}
	purpleColors = Colors{Background: "bg-purple-100", Text: "text-purple-700", Dot: "bg-purple-500"}
)

// Unknown is the badge returned for unmapped values.
var Unknown = Badge{Label: UnknownLabel, Colors: grayColors}

// tables maps normalized raw values to canonical labels, per category.
var tables = map[Category]map[string]string{
	CategoryJob: {
		"posted":                        JobUpcoming,
		"open":                          JobUpcoming,
		"pending":                       JobUpcoming,
		"scheduled":                     JobUpcoming,
		"accepted":                      JobUpcoming,
		"confirmed":                     JobUpcoming,
		"assigned":                      JobUpcoming,
		"upcoming":                      JobUpcoming,
		"in_progress":                   JobOngoing,
		"started":                       JobOngoing,
		"ongoing":                       JobOngoing,
		"active":                        JobOngoing,
		"pending_customer_confirmation": JobOngoing,
		"completed":                     JobCompleted,
		"complete":                      JobCompleted,
		"done":                          JobCompleted,
		"finished":                      JobCompleted,
		"cancelled":                     JobCancelled,
		"canceled":                      JobCancelled,
		"declined":                      JobCancelled,
		"expired":                       JobCancelled,
	},
	CategoryPayment: {
		"escrowed":         PaymentHeld,
		"held":             PaymentHeld,
		"holding":          PaymentHeld,
		"in_escrow":        PaymentHeld,
		"released":         PaymentReleased,
		"paid_out":         PaymentReleased,
		"payout_complete":  PaymentReleased,
		"refunded":         PaymentRefunded,
		"refund_complete":  PaymentRefunded,
		"cancelled":        PaymentCancelled,
		"canceled":         PaymentCancelled,
		"void":             PaymentCancelled,
		"pending":          PaymentPending,
		"processing":       PaymentPending,
		"awaiting_payment": PaymentPending,
	},
	CategoryApproval: {
		"approved":     "Approved",
		"verified":     "Approved",
		"accepted":     "Approved",
		"rejected":     "Rejected",
		"declined":     "Rejected",
		"failed":       "Rejected",
		"pending":      "Pending",
		"submitted":    "Pending",
		"in_review":    "Pending",
		"under_review": "Pending",
		// The upstream reports cleaners with no or incomplete uploads under
		// their own values; the dashboard treats all of them as Pending.
		"no_documents": "Pending",
		"partial":      "Pending",
		"":             "Pending",
	},
	CategoryCleaner: {
		"active":      "Active",
		"online":      "Active",
		"available":   "Active",
		"inactive":    "Inactive",
		"offline":     "Inactive",
		"unavailable": "Inactive",
		"suspended":   "Suspended",
		"banned":      "Suspended",
		"blocked":     "Suspended",
		"pending":     "Pending",
		"onboarding":  "Pending",
	},
}

// colors maps canonical labels to their badge tokens.
var colors = map[string]Colors{
	JobUpcoming:      blueColors,
	JobOngoing:       amberColors,
	JobCompleted:     greenColors,
	JobCancelled:     redColors,
	PaymentHeld:     amberColors,
	PaymentReleased: greenColors,
	PaymentRefunded: purpleColors,
	// PaymentPending doubles as the approval/cleaner "Pending" entry.
	PaymentPending: amberColors,
	"Approved":    greenColors,
	"Rejected":    redColors,
	"Active":      greenColors,
	"Inactive":    grayColors,
	"Suspended":   redColors,
}

// normalizeRaw folds case and separator differences ("in-progress", "In Progress").
func normalizeRaw(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// Normalize looks a raw upstream value up in the given category and returns
// its display badge. Unmapped values get the neutral Unknown badge; it never
// fails.
func Normalize(category Category, raw string) Badge {
	table, ok := tables[category]
	if !ok {
		return Unknown
	}
	label, ok := table[normalizeRaw(raw)]
	if !ok {
		return Unknown
	}
	c, ok := colors[label]
	if !ok {
		c = grayColors
	}
	return Badge{Label: label, Colors: c}
}

// Known reports whether the raw value maps to a canonical label.
func Known(category Category, raw string) bool {
	table, ok := tables[category]
	if !ok {
		return false
	}
	_, ok = table[normalizeRaw(raw)]
	return ok
}

// DerivePaymentStatus derives the display payment status from a canonical job
// status. Funds stay held for anything not terminal, so unrecognized input
// defaults to Held.
func DerivePaymentStatus(jobStatus string) string {
	switch jobStatus {
	case JobUpcoming, JobOngoing:
		return PaymentHeld
	case JobCompleted:
		return PaymentReleased
	case JobCancelled:
		return PaymentCancelled
	default:
		return PaymentHeld
	}
}

// JobLabel is a convenience for the common "raw job status to canonical label"
// path; unknown raw values come back as Unknown.
func JobLabel(raw string) string {
	return Normalize(CategoryJob, raw).Label
}
