package models

import "time"

// Audit actions recorded for admin decisions.
const (
	AuditActionDocumentVerdict = "kyc.document_verdict"
	AuditActionKYCStatus       = "kyc.status_override"
	AuditActionKYCVerified     = "kyc.verified_flag"
	AuditActionABNVerify       = "kyc.abn_verify"
	AuditActionPaymentStatus   = "job.payment_status_override"
)

// AuditRecord is an append-only trace of an admin decision, including which
// upstream call shape ended up carrying it.
type AuditRecord struct {
	ID         string    `bson:"id" json:"id"`
	Actor      string    `bson:"actor" json:"actor"` // admin email
	Action     string    `bson:"action" json:"action"`
	TargetType string    `bson:"targetType" json:"targetType"` // "cleaner" or "job"
	TargetID   string    `bson:"targetId" json:"targetId"`
	Outcome    string    `bson:"outcome" json:"outcome"` // e.g. "approved", "Released"
	Strategy   string    `bson:"strategy" json:"strategy,omitempty"`
	Detail     string    `bson:"detail" json:"detail,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
