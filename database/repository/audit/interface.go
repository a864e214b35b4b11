package auditRepo

import "aussiemate/models"

// AuditRepository is the append-only store of admin decisions.
type AuditRepository interface {
	Insert(rec *models.AuditRecord) error
	List(limit int64) ([]models.AuditRecord, error)
	ListByTarget(targetType, targetID string, limit int64) ([]models.AuditRecord, error)
}
