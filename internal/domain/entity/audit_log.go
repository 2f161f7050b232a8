package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog represents a register audit trail entry
type AuditLog struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	Metadata  JSON      `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// JSON holds free-form audit metadata
type JSON map[string]interface{}

// Common audit actions
const (
	AuditActionPatientAdmit     = "patient.admit"
	AuditActionPatientDischarge = "patient.discharge"
	AuditActionRecordsBackup    = "records.backup"
	AuditActionRecordsRestore   = "records.restore"
)
