package models

import "time"

// AuditLogEntry is appended after every administrative mutation and is never
// updated or deleted by the application.
type AuditLogEntry struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actorId"`
	Action    string    `json:"action"` // create | update | delete
	Table     string    `json:"table"`
	RecordID  string    `json:"recordId"`
	Changes   []byte    `json:"changes,omitempty"` // jsonb
	CreatedAt time.Time `json:"createdAt"`
}
