package model

import "time"

// RecordSource tags where a merged directory entry came from.
type RecordSource string

const (
	// SourceManual marks records entered by an administrator.
	SourceManual RecordSource = "manual"
	// SourceRegistration marks entries projected from self-registered
	// student accounts.
	SourceRegistration RecordSource = "registration"
)

// MergedRecord is one entry of the combined directory view: manual records
// and registration-sourced accounts share the display fields but keep
// distinct identifier spaces and lifecycles.
type MergedRecord struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Age       int             `json:"age"`
	Class     string          `json:"class"`
	Source    RecordSource    `json:"source"`
	CreatedBy *CreatorProfile `json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ListBreakdown counts merged entries per source.
type ListBreakdown struct {
	Manual     int `json:"manual"`
	Registered int `json:"registered"`
}
