package model

import "time"

// CreatorProfile is the public projection of the account that created a
// student record. The raw identifier is never exposed on its own.
type CreatorProfile struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// StudentRecord is a manually entered directory record, distinct from a
// self-registered Account. Only administrators create them.
type StudentRecord struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Age       int             `json:"age"`
	Class     string          `json:"class"`
	CreatedBy *int            `json:"-"`
	Creator   *CreatorProfile `json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StudentRecordUpdate is the sparse field set accepted by the record
// update path.
type StudentRecordUpdate struct {
	Name  *string
	Email *string
	Age   *int
	Class *string
}

// IsEmpty reports whether no field was provided.
func (u StudentRecordUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Age == nil && u.Class == nil
}

// DeletedStudentSummary is the minimal description of a removed record.
type DeletedStudentSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Class string `json:"class"`
}
