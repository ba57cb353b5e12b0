package models

import "time"

// SubmissionCounter is the single-row beta submission counter. Only the row
// with ID 1 is ever used; Count is mutated exclusively through an atomic
// store-level increment, never read-modify-write from the application.
type SubmissionCounter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Submission is a best-effort bookkeeping record written after a resume has
// been durably stored. The object store remains the source of truth; a failed
// insert here is logged and otherwise ignored.
type Submission struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"size:255;not null" json:"email"`
	SessionID  string    `gorm:"size:128;index" json:"session_id"`
	StorageKey string    `gorm:"size:512;not null" json:"storage_key"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}
