package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/careerlift/resumeaudit/models"
)

// counterRowID is the fixed identity of the single counter row.
const counterRowID = 1

// Counter wraps the single-row submission counter. The increment is one
// atomic store-level add, never read-modify-write from the application, so
// concurrent uploads cannot lose updates.
type Counter struct {
	db *gorm.DB
}

// NewCounter returns a counter handle over the given database.
func NewCounter(db *gorm.DB) *Counter {
	return &Counter{db: db}
}

// Read returns the current submission count. An absent row reads as zero.
func (c *Counter) Read(ctx context.Context) (int64, error) {
	var row models.SubmissionCounter
	err := c.db.WithContext(ctx).First(&row, counterRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read submission counter: %w", err)
	}
	return row.Count, nil
}

// Increment atomically adds one to the counter, creating the row on first
// use. The upsert keeps the add atomic under concurrent requests.
func (c *Counter) Increment(ctx context.Context) error {
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1")}),
	}).Create(&models.SubmissionCounter{ID: counterRowID, Count: 1}).Error
	if err != nil {
		return fmt.Errorf("increment submission counter: %w", err)
	}
	return nil
}

// RecordSubmission inserts a bookkeeping row for a stored resume.
func (c *Counter) RecordSubmission(ctx context.Context, sub *models.Submission) error {
	if err := c.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("record submission: %w", err)
	}
	return nil
}
