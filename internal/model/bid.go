package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bid represents one user's application to one job.
// (UserEmail, JobID) is unique.
type Bid struct {
	ID          string     `gorm:"type:text;primaryKey" json:"_id"`
	UserEmail   string     `gorm:"type:text;not null;uniqueIndex:idx_bid_user_job" json:"userEmail" binding:"required,email"`
	UserName    string     `gorm:"type:text" json:"userName"`
	JobID       string     `gorm:"type:text;not null;uniqueIndex:idx_bid_user_job;index" json:"jobId" binding:"required"`
	JobTitle    string     `gorm:"type:text" json:"job_title"`
	Category    string     `gorm:"type:text" json:"category"`
	SalaryRange string     `gorm:"type:text" json:"salary_range"`
	Deadline    *time.Time `gorm:"type:timestamp" json:"deadline,omitempty"`
	Resume      string     `gorm:"type:text" json:"resume"`
	AppliedAt   time.Time  `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"applied_at"`
}

// BeforeCreate assigns an identifier when the client didn't provide one
func (b *Bid) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
