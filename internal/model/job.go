// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Job category values offered by the client
var (
	CategoryOnSite   = "On Site"
	CategoryRemote   = "Remote"
	CategoryHybrid   = "Hybrid"
	CategoryPartTime = "Part-Time"
)

// EditableJobInfo is part of job that can be written by clients
type EditableJobInfo struct {
	Email       string         `gorm:"type:text;index" json:"email" binding:"required,email"`
	Name        string         `gorm:"type:text" json:"name"`
	Title       string         `gorm:"type:text" json:"job_title" binding:"required"`
	Category    string         `gorm:"type:text;index" json:"category"`
	Banner      string         `gorm:"type:text" json:"banner"`
	Description string         `gorm:"type:text" json:"description"`
	SalaryRange string         `gorm:"type:text" json:"salary_range"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	PostingDate *time.Time     `gorm:"type:timestamp" json:"posting_date,omitempty"`
	Deadline    *time.Time     `gorm:"type:timestamp" json:"deadline,omitempty"`
}

// Job is gorm model for store job posting data in DB.
// Applicants is only changed by bid submission.
type Job struct {
	ID string `gorm:"type:text;primaryKey" json:"_id"`
	EditableJobInfo
	Applicants int `gorm:"not null;default:0" json:"applicants"`
}

// EditableJobColumns lists the columns an upsert may overwrite.
var EditableJobColumns = []string{
	"email",
	"name",
	"title",
	"category",
	"banner",
	"description",
	"salary_range",
	"tags",
	"posting_date",
	"deadline",
}

// BeforeCreate assigns an identifier when the client didn't provide one
func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
