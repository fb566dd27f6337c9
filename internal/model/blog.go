package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Blog is an opaque content record, create and read only
type Blog struct {
	ID          string    `gorm:"type:text;primaryKey" json:"_id"`
	Title       string    `gorm:"type:text" json:"title" binding:"required"`
	Image       string    `gorm:"type:text" json:"image"`
	Content     string    `gorm:"type:text" json:"content"`
	AuthorName  string    `gorm:"type:text" json:"author_name"`
	AuthorEmail string    `gorm:"type:text" json:"author_email"`
	PostedAt    time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"posted_at"`
}

// BeforeCreate assigns an identifier when the client didn't provide one
func (b *Blog) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
