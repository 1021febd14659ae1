package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BlogID  uuid.UUID `gorm:"not null" json:"blog_id"`
	UserID  uuid.UUID `gorm:"not null" json:"user_id"`
	Content string    `gorm:"type:text;not null" json:"content"`
	Status  string    `gorm:"size:20;not null;default:'approved'" json:"status"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
