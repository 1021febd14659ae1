package models

import (
	"time"

	"github.com/google/uuid"
)

type Car struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Make        string    `gorm:"size:100;not null" json:"make"`
	Model       string    `gorm:"size:100;not null" json:"model"`
	Year        int       `gorm:"not null" json:"year"`
	DailyRate   float64   `gorm:"type:numeric(10,2);not null" json:"daily_rate"`
	Status      string    `gorm:"size:20;not null;default:'available'" json:"status"`
	ImageURL    *string   `gorm:"size:255" json:"image_url"`
	Description *string   `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
