package models

import (
	"time"

	"github.com/google/uuid"
)

type SellSubmission struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName          string    `gorm:"size:255;not null" json:"full_name"`
	PhoneNumber       string    `gorm:"size:30;not null" json:"phone_number"`
	EmailAddress      string    `gorm:"size:255;not null" json:"email_address"`
	CarMake           string    `gorm:"size:100;not null" json:"car_make"`
	CarModel          string    `gorm:"size:100;not null" json:"car_model"`
	YearOfManufacture int       `gorm:"not null" json:"year_of_manufacture"`
	MileageKm         int       `gorm:"not null" json:"mileage_km"`
	Condition         string    `gorm:"size:50;not null" json:"condition"`
	// Comma-joined Cloudinary URLs.
	PhotoURLs   string `gorm:"type:text" json:"photo_urls"`
	OfferStatus string `gorm:"size:20;not null;default:'Pending'" json:"offer_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
