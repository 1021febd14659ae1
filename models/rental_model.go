package models

import (
	"time"

	"github.com/google/uuid"
)

type RentalStatus string

const (
	RentalPending   RentalStatus = "pending"
	RentalConfirmed RentalStatus = "confirmed"
	RentalActive    RentalStatus = "active"
	RentalCompleted RentalStatus = "completed"
	RentalCancelled RentalStatus = "cancelled"
)

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalPending, RentalConfirmed, RentalActive, RentalCompleted, RentalCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Rental links a user, a car and an inclusive date range. A paid rental is
// always confirmed and carries the provider's transaction reference.
type Rental struct {
	ID                   uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID               uuid.UUID     `gorm:"not null" json:"user_id"`
	CarID                uuid.UUID     `gorm:"not null" json:"car_id"`
	StartDate            time.Time     `gorm:"type:date;not null" json:"start_date"`
	EndDate              time.Time     `gorm:"type:date;not null" json:"end_date"`
	TotalCost            float64       `gorm:"type:numeric(10,2);not null" json:"total_cost"`
	Status               RentalStatus  `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentStatus        PaymentStatus `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	PaymentMethod        *string       `gorm:"size:20" json:"payment_method"`
	TransactionReference *string       `gorm:"size:255" json:"transaction_reference"`
	ReceiptURL           *string       `gorm:"size:255" json:"receipt_url,omitempty"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Car  Car  `gorm:"foreignkey:CarID" json:"car,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
