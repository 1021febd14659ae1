package jobs

import (
	"log"
	"time"

	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/models"
)

// ActivateDueRentals moves paid, confirmed rentals into the active state
// once their start date arrives.
func ActivateDueRentals() {
	log.Println("Running job: ActivateDueRentals...")

	today := time.Now().Truncate(24 * time.Hour)

	result := database.DB.Model(&models.Rental{}).
		Where("status = ? AND payment_status = ? AND start_date <= ?", models.RentalConfirmed, models.PaymentPaid, today).
		Update("status", models.RentalActive)

	if result.Error != nil {
		log.Printf("Error activating due rentals: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Activated %d rental(s).", result.RowsAffected)
	}
}

// CompleteFinishedRentals closes out active rentals whose end date has passed.
func CompleteFinishedRentals() {
	log.Println("Running job: CompleteFinishedRentals...")

	today := time.Now().Truncate(24 * time.Hour)

	result := database.DB.Model(&models.Rental{}).
		Where("status = ? AND end_date < ?", models.RentalActive, today).
		Update("status", models.RentalCompleted)

	if result.Error != nil {
		log.Printf("Error completing finished rentals: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Completed %d rental(s).", result.RowsAffected)
	}
}
