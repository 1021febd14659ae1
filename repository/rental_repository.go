package repository

import (
	"context"
	"errors"

	"github.com/anjiri1684/car_rental/models"
	"github.com/anjiri1684/car_rental/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var terminalStatuses = []models.RentalStatus{models.RentalCancelled, models.RentalCompleted}

// RentalRepository is the GORM implementation of services.RentalStore.
type RentalRepository struct {
	db *gorm.DB
}

func NewRentalRepository(db *gorm.DB) *RentalRepository {
	return &RentalRepository{db: db}
}

func (r *RentalRepository) FindCar(ctx context.Context, carID uuid.UUID) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, "id = ?", carID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrCarNotFound
		}
		return nil, err
	}
	return &car, nil
}

func (r *RentalRepository) ActiveRentals(ctx context.Context, carID uuid.UUID) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.WithContext(ctx).
		Where("car_id = ? AND status NOT IN ?", carID, terminalStatuses).
		Find(&rentals).Error
	return rentals, err
}

// CreateRentalLocked re-checks for overlapping rentals while holding a
// FOR UPDATE lock on the car row, so two concurrent bookings for the same car
// cannot both pass the availability check.
func (r *RentalRepository) CreateRentalLocked(ctx context.Context, rental *models.Rental) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var car models.Car
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&car, "id = ?", rental.CarID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.ErrCarNotFound
			}
			return err
		}

		var conflicts int64
		err := tx.Model(&models.Rental{}).
			Where("car_id = ? AND status NOT IN ? AND start_date <= ? AND end_date >= ?",
				rental.CarID, terminalStatuses, rental.EndDate, rental.StartDate).
			Count(&conflicts).Error
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return services.ErrNotAvailable
		}

		return tx.Create(rental).Error
	})
}

func (r *RentalRepository) FindRental(ctx context.Context, rentalID uuid.UUID) (*models.Rental, error) {
	var rental models.Rental
	if err := r.db.WithContext(ctx).First(&rental, "id = ?", rentalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrRentalNotFound
		}
		return nil, err
	}
	return &rental, nil
}

func (r *RentalRepository) FindRentalWithUser(ctx context.Context, rentalID uuid.UUID) (*models.Rental, error) {
	var rental models.Rental
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Car").
		First(&rental, "id = ?", rentalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrRentalNotFound
		}
		return nil, err
	}
	return &rental, nil
}

func (r *RentalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.WithContext(ctx).
		Preload("Car").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&rentals).Error
	return rentals, err
}

func (r *RentalRepository) ListAll(ctx context.Context) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.WithContext(ctx).
		Preload("Car").
		Preload("User").
		Order("created_at desc").
		Find(&rentals).Error
	return rentals, err
}

func (r *RentalRepository) SetPaymentMethod(ctx context.Context, rentalID uuid.UUID, provider string) error {
	return r.update(ctx, rentalID, map[string]interface{}{"payment_method": provider})
}

func (r *RentalRepository) MarkPaid(ctx context.Context, rentalID uuid.UUID, reference string) error {
	return r.update(ctx, rentalID, map[string]interface{}{
		"payment_status":        models.PaymentPaid,
		"status":                models.RentalConfirmed,
		"transaction_reference": reference,
	})
}

func (r *RentalRepository) UpdateStatus(ctx context.Context, rentalID uuid.UUID, status models.RentalStatus) error {
	return r.update(ctx, rentalID, map[string]interface{}{"status": status})
}

func (r *RentalRepository) update(ctx context.Context, rentalID uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Rental{}).Where("id = ?", rentalID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return services.ErrRentalNotFound
	}
	return nil
}
