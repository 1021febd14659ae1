package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/anjiri1684/car_rental/models"
	"github.com/google/uuid"
)

var (
	ErrCarNotFound    = errors.New("car not found")
	ErrRentalNotFound = errors.New("rental not found")
	ErrNotAvailable   = errors.New("car is no longer available for these dates")
	ErrInvalidRange   = errors.New("invalid date range")
)

// RentalStore is the persistence surface the rental and payment workflows
// need. The GORM implementation lives in the repository package.
type RentalStore interface {
	FindCar(ctx context.Context, carID uuid.UUID) (*models.Car, error)
	// ActiveRentals returns every rental for the car whose status is outside
	// {cancelled, completed}.
	ActiveRentals(ctx context.Context, carID uuid.UUID) ([]models.Rental, error)
	// CreateRentalLocked inserts the rental after re-checking availability
	// under a row lock on the car, so concurrent bookings serialize.
	CreateRentalLocked(ctx context.Context, rental *models.Rental) error
	FindRental(ctx context.Context, rentalID uuid.UUID) (*models.Rental, error)
	FindRentalWithUser(ctx context.Context, rentalID uuid.UUID) (*models.Rental, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Rental, error)
	ListAll(ctx context.Context) ([]models.Rental, error)
	SetPaymentMethod(ctx context.Context, rentalID uuid.UUID, provider string) error
	MarkPaid(ctx context.Context, rentalID uuid.UUID, reference string) error
	UpdateStatus(ctx context.Context, rentalID uuid.UUID, status models.RentalStatus) error
}

type RentalService struct {
	store RentalStore
}

func NewRentalService(store RentalStore) *RentalService {
	return &RentalService{store: store}
}

// RentalDays counts the days in the inclusive range [start, end].
// start == end is one rental day; a negative range yields days <= 0.
func RentalDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

func overlaps(existing models.Rental, start, end time.Time) bool {
	return !existing.StartDate.After(end) && !existing.EndDate.Before(start)
}

// CheckAvailability reports whether the car is free for the inclusive range.
// This is a point-in-time advisory read; CreateRental re-checks under a lock.
func (s *RentalService) CheckAvailability(ctx context.Context, carID uuid.UUID, start, end time.Time) (bool, string, error) {
	if RentalDays(start, end) <= 0 {
		return false, "", ErrInvalidRange
	}

	rentals, err := s.store.ActiveRentals(ctx, carID)
	if err != nil {
		return false, "", err
	}
	for _, r := range rentals {
		if overlaps(r, start, end) {
			return false, "Car is not available for these dates.", nil
		}
	}
	return true, "Car is available.", nil
}

// CreateRental books the car for the user: validates the range, prices the
// rental at inclusive days times the car's daily rate, and inserts it in
// pending/pending state. Availability is checked once up front and again
// inside the locked insert.
func (s *RentalService) CreateRental(ctx context.Context, userID, carID uuid.UUID, start, end time.Time, paymentMethod *string) (*models.Rental, error) {
	days := RentalDays(start, end)
	if days <= 0 {
		return nil, ErrInvalidRange
	}

	available, _, err := s.CheckAvailability(ctx, carID, start, end)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrNotAvailable
	}

	car, err := s.store.FindCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	totalCost := math.Round(float64(days)*car.DailyRate*100) / 100

	rental := &models.Rental{
		UserID:        userID,
		CarID:         carID,
		StartDate:     start,
		EndDate:       end,
		TotalCost:     totalCost,
		Status:        models.RentalPending,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: paymentMethod,
	}
	if err := s.store.CreateRentalLocked(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *RentalService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Rental, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *RentalService) ListAll(ctx context.Context) ([]models.Rental, error) {
	return s.store.ListAll(ctx)
}

func (s *RentalService) UpdateStatus(ctx context.Context, rentalID uuid.UUID, status models.RentalStatus) error {
	return s.store.UpdateStatus(ctx, rentalID, status)
}
