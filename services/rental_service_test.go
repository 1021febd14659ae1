package services

import (
	"context"
	"testing"
	"time"

	"github.com/anjiri1684/car_rental/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRentalStore struct {
	mock.Mock
}

func (m *mockRentalStore) FindCar(ctx context.Context, carID uuid.UUID) (*models.Car, error) {
	args := m.Called(ctx, carID)
	if car, ok := args.Get(0).(*models.Car); ok {
		return car, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalStore) ActiveRentals(ctx context.Context, carID uuid.UUID) ([]models.Rental, error) {
	args := m.Called(ctx, carID)
	if rentals, ok := args.Get(0).([]models.Rental); ok {
		return rentals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalStore) CreateRentalLocked(ctx context.Context, rental *models.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *mockRentalStore) FindRental(ctx context.Context, rentalID uuid.UUID) (*models.Rental, error) {
	args := m.Called(ctx, rentalID)
	if rental, ok := args.Get(0).(*models.Rental); ok {
		return rental, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalStore) FindRentalWithUser(ctx context.Context, rentalID uuid.UUID) (*models.Rental, error) {
	args := m.Called(ctx, rentalID)
	if rental, ok := args.Get(0).(*models.Rental); ok {
		return rental, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Rental, error) {
	args := m.Called(ctx, userID)
	if rentals, ok := args.Get(0).([]models.Rental); ok {
		return rentals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalStore) ListAll(ctx context.Context) ([]models.Rental, error) {
	args := m.Called(ctx)
	if rentals, ok := args.Get(0).([]models.Rental); ok {
		return rentals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalStore) SetPaymentMethod(ctx context.Context, rentalID uuid.UUID, provider string) error {
	args := m.Called(ctx, rentalID, provider)
	return args.Error(0)
}

func (m *mockRentalStore) MarkPaid(ctx context.Context, rentalID uuid.UUID, reference string) error {
	args := m.Called(ctx, rentalID, reference)
	return args.Error(0)
}

func (m *mockRentalStore) UpdateStatus(ctx context.Context, rentalID uuid.UUID, status models.RentalStatus) error {
	args := m.Called(ctx, rentalID, status)
	return args.Error(0)
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRentalDays(t *testing.T) {
	assert.Equal(t, 1, RentalDays(day("2023-10-01"), day("2023-10-01")))
	assert.Equal(t, 5, RentalDays(day("2023-10-01"), day("2023-10-05")))
	assert.Equal(t, 2, RentalDays(day("2023-10-31"), day("2023-11-01")))
	assert.LessOrEqual(t, RentalDays(day("2023-10-05"), day("2023-10-01")), 0)
}

func TestCheckAvailabilityOverlapMatrix(t *testing.T) {
	carID := uuid.New()
	existing := models.Rental{
		CarID:     carID,
		StartDate: day("2023-10-10"),
		EndDate:   day("2023-10-20"),
		Status:    models.RentalConfirmed,
	}

	tests := []struct {
		name      string
		start     string
		end       string
		available bool
	}{
		{"entirely before", "2023-10-01", "2023-10-09", true},
		{"entirely after", "2023-10-21", "2023-10-25", true},
		{"touching the start day", "2023-10-05", "2023-10-10", false},
		{"touching the end day", "2023-10-20", "2023-10-25", false},
		{"contained inside", "2023-10-12", "2023-10-15", false},
		{"spanning the whole booking", "2023-10-01", "2023-10-31", false},
		{"identical range", "2023-10-10", "2023-10-20", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mockRentalStore)
			store.On("ActiveRentals", mock.Anything, carID).Return([]models.Rental{existing}, nil)
			svc := NewRentalService(store)

			available, message, err := svc.CheckAvailability(context.Background(), carID, day(tt.start), day(tt.end))
			require.NoError(t, err)
			assert.Equal(t, tt.available, available)
			if tt.available {
				assert.Equal(t, "Car is available.", message)
			} else {
				assert.Equal(t, "Car is not available for these dates.", message)
			}
		})
	}
}

func TestCheckAvailabilityInvalidRange(t *testing.T) {
	store := new(mockRentalStore)
	svc := NewRentalService(store)

	_, _, err := svc.CheckAvailability(context.Background(), uuid.New(), day("2023-10-05"), day("2023-10-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)
	store.AssertNotCalled(t, "ActiveRentals", mock.Anything, mock.Anything)
}

func TestCreateRentalPricing(t *testing.T) {
	carID := uuid.New()
	userID := uuid.New()

	store := new(mockRentalStore)
	store.On("ActiveRentals", mock.Anything, carID).Return([]models.Rental{}, nil)
	store.On("FindCar", mock.Anything, carID).Return(&models.Car{ID: carID, DailyRate: 100}, nil)
	store.On("CreateRentalLocked", mock.Anything, mock.AnythingOfType("*models.Rental")).Return(nil)
	svc := NewRentalService(store)

	rental, err := svc.CreateRental(context.Background(), userID, carID, day("2023-10-01"), day("2023-10-05"), nil)
	require.NoError(t, err)

	// Five inclusive days at 100 per day.
	assert.Equal(t, float64(500), rental.TotalCost)
	assert.Equal(t, models.RentalPending, rental.Status)
	assert.Equal(t, models.PaymentPending, rental.PaymentStatus)
	assert.Equal(t, userID, rental.UserID)
	assert.Equal(t, carID, rental.CarID)
	store.AssertExpectations(t)
}

func TestCreateRentalSingleDay(t *testing.T) {
	carID := uuid.New()

	store := new(mockRentalStore)
	store.On("ActiveRentals", mock.Anything, carID).Return([]models.Rental{}, nil)
	store.On("FindCar", mock.Anything, carID).Return(&models.Car{ID: carID, DailyRate: 59.99}, nil)
	store.On("CreateRentalLocked", mock.Anything, mock.AnythingOfType("*models.Rental")).Return(nil)
	svc := NewRentalService(store)

	rental, err := svc.CreateRental(context.Background(), uuid.New(), carID, day("2023-10-01"), day("2023-10-01"), nil)
	require.NoError(t, err)
	assert.Equal(t, 59.99, rental.TotalCost)
}

func TestCreateRentalInvalidRangeNeverPersists(t *testing.T) {
	store := new(mockRentalStore)
	svc := NewRentalService(store)

	_, err := svc.CreateRental(context.Background(), uuid.New(), uuid.New(), day("2023-10-05"), day("2023-10-01"), nil)
	assert.ErrorIs(t, err, ErrInvalidRange)
	store.AssertNotCalled(t, "CreateRentalLocked", mock.Anything, mock.Anything)
}

func TestCreateRentalCarNotFound(t *testing.T) {
	carID := uuid.New()

	store := new(mockRentalStore)
	store.On("ActiveRentals", mock.Anything, carID).Return([]models.Rental{}, nil)
	store.On("FindCar", mock.Anything, carID).Return(nil, ErrCarNotFound)
	svc := NewRentalService(store)

	_, err := svc.CreateRental(context.Background(), uuid.New(), carID, day("2023-10-01"), day("2023-10-02"), nil)
	assert.ErrorIs(t, err, ErrCarNotFound)
	store.AssertNotCalled(t, "CreateRentalLocked", mock.Anything, mock.Anything)
}

func TestCreateRentalConflictingDates(t *testing.T) {
	carID := uuid.New()
	existing := models.Rental{
		CarID:     carID,
		StartDate: day("2023-10-01"),
		EndDate:   day("2023-10-10"),
		Status:    models.RentalActive,
	}

	store := new(mockRentalStore)
	store.On("ActiveRentals", mock.Anything, carID).Return([]models.Rental{existing}, nil)
	svc := NewRentalService(store)

	_, err := svc.CreateRental(context.Background(), uuid.New(), carID, day("2023-10-05"), day("2023-10-12"), nil)
	assert.ErrorIs(t, err, ErrNotAvailable)
	store.AssertNotCalled(t, "CreateRentalLocked", mock.Anything, mock.Anything)
}

func TestCreateRentalLostRaceSurfacesConflict(t *testing.T) {
	carID := uuid.New()

	store := new(mockRentalStore)
	store.On("ActiveRentals", mock.Anything, carID).Return([]models.Rental{}, nil)
	store.On("FindCar", mock.Anything, carID).Return(&models.Car{ID: carID, DailyRate: 100}, nil)
	// A competing booking won the row lock between the advisory check and
	// the insert.
	store.On("CreateRentalLocked", mock.Anything, mock.AnythingOfType("*models.Rental")).Return(ErrNotAvailable)
	svc := NewRentalService(store)

	_, err := svc.CreateRental(context.Background(), uuid.New(), carID, day("2023-10-01"), day("2023-10-02"), nil)
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestCancelledAndCompletedRentalsDoNotBlock(t *testing.T) {
	carID := uuid.New()

	// The store only returns rentals in non-terminal states, so an empty
	// result here models a car whose only bookings were cancelled.
	store := new(mockRentalStore)
	store.On("ActiveRentals", mock.Anything, carID).Return([]models.Rental{}, nil)
	svc := NewRentalService(store)

	available, _, err := svc.CheckAvailability(context.Background(), carID, day("2023-10-01"), day("2023-10-05"))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestUpdateStatusPassthrough(t *testing.T) {
	rentalID := uuid.New()

	store := new(mockRentalStore)
	store.On("UpdateStatus", mock.Anything, rentalID, models.RentalCancelled).Return(nil)
	svc := NewRentalService(store)

	require.NoError(t, svc.UpdateStatus(context.Background(), rentalID, models.RentalCancelled))
	store.AssertExpectations(t)
}
