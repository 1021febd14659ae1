package services

import (
	"context"
	"errors"

	"github.com/anjiri1684/car_rental/models"
	"github.com/anjiri1684/car_rental/payments"
	"github.com/anjiri1684/car_rental/utils"
	"github.com/google/uuid"
)

var (
	ErrAlreadyPaid        = errors.New("rental is already paid")
	ErrInvalidProvider    = errors.New("invalid payment provider")
	ErrVerificationFailed = errors.New("payment verification failed")
)

type PaymentService struct {
	store       RentalStore
	gateways    *payments.Registry
	frontendURL string
}

func NewPaymentService(store RentalStore, gateways *payments.Registry, frontendURL string) *PaymentService {
	return &PaymentService{store: store, gateways: gateways, frontendURL: frontendURL}
}

// Initiate starts a charge for the rental with the chosen provider and tags
// the rental with it. Status and payment status stay untouched until
// verification. The provider payload is returned verbatim; callers redirect
// the customer using provider-specific fields.
func (s *PaymentService) Initiate(ctx context.Context, rentalID uuid.UUID, providerTag string) (*payments.InitiateResult, error) {
	rental, err := s.store.FindRentalWithUser(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.PaymentStatus == models.PaymentPaid {
		return nil, ErrAlreadyPaid
	}

	provider, err := payments.ParseProvider(providerTag)
	if err != nil {
		return nil, ErrInvalidProvider
	}
	gateway, err := s.gateways.Gateway(provider)
	if err != nil {
		return nil, ErrInvalidProvider
	}

	phone := "0000000000"
	if rental.User.PhoneNumber != nil && *rental.User.PhoneNumber != "" {
		phone = *rental.User.PhoneNumber
	}

	result, err := gateway.Initiate(ctx, payments.InitiateRequest{
		Amount:      rental.TotalCost,
		Currency:    "USD",
		Reference:   utils.PaymentReference(rental.ID),
		RentalID:    rental.ID.String(),
		RedirectURL: s.frontendURL + "/payment/callback",
		Customer: payments.Customer{
			FullName:    rental.User.FullName,
			Email:       rental.User.Email,
			PhoneNumber: phone,
		},
	})
	if err != nil {
		return nil, err
	}

	tag := string(provider)
	if err := s.store.SetPaymentMethod(ctx, rental.ID, tag); err != nil {
		return nil, err
	}
	return result, nil
}

// Verify re-queries the provider for the reference and, on success, settles
// the rental: paymentStatus=paid, status=confirmed, transactionReference set.
// A failed provider check (or an unrecognized provider tag) yields
// ErrVerificationFailed; a verified payment whose rental row is missing
// yields ErrRentalNotFound so the two cases stay distinguishable.
func (s *PaymentService) Verify(ctx context.Context, rentalID uuid.UUID, providerTag, reference string) (*models.Rental, error) {
	provider, err := payments.ParseProvider(providerTag)
	if err != nil {
		return nil, ErrVerificationFailed
	}
	gateway, err := s.gateways.Gateway(provider)
	if err != nil {
		return nil, ErrVerificationFailed
	}

	result, err := gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !result.Verified {
		return nil, ErrVerificationFailed
	}

	rental, err := s.store.FindRentalWithUser(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	if err := s.store.MarkPaid(ctx, rental.ID, reference); err != nil {
		return nil, err
	}

	rental.PaymentStatus = models.PaymentPaid
	rental.Status = models.RentalConfirmed
	rental.TransactionReference = &reference
	return rental, nil
}
