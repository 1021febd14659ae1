package services

import (
	"context"
	"errors"
	"testing"

	"github.com/anjiri1684/car_rental/models"
	"github.com/anjiri1684/car_rental/payments"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeGateway records calls and returns canned results.
type fakeGateway struct {
	name           payments.Provider
	initiateResult *payments.InitiateResult
	initiateErr    error
	verifyResult   *payments.VerifyResult
	verifyErr      error

	initiateCalls []payments.InitiateRequest
	verifyCalls   []string
}

func (f *fakeGateway) Name() payments.Provider { return f.name }

func (f *fakeGateway) Initiate(ctx context.Context, req payments.InitiateRequest) (*payments.InitiateResult, error) {
	f.initiateCalls = append(f.initiateCalls, req)
	return f.initiateResult, f.initiateErr
}

func (f *fakeGateway) Verify(ctx context.Context, reference string) (*payments.VerifyResult, error) {
	f.verifyCalls = append(f.verifyCalls, reference)
	return f.verifyResult, f.verifyErr
}

func pendingRental(rentalID uuid.UUID) *models.Rental {
	return &models.Rental{
		ID:            rentalID,
		TotalCost:     500,
		Status:        models.RentalPending,
		PaymentStatus: models.PaymentPending,
		User:          models.User{FullName: "Jane Doe", Email: "jane@example.com"},
	}
}

func TestInitiateTagsRentalWithProvider(t *testing.T) {
	rentalID := uuid.New()
	gateway := &fakeGateway{
		name:           payments.ProviderStripe,
		initiateResult: &payments.InitiateResult{Reference: "pi_1", Raw: map[string]interface{}{"client_secret": "sec"}},
	}

	store := new(mockRentalStore)
	store.On("FindRentalWithUser", mock.Anything, rentalID).Return(pendingRental(rentalID), nil)
	store.On("SetPaymentMethod", mock.Anything, rentalID, "stripe").Return(nil)

	svc := NewPaymentService(store, payments.NewRegistry(gateway), "https://example.com")

	result, err := svc.Initiate(context.Background(), rentalID, "stripe")
	require.NoError(t, err)
	assert.Equal(t, "pi_1", result.Reference)

	require.Len(t, gateway.initiateCalls, 1)
	call := gateway.initiateCalls[0]
	assert.Equal(t, float64(500), call.Amount)
	assert.Equal(t, "USD", call.Currency)
	assert.Equal(t, "https://example.com/payment/callback", call.RedirectURL)
	assert.Equal(t, "jane@example.com", call.Customer.Email)
	// No phone on file falls back to a placeholder.
	assert.Equal(t, "0000000000", call.Customer.PhoneNumber)
	store.AssertExpectations(t)
}

func TestInitiateAlreadyPaidBeforeProviderCall(t *testing.T) {
	rentalID := uuid.New()
	rental := pendingRental(rentalID)
	rental.PaymentStatus = models.PaymentPaid

	gateway := &fakeGateway{name: payments.ProviderStripe}
	store := new(mockRentalStore)
	store.On("FindRentalWithUser", mock.Anything, rentalID).Return(rental, nil)

	svc := NewPaymentService(store, payments.NewRegistry(gateway), "https://example.com")

	_, err := svc.Initiate(context.Background(), rentalID, "stripe")
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.Empty(t, gateway.initiateCalls, "provider must not be contacted for a paid rental")
	store.AssertNotCalled(t, "SetPaymentMethod", mock.Anything, mock.Anything, mock.Anything)
}

func TestInitiateUnknownProvider(t *testing.T) {
	rentalID := uuid.New()
	store := new(mockRentalStore)
	store.On("FindRentalWithUser", mock.Anything, rentalID).Return(pendingRental(rentalID), nil)

	svc := NewPaymentService(store, payments.NewRegistry(), "https://example.com")

	_, err := svc.Initiate(context.Background(), rentalID, "mpesa")
	assert.ErrorIs(t, err, ErrInvalidProvider)
	store.AssertNotCalled(t, "SetPaymentMethod", mock.Anything, mock.Anything, mock.Anything)
}

func TestInitiateMissingRental(t *testing.T) {
	rentalID := uuid.New()
	store := new(mockRentalStore)
	store.On("FindRentalWithUser", mock.Anything, rentalID).Return(nil, ErrRentalNotFound)

	svc := NewPaymentService(store, payments.NewRegistry(), "https://example.com")

	_, err := svc.Initiate(context.Background(), rentalID, "stripe")
	assert.ErrorIs(t, err, ErrRentalNotFound)
}

func TestInitiateUpstreamFailureLeavesRentalUntouched(t *testing.T) {
	rentalID := uuid.New()
	gateway := &fakeGateway{
		name:        payments.ProviderPaystack,
		initiateErr: &payments.UpstreamError{Provider: payments.ProviderPaystack, Message: "API returned status 500"},
	}
	store := new(mockRentalStore)
	store.On("FindRentalWithUser", mock.Anything, rentalID).Return(pendingRental(rentalID), nil)

	svc := NewPaymentService(store, payments.NewRegistry(gateway), "https://example.com")

	_, err := svc.Initiate(context.Background(), rentalID, "paystack")
	var upstreamErr *payments.UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
	store.AssertNotCalled(t, "SetPaymentMethod", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifySettlesRental(t *testing.T) {
	rentalID := uuid.New()
	gateway := &fakeGateway{
		name:         payments.ProviderFlutterwave,
		verifyResult: &payments.VerifyResult{Verified: true},
	}

	store := new(mockRentalStore)
	store.On("FindRentalWithUser", mock.Anything, rentalID).Return(pendingRental(rentalID), nil)
	store.On("MarkPaid", mock.Anything, rentalID, "tx-123").Return(nil)

	svc := NewPaymentService(store, payments.NewRegistry(gateway), "https://example.com")

	rental, err := svc.Verify(context.Background(), rentalID, "flutterwave", "tx-123")
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPaid, rental.PaymentStatus)
	assert.Equal(t, models.RentalConfirmed, rental.Status)
	require.NotNil(t, rental.TransactionReference)
	assert.Equal(t, "tx-123", *rental.TransactionReference)
	assert.Equal(t, []string{"tx-123"}, gateway.verifyCalls)
	store.AssertExpectations(t)
}

func TestVerifyPaidRentalAgainRewritesReference(t *testing.T) {
	// Re-verification is not guarded: a second successful verify on an
	// already-paid rental settles it again and overwrites the stored
	// transaction reference with the new one.
	rentalID := uuid.New()
	paid := pendingRental(rentalID)
	paid.PaymentStatus = models.PaymentPaid
	paid.Status = models.RentalConfirmed
	firstRef := "tx-first"
	paid.TransactionReference = &firstRef

	gateway := &fakeGateway{
		name:         payments.ProviderFlutterwave,
		verifyResult: &payments.VerifyResult{Verified: true},
	}

	store := new(mockRentalStore)
	store.On("FindRentalWithUser", mock.Anything, rentalID).Return(paid, nil)
	store.On("MarkPaid", mock.Anything, rentalID, "tx-second").Return(nil)

	svc := NewPaymentService(store, payments.NewRegistry(gateway), "https://example.com")

	rental, err := svc.Verify(context.Background(), rentalID, "flutterwave", "tx-second")
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPaid, rental.PaymentStatus)
	assert.Equal(t, models.RentalConfirmed, rental.Status)
	require.NotNil(t, rental.TransactionReference)
	assert.Equal(t, "tx-second", *rental.TransactionReference)
	store.AssertCalled(t, "MarkPaid", mock.Anything, rentalID, "tx-second")
}

func TestVerifyProviderSaysNo(t *testing.T) {
	rentalID := uuid.New()
	gateway := &fakeGateway{
		name:         payments.ProviderStripe,
		verifyResult: &payments.VerifyResult{Verified: false},
	}

	store := new(mockRentalStore)
	svc := NewPaymentService(store, payments.NewRegistry(gateway), "https://example.com")

	_, err := svc.Verify(context.Background(), rentalID, "stripe", "pi_1")
	assert.ErrorIs(t, err, ErrVerificationFailed)
	store.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyUnknownProviderFailsWithoutSideEffects(t *testing.T) {
	store := new(mockRentalStore)
	svc := NewPaymentService(store, payments.NewRegistry(), "https://example.com")

	_, err := svc.Verify(context.Background(), uuid.New(), "mpesa", "ref")
	assert.ErrorIs(t, err, ErrVerificationFailed)
	store.AssertNotCalled(t, "FindRentalWithUser", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifiedPaymentWithMissingRentalIsDistinct(t *testing.T) {
	rentalID := uuid.New()
	gateway := &fakeGateway{
		name:         payments.ProviderStripe,
		verifyResult: &payments.VerifyResult{Verified: true},
	}

	store := new(mockRentalStore)
	store.On("FindRentalWithUser", mock.Anything, rentalID).Return(nil, ErrRentalNotFound)

	svc := NewPaymentService(store, payments.NewRegistry(gateway), "https://example.com")

	_, err := svc.Verify(context.Background(), rentalID, "stripe", "pi_1")
	assert.ErrorIs(t, err, ErrRentalNotFound)
	assert.NotErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyUpstreamErrorPropagates(t *testing.T) {
	rentalID := uuid.New()
	gateway := &fakeGateway{
		name:      payments.ProviderPaystack,
		verifyErr: &payments.UpstreamError{Provider: payments.ProviderPaystack, Message: "request failed", Err: errors.New("timeout")},
	}

	store := new(mockRentalStore)
	svc := NewPaymentService(store, payments.NewRegistry(gateway), "https://example.com")

	_, err := svc.Verify(context.Background(), rentalID, "paystack", "ref")
	var upstreamErr *payments.UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
	store.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}
