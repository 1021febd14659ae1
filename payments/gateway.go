package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Provider is the closed set of supported payment backends.
type Provider string

const (
	ProviderStripe      Provider = "stripe"
	ProviderFlutterwave Provider = "flutterwave"
	ProviderPaystack    Provider = "paystack"
)

var ErrUnknownProvider = errors.New("unknown payment provider")

// ParseProvider maps a client-supplied tag onto the closed Provider set.
func ParseProvider(tag string) (Provider, error) {
	switch Provider(tag) {
	case ProviderStripe, ProviderFlutterwave, ProviderPaystack:
		return Provider(tag), nil
	}
	return "", ErrUnknownProvider
}

type Customer struct {
	FullName    string
	Email       string
	PhoneNumber string
}

type InitiateRequest struct {
	Amount   float64
	Currency string
	// Reference is the caller-supplied idempotent reference; only
	// Flutterwave uses it, the other providers mint their own.
	Reference   string
	RentalID    string
	RedirectURL string
	Customer    Customer
}

// InitiateResult carries the provider payload verbatim. Callers pick
// provider-specific fields (redirect link, client secret) out of Raw.
type InitiateResult struct {
	Reference string
	Raw       map[string]interface{}
}

type VerifyResult struct {
	Verified bool
	Raw      map[string]interface{}
}

type Gateway interface {
	Name() Provider
	Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error)
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}

// UpstreamError wraps any transport or provider-side failure. No retries, no
// circuit breaking: a failed call surfaces immediately.
type UpstreamError struct {
	Provider Provider
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstream(p Provider, msg string, err error) *UpstreamError {
	return &UpstreamError{Provider: p, Message: msg, Err: err}
}

// MinorUnits converts a major-unit amount to integer minor units (cents, kobo).
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Registry holds one explicitly constructed gateway per provider. Instances
// are built once in main and passed into the payment workflow, so tests can
// substitute fakes.
type Registry struct {
	gateways map[Provider]Gateway
}

func NewRegistry(gws ...Gateway) *Registry {
	r := &Registry{gateways: make(map[Provider]Gateway, len(gws))}
	for _, gw := range gws {
		r.gateways[gw.Name()] = gw
	}
	return r
}

func (r *Registry) Gateway(p Provider) (Gateway, error) {
	gw, ok := r.gateways[p]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return gw, nil
}
