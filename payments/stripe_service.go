package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const stripeBaseURL = "https://api.stripe.com"

// StripeGateway creates and retrieves payment intents. Amounts are sent in
// minor currency units; a charge is settled once the intent reports
// status "succeeded".
type StripeGateway struct {
	SecretKey string
	BaseURL   string
	Client    *http.Client
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{
		SecretKey: secretKey,
		BaseURL:   stripeBaseURL,
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *StripeGateway) Name() Provider { return ProviderStripe }

func (g *StripeGateway) Initiate(ctx context.Context, in InitiateRequest) (*InitiateResult, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(MinorUnits(in.Amount), 10))
	form.Set("currency", strings.ToLower(in.Currency))
	form.Set("metadata[rental_id]", in.RentalID)
	form.Set("automatic_payment_methods[enabled]", "true")

	req, err := http.NewRequestWithContext(ctx, "POST", g.BaseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, upstream(ProviderStripe, "failed to build payment intent request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+g.SecretKey)

	raw, err := g.do(req)
	if err != nil {
		return nil, err
	}

	intentID, _ := raw["id"].(string)
	if intentID == "" {
		return nil, upstream(ProviderStripe, "payment intent response missing id", nil)
	}
	return &InitiateResult{Reference: intentID, Raw: raw}, nil
}

func (g *StripeGateway) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", g.BaseURL+"/v1/payment_intents/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, upstream(ProviderStripe, "failed to build verify request", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.SecretKey)

	raw, err := g.do(req)
	if err != nil {
		return nil, err
	}

	status, _ := raw["status"].(string)
	return &VerifyResult{Verified: status == "succeeded", Raw: raw}, nil
}

func (g *StripeGateway) do(req *http.Request) (map[string]interface{}, error) {
	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, upstream(ProviderStripe, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream(ProviderStripe, "failed to read response body", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, upstream(ProviderStripe, fmt.Sprintf("API returned status %d: %s", resp.StatusCode, body), nil)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, upstream(ProviderStripe, "failed to decode response", err)
	}
	return raw, nil
}
