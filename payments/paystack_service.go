package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const paystackBaseURL = "https://api.paystack.co"

// PaystackGateway initializes hosted-checkout transactions. Amounts are sent
// in minor units and the currency is left to the account default. A
// transaction is settled only when the envelope status is true AND the inner
// data.status is "success".
type PaystackGateway struct {
	SecretKey string
	BaseURL   string
	Client    *http.Client
}

func NewPaystackGateway(secretKey string) *PaystackGateway {
	return &PaystackGateway{
		SecretKey: secretKey,
		BaseURL:   paystackBaseURL,
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *PaystackGateway) Name() Provider { return ProviderPaystack }

func (g *PaystackGateway) Initiate(ctx context.Context, in InitiateRequest) (*InitiateResult, error) {
	payload := map[string]interface{}{
		"email":        in.Customer.Email,
		"amount":       MinorUnits(in.Amount),
		"callback_url": in.RedirectURL,
		"metadata":     map[string]string{"rental_id": in.RentalID},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, upstream(ProviderPaystack, "failed to marshal transaction payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.BaseURL+"/transaction/initialize", bytes.NewBuffer(body))
	if err != nil {
		return nil, upstream(ProviderPaystack, "failed to build transaction request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.SecretKey)

	raw, err := g.do(req)
	if err != nil {
		return nil, err
	}

	if ok, _ := raw["status"].(bool); !ok {
		message, _ := raw["message"].(string)
		return nil, upstream(ProviderPaystack, "transaction initialization rejected: "+message, nil)
	}

	var reference string
	if data, ok := raw["data"].(map[string]interface{}); ok {
		reference, _ = data["reference"].(string)
	}
	return &InitiateResult{Reference: reference, Raw: raw}, nil
}

func (g *PaystackGateway) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	endpoint := g.BaseURL + "/transaction/verify/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, upstream(ProviderPaystack, "failed to build verify request", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.SecretKey)

	raw, err := g.do(req)
	if err != nil {
		return nil, err
	}

	verified := false
	if ok, _ := raw["status"].(bool); ok {
		if data, ok := raw["data"].(map[string]interface{}); ok {
			inner, _ := data["status"].(string)
			verified = inner == "success"
		}
	}
	return &VerifyResult{Verified: verified, Raw: raw}, nil
}

func (g *PaystackGateway) do(req *http.Request) (map[string]interface{}, error) {
	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, upstream(ProviderPaystack, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream(ProviderPaystack, "failed to read response body", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, upstream(ProviderPaystack, fmt.Sprintf("API returned status %d: %s", resp.StatusCode, body), nil)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, upstream(ProviderPaystack, "failed to decode response", err)
	}
	return raw, nil
}
