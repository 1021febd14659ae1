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

const flutterwaveBaseURL = "https://api.flutterwave.com"

// FlutterwaveGateway creates hosted-checkout payments. The caller supplies an
// idempotent tx_ref and a redirect URL; the amount stays in major units and
// the currency is fixed to USD. A transaction is settled once verification
// reports status "success".
type FlutterwaveGateway struct {
	SecretKey string
	BaseURL   string
	Client    *http.Client
}

func NewFlutterwaveGateway(secretKey string) *FlutterwaveGateway {
	return &FlutterwaveGateway{
		SecretKey: secretKey,
		BaseURL:   flutterwaveBaseURL,
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *FlutterwaveGateway) Name() Provider { return ProviderFlutterwave }

func (g *FlutterwaveGateway) Initiate(ctx context.Context, in InitiateRequest) (*InitiateResult, error) {
	payload := map[string]interface{}{
		"tx_ref":       in.Reference,
		"amount":       in.Amount,
		"currency":     "USD",
		"redirect_url": in.RedirectURL,
		"customer": map[string]string{
			"email":       in.Customer.Email,
			"phonenumber": in.Customer.PhoneNumber,
			"name":        in.Customer.FullName,
		},
		"customizations": map[string]string{
			"title": "Car Rental Payment",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, upstream(ProviderFlutterwave, "failed to marshal payment payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.BaseURL+"/v3/payments", bytes.NewBuffer(body))
	if err != nil {
		return nil, upstream(ProviderFlutterwave, "failed to build payment request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.SecretKey)

	raw, err := g.do(req)
	if err != nil {
		return nil, err
	}

	if status, _ := raw["status"].(string); status != "success" {
		message, _ := raw["message"].(string)
		return nil, upstream(ProviderFlutterwave, "payment initiation rejected: "+message, nil)
	}
	return &InitiateResult{Reference: in.Reference, Raw: raw}, nil
}

func (g *FlutterwaveGateway) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	endpoint := fmt.Sprintf("%s/v3/transactions/%s/verify", g.BaseURL, url.PathEscape(reference))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, upstream(ProviderFlutterwave, "failed to build verify request", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.SecretKey)

	raw, err := g.do(req)
	if err != nil {
		return nil, err
	}

	status, _ := raw["status"].(string)
	return &VerifyResult{Verified: status == "success", Raw: raw}, nil
}

func (g *FlutterwaveGateway) do(req *http.Request) (map[string]interface{}, error) {
	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, upstream(ProviderFlutterwave, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream(ProviderFlutterwave, "failed to read response body", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, upstream(ProviderFlutterwave, fmt.Sprintf("API returned status %d: %s", resp.StatusCode, body), nil)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, upstream(ProviderFlutterwave, "failed to decode response", err)
	}
	return raw, nil
}
