package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaystackTestGateway(handler http.HandlerFunc) (*PaystackGateway, *httptest.Server) {
	server := httptest.NewServer(handler)
	gw := NewPaystackGateway("sk_test_paystack")
	gw.BaseURL = server.URL
	return gw, server
}

func TestPaystackInitiateSendsMinorUnits(t *testing.T) {
	var gotPayload map[string]interface{}
	gw, server := newPaystackTestGateway(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		require.Equal(t, "Bearer sk_test_paystack", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Write([]byte(`{"status": true, "data": {"authorization_url": "https://checkout.paystack.com/abc", "reference": "ps_ref_1"}}`))
	})
	defer server.Close()

	result, err := gw.Initiate(context.Background(), InitiateRequest{
		Amount:      100.50,
		RentalID:    "rental-1",
		RedirectURL: "https://example.com/payment/callback",
		Customer:    Customer{Email: "jane@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, float64(10050), gotPayload["amount"])
	assert.Equal(t, "jane@example.com", gotPayload["email"])
	assert.Equal(t, "ps_ref_1", result.Reference)
}

func TestPaystackInitiateRejected(t *testing.T) {
	gw, server := newPaystackTestGateway(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": false, "message": "Invalid key"}`))
	})
	defer server.Close()

	_, err := gw.Initiate(context.Background(), InitiateRequest{Amount: 10})
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, ProviderPaystack, upstreamErr.Provider)
	assert.Contains(t, upstreamErr.Message, "Invalid key")
}

func TestPaystackVerify(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		verified bool
	}{
		{"settled transaction", `{"status": true, "data": {"status": "success"}}`, true},
		{"abandoned transaction", `{"status": true, "data": {"status": "abandoned"}}`, false},
		{"failed transaction", `{"status": true, "data": {"status": "failed"}}`, false},
		{"envelope status false", `{"status": false, "message": "Transaction reference not found"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, server := newPaystackTestGateway(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/transaction/verify/ps_ref_1", r.URL.Path)
				w.Write([]byte(tt.body))
			})
			defer server.Close()

			result, err := gw.Verify(context.Background(), "ps_ref_1")
			require.NoError(t, err)
			assert.Equal(t, tt.verified, result.Verified)
		})
	}
}
