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

func newFlutterwaveTestGateway(handler http.HandlerFunc) (*FlutterwaveGateway, *httptest.Server) {
	server := httptest.NewServer(handler)
	gw := NewFlutterwaveGateway("FLWSECK_TEST")
	gw.BaseURL = server.URL
	return gw, server
}

func TestFlutterwaveInitiateSendsMajorUnits(t *testing.T) {
	var gotPayload map[string]interface{}
	gw, server := newFlutterwaveTestGateway(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/payments", r.URL.Path)
		require.Equal(t, "Bearer FLWSECK_TEST", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Write([]byte(`{"status": "success", "data": {"link": "https://checkout.flutterwave.com/v3/hosted/pay/abc"}}`))
	})
	defer server.Close()

	result, err := gw.Initiate(context.Background(), InitiateRequest{
		Amount:      500,
		Currency:    "USD",
		Reference:   "rent_xyz_1700000000",
		RedirectURL: "https://example.com/payment/callback",
		Customer:    Customer{FullName: "Jane Doe", Email: "jane@example.com", PhoneNumber: "0712345678"},
	})
	require.NoError(t, err)

	// Flutterwave takes the amount in major units, unlike the other providers.
	assert.Equal(t, float64(500), gotPayload["amount"])
	assert.Equal(t, "rent_xyz_1700000000", gotPayload["tx_ref"])
	assert.Equal(t, "USD", gotPayload["currency"])
	assert.Equal(t, "https://example.com/payment/callback", gotPayload["redirect_url"])

	customer := gotPayload["customer"].(map[string]interface{})
	assert.Equal(t, "jane@example.com", customer["email"])
	assert.Equal(t, "0712345678", customer["phonenumber"])

	assert.Equal(t, "rent_xyz_1700000000", result.Reference)
}

func TestFlutterwaveInitiateRejected(t *testing.T) {
	gw, server := newFlutterwaveTestGateway(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "message": "Invalid currency"}`))
	})
	defer server.Close()

	_, err := gw.Initiate(context.Background(), InitiateRequest{Amount: 10, Reference: "ref"})
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, ProviderFlutterwave, upstreamErr.Provider)
	assert.Contains(t, upstreamErr.Message, "Invalid currency")
}

func TestFlutterwaveVerify(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		verified bool
	}{
		{"successful transaction", `{"status": "success", "data": {"status": "successful"}}`, true},
		{"failed transaction", `{"status": "error", "message": "No transaction was found"}`, false},
		{"pending envelope", `{"status": "pending"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, server := newFlutterwaveTestGateway(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/v3/transactions/tx-1/verify", r.URL.Path)
				w.Write([]byte(tt.body))
			})
			defer server.Close()

			result, err := gw.Verify(context.Background(), "tx-1")
			require.NoError(t, err)
			assert.Equal(t, tt.verified, result.Verified)
		})
	}
}

func TestFlutterwaveServerError(t *testing.T) {
	gw, server := newFlutterwaveTestGateway(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := gw.Verify(context.Background(), "tx-1")
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, ProviderFlutterwave, upstreamErr.Provider)
}
