package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPaystackClient_Initialize(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		require.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "ada@example.com", payload["email"])
		require.EqualValues(t, 500000, payload["amount"])
		require.Equal(t, "NGN", payload["currency"])
		require.Equal(t, "http://localhost:8080/api/v1/payment/verify", payload["callback_url"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "ps_ref_42"
			}
		}`))
	}))
	defer ts.Close()

	client := NewPaystackClient(ts.URL, "sk_test_abc", 10*time.Second)

	res, err := client.Initialize(context.Background(), InitializeRequest{
		Email:       "ada@example.com",
		AmountMinor: 500000,
		Currency:    "NGN",
		CallbackURL: "http://localhost:8080/api/v1/payment/verify",
	})
	require.NoError(t, err)
	require.Equal(t, "ps_ref_42", res.Reference)
	require.Equal(t, "https://checkout.paystack.com/abc123", res.AuthorizationURL)
	require.Equal(t, "abc123", res.AccessCode)
}

func TestPaystackClient_InitializeRejected(t *testing.T) {
	body := `{"status":false,"message":"Invalid amount passed"}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	client := NewPaystackClient(ts.URL, "sk_test_abc", 10*time.Second)

	_, err := client.Initialize(context.Background(), InitializeRequest{
		Email:       "ada@example.com",
		AmountMinor: -1,
		Currency:    "NGN",
	})

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	require.Equal(t, http.StatusBadRequest, gwErr.StatusCode)
	require.JSONEq(t, body, string(gwErr.Body))
}

func TestPaystackClient_NetworkErrorIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close() // connection refused from here on

	client := NewPaystackClient(ts.URL, "sk_test_abc", time.Second)

	_, err := client.Initialize(context.Background(), InitializeRequest{
		Email:       "ada@example.com",
		AmountMinor: 500000,
		Currency:    "NGN",
	})
	require.ErrorIs(t, err, ErrGatewayUnavailable)

	_, err = client.Verify(context.Background(), "ps_ref_42")
	require.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestPaystackClient_Verify(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/transaction/verify/ps_ref_42", r.URL.Path)
		require.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"status": "success",
				"channel": "card",
				"currency": "NGN",
				"amount": 500000,
				"paid_at": "2025-01-15T10:30:00.000Z"
			}
		}`))
	}))
	defer ts.Close()

	client := NewPaystackClient(ts.URL, "sk_test_abc", 10*time.Second)

	res, err := client.Verify(context.Background(), "ps_ref_42")
	require.NoError(t, err)
	require.Equal(t, "success", res.Status)
	require.Equal(t, "card", res.Channel)
	require.Equal(t, "NGN", res.Currency)
	require.EqualValues(t, 500000, res.AmountMinor)
	require.NotEmpty(t, res.Raw, "raw payload is kept for the event log")
}

func TestPaystackClient_VerifyTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	client := NewPaystackClient(ts.URL, "sk_test_abc", 20*time.Millisecond)

	_, err := client.Verify(context.Background(), "ps_ref_42")
	require.ErrorIs(t, err, ErrGatewayUnavailable, "verify must be bounded by the timeout")
}
