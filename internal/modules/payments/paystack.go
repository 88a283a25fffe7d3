package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxGatewayBody = 1 << 20

// PaystackClient implements Gateway against the Paystack REST API.
type PaystackClient struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

func NewPaystackClient(baseURL, secretKey string, timeout time.Duration) *PaystackClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PaystackClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
	}
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type paystackInitializePayload struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	CallbackURL string `json:"callback_url"`
}

type paystackInitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackVerifyData struct {
	Status   string `json:"status"`
	Channel  string `json:"channel"`
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
	PaidAt   string `json:"paid_at"`
}

func (p *PaystackClient) Initialize(ctx context.Context, in InitializeRequest) (InitializeResponse, error) {
	payload := paystackInitializePayload{
		Email:       in.Email,
		Amount:      in.AmountMinor,
		Currency:    in.Currency,
		CallbackURL: in.CallbackURL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return InitializeResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return InitializeResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")

	env, err := p.do(req)
	if err != nil {
		return InitializeResponse{}, err
	}

	var data paystackInitializeData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return InitializeResponse{}, fmt.Errorf("paystack initialize: decode data: %w", err)
	}
	if data.Reference == "" {
		return InitializeResponse{}, fmt.Errorf("paystack initialize: missing reference in response")
	}

	return InitializeResponse{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

func (p *PaystackClient) Verify(ctx context.Context, reference string) (VerifyResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return VerifyResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)

	env, err := p.do(req)
	if err != nil {
		return VerifyResponse{}, err
	}

	var data paystackVerifyData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return VerifyResponse{}, fmt.Errorf("paystack verify: decode data: %w", err)
	}

	return VerifyResponse{
		Status:      data.Status,
		Channel:     data.Channel,
		Currency:    data.Currency,
		AmountMinor: data.Amount,
		PaidAt:      data.PaidAt,
		Raw:         env.Data,
	}, nil
}

// do executes the request and classifies failures: network/timeout errors
// become ErrGatewayUnavailable, non-2xx responses become *GatewayError.
func (p *PaystackClient) do(req *http.Request) (paystackEnvelope, error) {
	res, err := p.httpClient.Do(req)
	if err != nil {
		return paystackEnvelope{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxGatewayBody))
	if err != nil {
		return paystackEnvelope{}, fmt.Errorf("%w: read body: %v", ErrGatewayUnavailable, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return paystackEnvelope{}, &GatewayError{StatusCode: res.StatusCode, Body: body}
	}

	var env paystackEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return paystackEnvelope{}, fmt.Errorf("paystack: decode envelope: %w", err)
	}
	return env, nil
}
