package payments

import "context"

type InitializeRequest struct {
	Email       string
	AmountMinor int64 // smallest currency unit (kobo)
	Currency    string
	CallbackURL string
}

type InitializeResponse struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type VerifyResponse struct {
	Status      string // gateway's external status, e.g. "success" | "failed" | "abandoned"
	Channel     string
	Currency    string
	AmountMinor int64
	PaidAt      string
	Raw         []byte // raw gateway payload, persisted to the event log
}

// Gateway is the outbound contract to the payment provider. Both calls must
// honor ctx and apply a bounded timeout.
type Gateway interface {
	Initialize(ctx context.Context, req InitializeRequest) (InitializeResponse, error)
	Verify(ctx context.Context, reference string) (VerifyResponse, error)
}
