package payments

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/F0laf0lu/payment-gateway/internal/shared/apperr"
)

// maxAmount is the decimal(10,2) column capacity; it also keeps the
// minor-unit conversion well inside int64.
var maxAmount = decimal.RequireFromString("99999999.99")

// Service orchestrates the payment lifecycle: initiate -> pending ->
// verify -> success/failed, plus lookups.
type Service struct {
	store       Store
	gateway     Gateway
	logger      *slog.Logger
	currency    string
	callbackURL string
}

func NewService(store Store, gw Gateway, currency, callbackURL string) *Service {
	return &Service{
		store:       store,
		gateway:     gw,
		logger:      slog.Default(),
		currency:    currency,
		callbackURL: callbackURL,
	}
}

func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

type InitiateInput struct {
	Name   string
	Email  string
	Amount string // decimal string, at most two fraction digits
}

type InitiateResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type VerifySummary struct {
	ID       string
	Status   string
	Amount   decimal.Decimal
	Currency string
	Channel  string
	PaidAt   time.Time
}

// Initiate validates input, converts the amount to minor units exactly, and
// calls the gateway before touching the store: a record exists only once the
// gateway has confirmed initiation, so a gateway failure leaves no orphan row.
func (s *Service) Initiate(ctx context.Context, in InitiateInput) (InitiateResult, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	rawAmount := strings.TrimSpace(in.Amount)

	if name == "" || email == "" || rawAmount == "" {
		return InitiateResult{}, apperr.InvalidErr("Name, email, and amount are required.", nil)
	}

	amount, err := decimal.NewFromString(rawAmount)
	if err != nil || !amount.IsPositive() || !amount.Shift(2).IsInteger() || amount.GreaterThan(maxAmount) {
		return InitiateResult{}, apperr.InvalidErr("Invalid amount format.", nil)
	}

	// Exact minor-unit conversion; sub-kobo precision was rejected above.
	amountMinor := amount.Shift(2).IntPart()

	resp, err := s.gateway.Initialize(ctx, InitializeRequest{
		Email:       email,
		AmountMinor: amountMinor,
		Currency:    s.currency,
		CallbackURL: s.callbackURL,
	})
	if err != nil {
		return InitiateResult{}, err
	}

	p := Payment{
		ID:                   uuid.NewString(),
		Email:                email,
		Name:                 name,
		Amount:               amount,
		Currency:             s.currency,
		Status:               StatusPending,
		TransactionReference: resp.Reference,
	}
	if err := s.store.Create(ctx, &p); err != nil {
		if errors.Is(err, ErrDuplicateReference) {
			return InitiateResult{}, apperr.ConflictErr("Duplicate transaction reference.")
		}
		return InitiateResult{}, apperr.Wrap(err)
	}

	s.logger.InfoContext(ctx, "payment initiated",
		"payment_id", p.ID,
		"reference", resp.Reference,
		"amount_minor", amountMinor,
		"currency", s.currency,
	)

	return InitiateResult{
		AuthorizationURL: resp.AuthorizationURL,
		AccessCode:       resp.AccessCode,
		Reference:        resp.Reference,
	}, nil
}

// Verify asks the gateway for the transaction's external status and applies
// the pending->success or pending->failed transition. Re-verifying a terminal
// record is a no-op that returns the current state.
func (s *Service) Verify(ctx context.Context, reference string) (VerifySummary, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return VerifySummary{}, apperr.InvalidErr("Transaction reference is required", nil)
	}

	vres, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return VerifySummary{}, err
	}

	target := StatusFailed
	if vres.Status == StatusSuccess {
		target = StatusSuccess
	}

	p, transitioned, err := s.store.Finalize(ctx, reference, target, vres.Raw)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return VerifySummary{}, apperr.NotFoundErr("Payment not found.")
		}
		return VerifySummary{}, apperr.Wrap(err)
	}

	s.logger.InfoContext(ctx, "payment verified",
		"payment_id", p.ID,
		"reference", reference,
		"external_status", vres.Status,
		"status", p.Status,
		"transitioned", transitioned,
	)

	if p.Status != StatusSuccess {
		return VerifySummary{}, ErrTransactionNotSuccessful
	}

	currency := vres.Currency
	if currency == "" {
		currency = p.Currency
	}

	return VerifySummary{
		ID:       p.ID,
		Status:   p.Status,
		Amount:   p.Amount,
		Currency: currency,
		Channel:  vres.Channel,
		PaidAt:   p.UpdatedAt,
	}, nil
}

// Get returns a stored payment record by id. A malformed id is a client
// input error, not a 500.
func (s *Service) Get(ctx context.Context, id string) (Payment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Payment{}, apperr.InvalidErr("Invalid payment id.", nil)
	}

	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Payment{}, apperr.NotFoundErr("Payment not found.")
		}
		return Payment{}, apperr.Wrap(err)
	}
	return p, nil
}
