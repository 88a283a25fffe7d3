package payments

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MemStore is a mutex-guarded in-memory Store used by tests and the local
// mock-gateway loop. Semantics mirror GormStore, including the CAS in Finalize.
type MemStore struct {
	mu     sync.Mutex
	byID   map[string]Payment
	byRef  map[string]string // transaction reference -> payment id
	events []GatewayEvent
}

func NewMemStore() *MemStore {
	return &MemStore{
		byID:  make(map[string]Payment),
		byRef: make(map[string]string),
	}
}

func (s *MemStore) Create(_ context.Context, p *Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byRef[p.TransactionReference]; exists {
		return ErrDuplicateReference
	}

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	s.byID[p.ID] = *p
	s.byRef[p.TransactionReference] = p.ID
	return nil
}

func (s *MemStore) FindByID(_ context.Context, id string) (Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return Payment{}, ErrNotFound
	}
	return p, nil
}

func (s *MemStore) FindByReference(_ context.Context, reference string) (Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byRef[reference]
	if !ok {
		return Payment{}, ErrNotFound
	}
	return s.byID[id], nil
}

func (s *MemStore) Finalize(_ context.Context, reference, status string, payload []byte) (Payment, bool, error) {
	if status != StatusSuccess && status != StatusFailed {
		return Payment{}, false, errors.New("finalize: status must be terminal")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byRef[reference]
	if !ok {
		return Payment{}, false, ErrNotFound
	}

	p := s.byID[id]
	transitioned := false
	if p.Status == StatusPending {
		p.Status = status
		p.UpdatedAt = time.Now()
		s.byID[id] = p
		transitioned = true
	}

	if len(payload) == 0 {
		payload = []byte("{}")
	}
	s.events = append(s.events, GatewayEvent{
		ID:          uuid.NewString(),
		Reference:   reference,
		Status:      status,
		PayloadJSON: datatypes.JSON(payload),
		CreatedAt:   time.Now(),
	})

	return p, transitioned, nil
}

// Events returns a copy of the recorded gateway events.
func (s *MemStore) Events() []GatewayEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GatewayEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Len reports the number of stored payment records.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
