package payments

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store persists payment records. Finalize is the only mutation after create:
// a compare-and-swap from pending into a terminal status, plus an event-log
// row, in one atomic operation. Terminal states are never overwritten.
type Store interface {
	Create(ctx context.Context, p *Payment) error
	FindByID(ctx context.Context, id string) (Payment, error)
	FindByReference(ctx context.Context, reference string) (Payment, error)
	Finalize(ctx context.Context, reference, status string, payload []byte) (Payment, bool, error)
}

type GormStore struct{ db *gorm.DB }

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) Create(ctx context.Context, p *Payment) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		if isDup(err) {
			return ErrDuplicateReference
		}
		return err
	}
	return nil
}

func (s *GormStore) FindByID(ctx context.Context, id string) (Payment, error) {
	var p Payment
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, err
	}
	return p, nil
}

func (s *GormStore) FindByReference(ctx context.Context, reference string) (Payment, error) {
	var p Payment
	if err := s.db.WithContext(ctx).First(&p, "transaction_reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, err
	}
	return p, nil
}

// Finalize transitions the record for reference from pending to status inside
// one transaction. The conditional UPDATE is the guard: concurrent verifies
// race on it and only one wins; the rest observe the terminal record.
func (s *GormStore) Finalize(ctx context.Context, reference, status string, payload []byte) (Payment, bool, error) {
	if status != StatusSuccess && status != StatusFailed {
		return Payment{}, false, errors.New("finalize: status must be terminal")
	}

	var out Payment
	transitioned := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		res := tx.WithContext(ctx).Model(&Payment{}).
			Where("transaction_reference = ? AND status = ?", reference, StatusPending).
			Updates(map[string]any{"status": status, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		transitioned = res.RowsAffected > 0

		if len(payload) == 0 {
			payload = []byte("{}")
		}
		ev := GatewayEvent{
			ID:          uuid.NewString(),
			Reference:   reference,
			Status:      status,
			PayloadJSON: datatypes.JSON(payload),
			CreatedAt:   now,
		}
		if err := tx.WithContext(ctx).Create(&ev).Error; err != nil {
			return err
		}

		if err := tx.WithContext(ctx).First(&out, "transaction_reference = ?", reference).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// rolls back the event row as well
				return ErrNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return Payment{}, false, err
	}
	return out, transitioned, nil
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
