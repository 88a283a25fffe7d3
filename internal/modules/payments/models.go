package payments

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Payment records one payment attempt. The transaction reference is assigned
// by the gateway at initiation and is the external lookup key for verification.
type Payment struct {
	ID                   string          `gorm:"type:char(36);primaryKey" json:"id"`
	Email                string          `gorm:"type:varchar(255);not null" json:"email"`
	Name                 string          `gorm:"type:varchar(100);not null" json:"name"`
	Amount               decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency             string          `gorm:"type:varchar(10);not null;default:'NGN'" json:"currency"`
	Status               string          `gorm:"type:varchar(20);not null" json:"status"`
	TransactionReference string          `gorm:"type:varchar(255);not null;uniqueIndex:ux_payments_reference" json:"transaction_reference"`
	CreatedAt            time.Time       `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

// GatewayEvent is an audit row for every verification outcome, written in the
// same transaction as the status transition.
type GatewayEvent struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	Reference   string         `gorm:"type:varchar(255);not null;index:ix_gateway_events_reference"`
	Status      string         `gorm:"type:varchar(32);not null"`
	PayloadJSON datatypes.JSON `gorm:"type:json;not null"`
	CreatedAt   time.Time      `gorm:"type:datetime(3);not null"`
}

func (GatewayEvent) TableName() string { return "gateway_events" }
