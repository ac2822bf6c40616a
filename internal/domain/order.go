package domain

import (
	"errors"
	"time"
)

// OrderTTL is the validity window of a rented number. The provider releases
// the number after this window, so ExpiresAt is always CreatedAt + OrderTTL.
const OrderTTL = 20 * time.Minute

type OrderStatus string

const (
	StatusWaiting   OrderStatus = "WAITING"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCanceled  OrderStatus = "CANCELED"
	StatusUsed      OrderStatus = "USED"
	StatusExpired   OrderStatus = "EXPIRED"

	// StatusUnknown is never persisted; it is reported to the caller when
	// the provider could not be reached.
	StatusUnknown = "UNKNOWN"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidSelection = errors.New("invalid service or country")
)

type Order struct {
	ID          string      `gorm:"primaryKey;type:varchar(32)" json:"id"`
	PhoneNumber string      `gorm:"type:varchar(20);not null" json:"number"`
	Service     string      `gorm:"type:varchar(16);not null" json:"service"`
	Country     string      `gorm:"type:varchar(8);not null" json:"country"`
	Status      OrderStatus `gorm:"type:varchar(16);not null" json:"status"`
	SmsCode     *string     `gorm:"type:varchar(32)" json:"sms_code"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// Expired reports whether the validity window has elapsed. Expiry is a
// derived fact evaluated at read time; the stored status may still say
// WAITING until the sweeper catches up.
func (o *Order) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// Active reports whether the order is still waiting for a code inside its
// validity window.
func (o *Order) Active(now time.Time) bool {
	return o.Status == StatusWaiting && !o.Expired(now)
}

// OrderView is the list representation of an order: short codes are replaced
// with human-readable catalog names and the remaining validity is included.
type OrderView struct {
	ID          string      `json:"id"`
	PhoneNumber string      `json:"number"`
	Service     string      `json:"service"`
	Country     string      `json:"country"`
	Status      OrderStatus `json:"status"`
	SmsCode     *string     `json:"sms_code,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
	ExpiresIn   int         `json:"expires_in"`
}

// StatusResult is the outcome of polling the provider for an order. Status
// carries either a terminal order status, WAITING, UNKNOWN, or the raw
// provider text when the code is unrecognized.
type StatusResult struct {
	Status string `json:"status"`
	Sms    string `json:"sms,omitempty"`
}
