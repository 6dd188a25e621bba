package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus enumerates order states.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Address is a customer address book entry.
type Address struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"-"`
	Label      string    `db:"label" json:"label"`
	Line1      string    `db:"line1" json:"line1"`
	Line2      string    `db:"line2" json:"line2,omitempty"`
	City       string    `db:"city" json:"city"`
	Region     string    `db:"region" json:"region,omitempty"`
	PostalCode string    `db:"postal_code" json:"postal_code,omitempty"`
	Country    string    `db:"country" json:"country"`
	IsDefault  bool      `db:"is_default" json:"is_default"`
	IsActive   bool      `db:"is_active" json:"-"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"-"`
}

// Order is placed from an approved quote and copies its total.
type Order struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	OrderNumber string      `db:"order_number" json:"order_number"`
	UserID      uuid.UUID   `db:"user_id" json:"-"`
	QuoteID     uuid.UUID   `db:"quote_id" json:"quote_id"`
	AddressID   *uuid.UUID  `db:"address_id" json:"address_id,omitempty"`
	TotalAmount float64     `db:"total_amount" json:"total_amount"`
	Status      OrderStatus `db:"status" json:"status"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}
