package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuoteStatus enumerates the quote lifecycle states.
type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "draft"
	QuoteStatusSubmitted QuoteStatus = "submitted"
	QuoteStatusApproved  QuoteStatus = "approved"
	QuoteStatusRejected  QuoteStatus = "rejected"
)

// Valid reports whether s is one of the four lifecycle states.
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSubmitted, QuoteStatusApproved, QuoteStatusRejected:
		return true
	}
	return false
}

// Configuration is the client-supplied option map of a quote. It is stored
// verbatim as JSONB.
type Configuration map[string]any

// String returns the value at key when it is a JSON string, or "".
func (c Configuration) String(key string) string {
	s, _ := c[key].(string)
	return s
}

// Truthy reports whether key is present with a truthy JSON value:
// false, null, "", 0 and empty arrays or objects are falsy.
func (c Configuration) Truthy(key string) bool {
	v, ok := c[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

// Value implements driver.Valuer. The JSON is returned as a string so the
// postgres driver sends it as text rather than bytea.
func (c Configuration) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (c *Configuration) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = Configuration{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("configuration: unsupported scan type %T", src)
	}
	out := Configuration{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return errors.Join(errors.New("configuration: invalid json"), err)
	}
	*c = out
	return nil
}

// Quote is a price-locked snapshot: TotalPrice, CO2Savings and
// SustainabilityScore are computed once at creation and never recomputed.
type Quote struct {
	ID                  uuid.UUID     `db:"id" json:"id"`
	UserID              uuid.UUID     `db:"user_id" json:"user_id"`
	ProductID           uuid.UUID     `db:"product_id" json:"product_id"`
	Configuration       Configuration `db:"configuration" json:"configuration"`
	TotalPrice          float64       `db:"total_price" json:"total_price"`
	CO2Savings          float64       `db:"co2_savings" json:"co2_savings"`
	SustainabilityScore int           `db:"sustainability_score" json:"sustainability_score"`
	Status              QuoteStatus   `db:"status" json:"status"`
	Notes               string        `db:"notes" json:"notes"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at" json:"updated_at"`

	LineItems []QuoteLineItem `db:"-" json:"line_items,omitempty"`
}

// QuoteLineItem is one priced row of a quote breakdown.
type QuoteLineItem struct {
	ID          uuid.UUID `db:"id" json:"-"`
	QuoteID     uuid.UUID `db:"quote_id" json:"-"`
	Position    int       `db:"position" json:"position"`
	Description string    `db:"description" json:"description"`
	OptionKey   string    `db:"option_key" json:"option_key,omitempty"`
	OptionValue string    `db:"option_value" json:"option_value,omitempty"`
	Amount      float64   `db:"amount" json:"amount"`
}

// QuoteView is a quote joined with its product and owner for listings.
type QuoteView struct {
	ID                  uuid.UUID   `db:"id" json:"id"`
	UserID              uuid.UUID   `db:"user_id" json:"-"`
	ProductName         string      `db:"product_name" json:"product_name"`
	CustomerFirstName   string      `db:"customer_first_name" json:"-"`
	CustomerLastName    string      `db:"customer_last_name" json:"-"`
	CustomerEmail       string      `db:"customer_email" json:"-"`
	TotalPrice          float64     `db:"total_price" json:"total_price"`
	CO2Savings          float64     `db:"co2_savings" json:"co2_savings"`
	SustainabilityScore int         `db:"sustainability_score" json:"sustainability_score"`
	Status              QuoteStatus `db:"status" json:"status"`
	CreatedAt           time.Time   `db:"created_at" json:"created_at"`
}
