package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductType enumerates the supported product types.
type ProductType string

const (
	ProductTypeConfigurable ProductType = "configurable"
	ProductTypeDirect       ProductType = "direct"
)

// Valid reports whether t is a known product type.
func (t ProductType) Valid() bool {
	return t == ProductTypeConfigurable || t == ProductTypeDirect
}

// Product represents a catalog entry. Removal only clears IsActive so that
// historical quotes keep resolving.
type Product struct {
	ID               uuid.UUID   `db:"id" json:"id"`
	Name             string      `db:"name" json:"name"`
	Description      string      `db:"description" json:"description"`
	BasePrice        float64     `db:"base_price" json:"base_price"`
	Category         string      `db:"category" json:"category"`
	Type             ProductType `db:"type" json:"type"`
	Stock            int         `db:"stock" json:"stock"`
	CO2Savings       float64     `db:"co2_savings" json:"co2_savings"`
	SolarPower       float64     `db:"solar_power" json:"solar_power"`
	EnergyEfficiency string      `db:"energy_efficiency" json:"energy_efficiency"`
	ImageURL         string      `db:"image_url" json:"image_url"`
	SpecsDocument    string      `db:"specs_document" json:"specs_document,omitempty"`
	IsActive         bool        `db:"is_active" json:"-"`
	CreatedAt        time.Time   `db:"created_at" json:"-"`
	UpdatedAt        time.Time   `db:"updated_at" json:"-"`
}
