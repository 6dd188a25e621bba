package models

// Column widths of the bounded VARCHAR columns in the migrations. Inputs are
// checked against these before they reach the database.
const (
	MaxEmailLen         = 120
	MaxPersonNameLen    = 80
	MaxPhoneLen         = 20
	MaxCompanyNameLen   = 200
	MaxTaxIDLen         = 50
	MaxContactPersonLen = 100
	MaxBusinessTypeLen  = 100
	MaxCompanySizeLen   = 50

	MaxProductNameLen      = 255
	MaxCategoryLen         = 100
	MaxEnergyEfficiencyLen = 50
	MaxURLLen              = 500

	MaxAddressLabelLen = 50
	MaxAddressLineLen  = 255
	MaxCityLen         = 100
	MaxRegionLen       = 100
	MaxPostalCodeLen   = 20
	CountryCodeLen     = 2
)
