package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/ecolux_api/internal/models"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

// UpdateProfileInput is a partial update of a customer's contact data.
type UpdateProfileInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

// AddressInput describes a new address book entry.
type AddressInput struct {
	Label      string `json:"label"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

// CustomerService manages a customer's own account data.
type CustomerService struct {
	users     UserStore
	addresses AddressStore
}

// NewCustomerService constructs a CustomerService.
func NewCustomerService(users UserStore, addresses AddressStore) *CustomerService {
	return &CustomerService{users: users, addresses: addresses}
}

// UpdateProfile applies the provided fields to the caller's customer profile.
func (s *CustomerService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*models.CustomerProfile, error) {
	acc, err := s.users.GetAccount(ctx, userID)
	if err != nil {
		if isNoRows(err) {
			return nil, utils.NotFound("Profile not found")
		}
		return nil, fmt.Errorf("load account: %w", err)
	}
	profile, ok := acc.Customer()
	if !ok {
		return nil, utils.Forbidden("Customer access required")
	}

	updated := *profile
	if in.FirstName != nil {
		updated.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		updated.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		updated.Phone = in.Phone
	}
	if in.Address != nil {
		updated.Address = in.Address
	}
	if err := validateProfile(&updated); err != nil {
		return nil, err
	}

	if err := s.users.UpdateCustomerProfile(ctx, &updated); err != nil {
		if isNoRows(err) {
			return nil, utils.NotFound("Profile not found")
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	log.Info().Str("user_id", userID.String()).Msg("Customer profile updated")
	return &updated, nil
}

// DeleteAccount soft-deletes the caller. Quotes and orders stay in place.
func (s *CustomerService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.Deactivate(ctx, userID); err != nil {
		if isNoRows(err) {
			return utils.NotFound("User not found")
		}
		return fmt.Errorf("deactivate user: %w", err)
	}
	log.Info().Str("user_id", userID.String()).Msg("Customer account deactivated")
	return nil
}

// Addresses returns the caller's active addresses.
func (s *CustomerService) Addresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return s.addresses.ListByUser(ctx, userID)
}

// AddAddress stores a new address for the caller.
func (s *CustomerService) AddAddress(ctx context.Context, userID uuid.UUID, in AddressInput) (*models.Address, error) {
	a := &models.Address{
		UserID:     userID,
		Label:      strings.TrimSpace(in.Label),
		Line1:      strings.TrimSpace(in.Line1),
		Line2:      strings.TrimSpace(in.Line2),
		City:       strings.TrimSpace(in.City),
		Region:     strings.TrimSpace(in.Region),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Country:    strings.TrimSpace(in.Country),
		IsDefault:  in.IsDefault,
	}
	switch {
	case a.Line1 == "":
		return nil, utils.Required("line1")
	case a.City == "":
		return nil, utils.Required("city")
	case a.Country == "":
		return nil, utils.Required("country")
	}
	if err := utils.FirstError(
		utils.MaxLen("label", a.Label, models.MaxAddressLabelLen),
		utils.MaxLen("line1", a.Line1, models.MaxAddressLineLen),
		utils.MaxLen("line2", a.Line2, models.MaxAddressLineLen),
		utils.MaxLen("city", a.City, models.MaxCityLen),
		utils.MaxLen("region", a.Region, models.MaxRegionLen),
		utils.MaxLen("postal_code", a.PostalCode, models.MaxPostalCodeLen),
	); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(a.Country) != models.CountryCodeLen {
		return nil, utils.Invalid("country", "country must be a 2-letter ISO country code")
	}
	a.Country = strings.ToUpper(a.Country)
	if a.Label == "" {
		a.Label = "Home"
	}

	if err := s.addresses.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return a, nil
}

// RemoveAddress soft-deletes one of the caller's addresses.
func (s *CustomerService) RemoveAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	if err := s.addresses.Deactivate(ctx, addressID, userID); err != nil {
		if isNoRows(err) {
			return utils.NotFound("Address not found")
		}
		return fmt.Errorf("deactivate address: %w", err)
	}
	return nil
}
