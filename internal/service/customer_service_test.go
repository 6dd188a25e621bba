package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/ecolux_api/internal/models"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

func TestCustomerUpdateProfile(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	id := users.addCustomer("ada@example.com")
	svc := NewCustomerService(users, newFakeAddresses())

	p, err := svc.UpdateProfile(ctx, id, UpdateProfileInput{LastName: ptr(" Byron "), Phone: ptr("+34 600 000 000")})
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, "Byron", p.LastName)
	require.NotNil(t, p.Phone)
	assert.Equal(t, "+34 600 000 000", *p.Phone)
	assert.Nil(t, p.Address)

	stored := users.profiles[id].(*models.CustomerProfile)
	assert.Equal(t, "Byron", stored.LastName)

	_, err = svc.UpdateProfile(ctx, uuid.New(), UpdateProfileInput{})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestCustomerUpdateProfileRequiresCustomer(t *testing.T) {
	users := newFakeUsers()
	bizID := uuid.New()
	users.users[bizID] = &models.User{ID: bizID, Role: models.RoleBusiness, IsActive: true}
	users.profiles[bizID] = &models.BusinessProfile{UserID: bizID}
	svc := NewCustomerService(users, newFakeAddresses())

	_, err := svc.UpdateProfile(context.Background(), bizID, UpdateProfileInput{})
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestCustomerDeleteAccount(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	id := users.addCustomer("ada@example.com")
	svc := NewCustomerService(users, newFakeAddresses())

	require.NoError(t, svc.DeleteAccount(ctx, id))
	assert.False(t, users.users[id].IsActive)

	list, err := users.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, svc.DeleteAccount(ctx, uuid.New()), utils.ErrNotFound)
}

func TestCustomerAddresses(t *testing.T) {
	ctx := context.Background()
	addresses := newFakeAddresses()
	svc := NewCustomerService(newFakeUsers(), addresses)
	userID := uuid.New()

	first, err := svc.AddAddress(ctx, userID, AddressInput{Line1: "1 Harbour Rd", City: "Palma", Country: "ES", IsDefault: true})
	require.NoError(t, err)
	assert.Equal(t, "Home", first.Label)

	second, err := svc.AddAddress(ctx, userID, AddressInput{Label: "Marina", Line1: "Pier 4", City: "Ibiza", Country: "ES", IsDefault: true})
	require.NoError(t, err)
	assert.False(t, addresses.items[first.ID].IsDefault)
	assert.True(t, addresses.items[second.ID].IsDefault)

	_, err = svc.AddAddress(ctx, userID, AddressInput{City: "Palma", Country: "ES"})
	assert.EqualError(t, err, "line1 is required")
	_, err = svc.AddAddress(ctx, userID, AddressInput{Line1: "x", Country: "ES"})
	assert.EqualError(t, err, "city is required")
	_, err = svc.AddAddress(ctx, userID, AddressInput{Line1: "x", City: "y"})
	assert.EqualError(t, err, "country is required")

	list, err := svc.Addresses(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.RemoveAddress(ctx, userID, first.ID))
	assert.ErrorIs(t, svc.RemoveAddress(ctx, userID, first.ID), utils.ErrNotFound)
	assert.ErrorIs(t, svc.RemoveAddress(ctx, uuid.New(), second.ID), utils.ErrNotFound)

	list, err = svc.Addresses(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOrderPlace(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	quotes := newFakeQuotes()
	approved := &models.Quote{ID: uuid.New(), UserID: userID, TotalPrice: 450000, Status: models.QuoteStatusApproved}
	draft := &models.Quote{ID: uuid.New(), UserID: userID, Status: models.QuoteStatusDraft}
	foreign := &models.Quote{ID: uuid.New(), UserID: uuid.New(), Status: models.QuoteStatusApproved}
	for _, q := range []*models.Quote{approved, draft, foreign} {
		quotes.items[q.ID] = q
	}
	addresses := newFakeAddresses()
	addr, err := NewCustomerService(newFakeUsers(), addresses).AddAddress(ctx, userID, AddressInput{Line1: "1", City: "c", Country: "ES"})
	require.NoError(t, err)

	orders := &fakeOrders{}
	svc := NewOrderService(orders, quotes, addresses)
	svc.now = func() time.Time { return time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC) }

	o, err := svc.Place(ctx, userID, PlaceOrderInput{QuoteID: approved.ID, AddressID: &addr.ID})
	require.NoError(t, err)
	assert.Equal(t, 450000.0, o.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, o.Status)
	assert.Regexp(t, `^ECO-20250704-[0-9A-F]{8}$`, o.OrderNumber)

	_, err = svc.Place(ctx, userID, PlaceOrderInput{QuoteID: approved.ID})
	assert.ErrorIs(t, err, utils.ErrConflict)

	_, err = svc.Place(ctx, userID, PlaceOrderInput{QuoteID: draft.ID})
	assert.EqualError(t, err, "Only approved quotes can be ordered")

	_, err = svc.Place(ctx, userID, PlaceOrderInput{QuoteID: foreign.ID})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	missing := uuid.New()
	_, err = svc.Place(ctx, userID, PlaceOrderInput{QuoteID: approved.ID, AddressID: &missing})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = svc.Place(ctx, userID, PlaceOrderInput{})
	assert.EqualError(t, err, "quote_id is required")

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBusinessQuotes(t *testing.T) {
	quotes := newFakeQuotes()
	quotes.views = []models.QuoteView{
		{ID: uuid.New(), CustomerFirstName: "Ada", CustomerLastName: "Lovelace", CustomerEmail: "ada@example.com", ProductName: "Yacht", Status: models.QuoteStatusSubmitted},
		{ID: uuid.New(), CustomerEmail: "biz@example.com", ProductName: "Jet", Status: models.QuoteStatusDraft},
	}
	users := newFakeUsers()
	users.addCustomer("ada@example.com")
	svc := NewBusinessService(quotes, users)

	list, err := svc.Quotes(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ada Lovelace", list[0].CustomerName)
	assert.Equal(t, "ada@example.com", list[0].CustomerEmail)
	assert.Equal(t, "", list[1].CustomerName)

	customers, err := svc.Customers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Ada Lovelace", customers[0].Name)
}
