package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccountMatchesRole(t *testing.T) {
	id := uuid.New()

	acc, err := NewAccount(User{ID: id, Role: RoleCustomer}, &CustomerProfile{FirstName: "Ada"})
	require.NoError(t, err)
	cp, ok := acc.Customer()
	require.True(t, ok)
	assert.Equal(t, "Ada", cp.FirstName)
	_, ok = acc.Business()
	assert.False(t, ok)

	_, err = NewAccount(User{ID: id, Role: RoleBusiness}, &CustomerProfile{})
	assert.Error(t, err)

	_, err = NewAccount(User{ID: id, Role: RoleCustomer}, nil)
	assert.Error(t, err)

	acc, err = NewAccount(User{ID: id, Role: RoleAdmin}, nil)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, acc.Profile.Kind())
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&CustomerProfile{FirstName: "Ada", LastName: "Lovelace"}).FullName())
	assert.Equal(t, "Ada", (&CustomerProfile{FirstName: "Ada"}).FullName())
	assert.Equal(t, "Lovelace", (&CustomerProfile{LastName: "Lovelace"}).FullName())
}

func TestRoleAndStatusValidity(t *testing.T) {
	assert.True(t, RoleBusiness.Valid())
	assert.False(t, Role("owner").Valid())
	assert.True(t, QuoteStatusRejected.Valid())
	assert.False(t, QuoteStatus("cancelled").Valid())
	assert.True(t, ProductTypeDirect.Valid())
	assert.False(t, ProductType("rental").Valid())
}
