//go:build unit

package customer_test

import (
	"testing"

	"fairway-booking/internal/domain/customer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("valid addresses", func(t *testing.T) {
		for _, addr := range []string{
			"jean.dupont@example.com",
			"a@b.co",
			"user+tag@sub.domain.org",
		} {
			email, err := customer.NewEmail(addr)
			require.NoError(t, err, addr)
			assert.Equal(t, addr, email.String())
		}
	})

	t.Run("invalid addresses", func(t *testing.T) {
		for _, addr := range []string{
			"",
			"plainaddress",
			"missing-domain@",
			"@missing-local.com",
			"no-tld@domain",
			"spaces in@example.com",
		} {
			_, err := customer.NewEmail(addr)
			assert.ErrorIs(t, err, customer.ErrInvalidEmail, addr)
		}
	})
}

func TestNewCustomer(t *testing.T) {
	email, err := customer.NewEmail("jean.dupont@example.com")
	require.NoError(t, err)

	t.Run("valid customer", func(t *testing.T) {
		c, err := customer.NewCustomer("Jean", "Dupont", email, "+33612345678", nil)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, c.ID())
		assert.Equal(t, "Jean", c.FirstName())
		assert.Equal(t, "Dupont", c.LastName())
		assert.False(t, c.IsLinked())
	})

	t.Run("names are required", func(t *testing.T) {
		_, err := customer.NewCustomer("", "Dupont", email, "", nil)
		assert.ErrorIs(t, err, customer.ErrMissingName)

		_, err = customer.NewCustomer("Jean", "", email, "", nil)
		assert.ErrorIs(t, err, customer.ErrMissingName)
	})

	t.Run("created linked to a user", func(t *testing.T) {
		userID := uuid.New()
		c, err := customer.NewCustomer("Jean", "Dupont", email, "", &userID)
		require.NoError(t, err)
		assert.True(t, c.IsLinked())
		assert.Equal(t, userID, *c.UserID())
	})
}

func TestLink(t *testing.T) {
	email, err := customer.NewEmail("jean.dupont@example.com")
	require.NoError(t, err)

	t.Run("links an unlinked customer", func(t *testing.T) {
		c, err := customer.NewCustomer("Jean", "Dupont", email, "", nil)
		require.NoError(t, err)

		userID := uuid.New()
		assert.True(t, c.Link(userID))
		assert.True(t, c.IsLinked())
		assert.Equal(t, userID, *c.UserID())
	})

	t.Run("first writer wins", func(t *testing.T) {
		first := uuid.New()
		c, err := customer.NewCustomer("Jean", "Dupont", email, "", &first)
		require.NoError(t, err)

		assert.False(t, c.Link(uuid.New()))
		assert.Equal(t, first, *c.UserID())
	})
}
