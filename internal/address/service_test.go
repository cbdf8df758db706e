package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededService() *Service {
	return NewService(NewInMemoryRepository([]Address{
		{AddressID: 1, UserID: 7, Recipient: "Sam", Line1: "1 High St", City: "Leeds", Postcode: "LS1"},
		{AddressID: 2, UserID: 8, Recipient: "Alex", Line1: "2 Low Rd", City: "York", Postcode: "YO1"},
	}))
}

func TestGetByID_ScopedToOwner(t *testing.T) {
	svc := seededService()

	got, err := svc.GetByID(7, 1)
	require.NoError(t, err)
	assert.Equal(t, "Sam", got.Recipient)

	// someone else's address looks like it does not exist
	_, err = svc.GetByID(7, 2)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(7, 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListByUser(t *testing.T) {
	svc := seededService()

	mine, err := svc.ListByUser(7)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 1, mine[0].AddressID)
}
