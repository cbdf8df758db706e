package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusOnHold, true},
		{StatusPending, StatusReadyToShip, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusOnHold, StatusPending, true},
		{StatusOnHold, StatusReadyToShip, true},
		{StatusOnHold, StatusCancelled, true},
		{StatusOnHold, StatusShipped, false},
		{StatusReadyToShip, StatusShipped, true},
		{StatusReadyToShip, StatusCancelled, true},
		{StatusReadyToShip, StatusPending, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusShipped, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestStatusCancellable(t *testing.T) {
	assert.True(t, StatusPending.Cancellable())
	assert.True(t, StatusOnHold.Cancellable())
	assert.True(t, StatusReadyToShip.Cancellable())
	assert.False(t, StatusShipped.Cancellable())
	assert.False(t, StatusDelivered.Cancellable())
	assert.False(t, StatusCancelled.Cancellable())
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusOnHold, StatusReadyToShip, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.Truef(t, s.Valid(), "%s", s)
	}
	assert.False(t, Status("returned").Valid())
	assert.False(t, Status("").Valid())
}
