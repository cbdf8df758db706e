package coupon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededService(t *testing.T) *Service {
	t.Helper()
	repo := NewInMemoryRepository()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }

	seed := []Coupon{
		{Code: "WELCOME10", Type: TypePercent, Value: 10, Active: true},
		{Code: "FIVER", Type: TypeFlat, Value: 5, MinSubtotal: 20, Active: true},
		{Code: "GONE", Type: TypeFlat, Value: 5, Active: true, ExpiresAt: "2026-01-01T00:00:00Z"},
		{Code: "PAUSED", Type: TypePercent, Value: 50, Active: false},
	}
	for _, c := range seed {
		if _, err := repo.Create(c); err != nil {
			t.Fatal(err)
		}
	}
	return svc
}

func TestApply_PercentAndFlat(t *testing.T) {
	svc := seededService(t)

	got, err := svc.Apply("WELCOME10", 50)
	require.NoError(t, err)
	assert.InDelta(t, 5, got.Discount, 0.001)
	assert.InDelta(t, 45, got.Total, 0.001)

	got, err = svc.Apply("FIVER", 25)
	require.NoError(t, err)
	assert.InDelta(t, 5, got.Discount, 0.001)
	assert.InDelta(t, 20, got.Total, 0.001)
}

func TestApply_CodeIsCaseInsensitive(t *testing.T) {
	svc := seededService(t)

	got, err := svc.Apply("welcome10", 50)
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", got.Code)
}

func TestApply_Guards(t *testing.T) {
	svc := seededService(t)

	_, err := svc.Apply("NOPE", 50)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Apply("GONE", 50)
	require.ErrorIs(t, err, ErrExpired)

	_, err = svc.Apply("PAUSED", 50)
	require.ErrorIs(t, err, ErrInactive)

	_, err = svc.Apply("FIVER", 10)
	require.ErrorIs(t, err, ErrMinSubtotal)
}

func TestApply_DiscountNeverExceedsSubtotal(t *testing.T) {
	svc := seededService(t)

	got, err := svc.Apply("FIVER", 20)
	require.NoError(t, err)
	assert.InDelta(t, 15, got.Total, 0.001)

	repo := NewInMemoryRepository()
	big := NewService(repo)
	_, err = repo.Create(Coupon{Code: "MEGA", Type: TypeFlat, Value: 100, Active: true})
	require.NoError(t, err)

	got, err = big.Apply("MEGA", 30)
	require.NoError(t, err)
	assert.InDelta(t, 30, got.Discount, 0.001)
	assert.InDelta(t, 0, got.Total, 0.001)
}

func TestCreate_DuplicateCode(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	_, err := svc.Create(Coupon{Code: "ONCE", Type: TypeFlat, Value: 1, Active: true})
	require.NoError(t, err)

	_, err = svc.Create(Coupon{Code: "once", Type: TypeFlat, Value: 1, Active: true})
	require.ErrorIs(t, err, ErrCodeExists)
}
