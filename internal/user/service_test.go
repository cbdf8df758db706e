package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/velora/storefront-backend/internal/auth"
)

func TestRegister_HashesAndDefaultsRole(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	created, err := svc.Register(User{Email: "sam@example.com", Password: "hunter2hunter2", FirstName: "Sam"})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleCustomer, created.Role)
	assert.NotEqual(t, "hunter2hunter2", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("hunter2hunter2")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	_, err := svc.Register(User{Email: "sam@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	_, err = svc.Register(User{Email: "sam@example.com", Password: "different-pass"})
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	_, err := svc.Register(User{Email: "sam@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	got, err := svc.Authenticate("sam@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", got.Email)

	_, err = svc.Authenticate("sam@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody@example.com", "hunter2hunter2")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
