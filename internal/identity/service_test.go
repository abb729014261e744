package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	user, err := svc.Register(ctx, Credentials{Email: "Buyer@Example.com", Password: "hunter2secret"})
	require.NoError(t, err)
	require.Equal(t, "buyer@example.com", user.Email)
	require.NotEmpty(t, user.ID)

	got, err := svc.Authenticate(ctx, Credentials{Email: "buyer@example.com", Password: "hunter2secret"})
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestAuthenticateRejectsBadPassword(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, Credentials{Email: "buyer@example.com", Password: "hunter2secret"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, Credentials{Email: "buyer@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, Credentials{Email: "nobody@example.com", Password: "hunter2secret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, Credentials{Email: "not-an-email", Password: "hunter2secret"})
	require.Error(t, err)

	_, err = svc.Register(ctx, Credentials{Email: "buyer@example.com", Password: "short"})
	require.Error(t, err)
}
