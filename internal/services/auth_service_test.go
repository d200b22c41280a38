package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/joshua-takyi/skillswap/internal/apperrors"
	"github.com/joshua-takyi/skillswap/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	auth := &stubAuthRepo{}
	profiles := newStubProfileRepo()
	svc := NewAuthService(auth, profiles, nil)

	profile, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Ada@Example.com ",
		Password: "Sup3r$ecret",
		Name:     " Ada   Lovelace ",
	})
	require.NoError(t, err)

	assert.Equal(t, auth.signedUp["ada@example.com"], profile.ID)
	assert.Equal(t, "Ada Lovelace", profile.Name)
	assert.True(t, profile.Public())
	assert.False(t, profile.Banned)
	assert.Equal(t, models.RoleUser, profile.Role)

	stored, err := profiles.GetProfile(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", stored.Email)
}

func TestRegisterRejects(t *testing.T) {
	svc := NewAuthService(&stubAuthRepo{}, newStubProfileRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"bad email", RegisterInput{Email: "nope", Password: "Sup3r$ecret", Name: "Ada"}},
		{"weak password", RegisterInput{Email: "ada@example.com", Password: "password", Name: "Ada"}},
		{"blank name", RegisterInput{Email: "ada@example.com", Password: "Sup3r$ecret", Name: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(&stubAuthRepo{}, newStubProfileRepo(), nil)
	in := RegisterInput{Email: "ada@example.com", Password: "Sup3r$ecret", Name: "Ada"}

	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLoginAndLogout(t *testing.T) {
	session := &models.Session{AccessToken: "at", RefreshToken: "rt", UserID: uuid.New()}
	auth := &stubAuthRepo{session: session}
	svc := NewAuthService(auth, newStubProfileRepo(), nil)
	ctx := context.Background()

	got, err := svc.Login(ctx, LoginInput{Email: "ada@example.com", Password: "whatever"})
	require.NoError(t, err)
	assert.Equal(t, session, got)

	_, err = svc.Login(ctx, LoginInput{Email: "ada@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	require.NoError(t, svc.Logout(ctx, ""))
	require.NoError(t, svc.Logout(ctx, "at"))
	assert.Equal(t, []string{"at"}, auth.signedOut)

	_, err = svc.Refresh(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestLoginFailure(t *testing.T) {
	auth := &stubAuthRepo{signInErr: apperrors.New(apperrors.CodeUnauthenticated, "invalid email or password")}
	svc := NewAuthService(auth, newStubProfileRepo(), nil)

	_, err := svc.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestCurrentProfile(t *testing.T) {
	me := newProfile("me", true)
	svc := NewAuthService(&stubAuthRepo{}, newStubProfileRepo(me), nil)
	ctx := context.Background()

	got, err := svc.CurrentProfile(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, me.ID, got.ID)

	_, err = svc.CurrentProfile(ctx, uuid.New())
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))

	_, err = svc.CurrentProfile(ctx, uuid.Nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
