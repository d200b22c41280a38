package models

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/skillswap/internal/apperrors"
	"github.com/supabase-community/gotrue-go/types"
)

func sessionFrom(res *types.TokenResponse) *Session {
	return &Session{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresIn:    res.ExpiresIn,
		UserID:       res.User.ID,
		Email:        res.User.Email,
	}
}

func (su *SupabaseRepo) SignUp(ctx context.Context, email, password, name string) (uuid.UUID, error) {
	res, err := su.supabaseClient.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data:     map[string]interface{}{"name": name},
	})
	if err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "already registered") {
			return uuid.Nil, apperrors.New(apperrors.CodeValidation, "email already in use")
		}
		if strings.Contains(errMsg, "password") {
			return uuid.Nil, apperrors.New(apperrors.CodeValidation, "password rejected by identity provider")
		}
		return uuid.Nil, apperrors.StoreUnavailable(err, "failed to create account")
	}

	// with autoconfirm the user only comes back inside the session
	id := res.User.ID
	if id == uuid.Nil {
		id = res.Session.User.ID
	}
	if id == uuid.Nil {
		return uuid.Nil, apperrors.New(apperrors.CodeInternal, "identity provider returned no user id")
	}
	return id, nil
}

func (su *SupabaseRepo) SignIn(ctx context.Context, email, password string) (*Session, error) {
	res, err := su.supabaseClient.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnauthenticated, "invalid email or password")
	}
	return sessionFrom(res), nil
}

func (su *SupabaseRepo) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	res, err := su.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnauthenticated, "session expired")
	}
	return sessionFrom(res), nil
}

func (su *SupabaseRepo) SignOut(ctx context.Context, accessToken string) error {
	if err := su.supabaseClient.Auth.WithToken(accessToken).Logout(); err != nil {
		return apperrors.StoreUnavailable(err, "failed to revoke session")
	}
	return nil
}
