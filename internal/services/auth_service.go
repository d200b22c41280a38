package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/skillswap/internal/apperrors"
	"github.com/joshua-takyi/skillswap/internal/helpers"
	"github.com/joshua-takyi/skillswap/internal/models"
	"go.uber.org/zap"
)

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=1,max=80"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthService struct {
	authRepo    models.AuthRepo
	profileRepo models.ProfileRepo
	logger      *zap.Logger
}

func NewAuthService(authRepo models.AuthRepo, profileRepo models.ProfileRepo, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		authRepo:    authRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Register creates the identity and the profile row with registration
// defaults. The profile id is the identity provider's user id.
func (as *AuthService) Register(ctx context.Context, in RegisterInput) (*models.Profile, error) {
	in.Email = strings.ToLower(helpers.StringTrim(in.Email))
	in.Name = helpers.StringTrim(in.Name)

	if err := models.Validate.Struct(in); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeValidation, "invalid registration details")
	}
	if !helpers.IsPasswordStrong(in.Password) {
		return nil, apperrors.New(apperrors.CodeValidation, "password is not strong enough")
	}

	id, err := as.authRepo.SignUp(ctx, in.Email, in.Password, in.Name)
	if err != nil {
		return nil, err
	}

	profile := models.NewProfile(id, in.Email, in.Name)
	if err := as.profileRepo.CreateProfile(ctx, profile); err != nil {
		as.logger.Error("profile creation failed after signup",
			zap.String("user_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	as.logger.Info("user registered", zap.String("user_id", id.String()))
	return profile, nil
}

func (as *AuthService) Login(ctx context.Context, in LoginInput) (*models.Session, error) {
	in.Email = strings.ToLower(helpers.StringTrim(in.Email))
	if err := models.Validate.Struct(in); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeValidation, "invalid login details")
	}
	return as.authRepo.SignIn(ctx, in.Email, in.Password)
}

func (as *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	if refreshToken == "" {
		return nil, apperrors.New(apperrors.CodeUnauthenticated, "refresh token is required")
	}
	return as.authRepo.Refresh(ctx, refreshToken)
}

// Logout revokes the session at the identity provider. A missing token is
// not an error; the caller is already logged out.
func (as *AuthService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	return as.authRepo.SignOut(ctx, accessToken)
}

// CurrentProfile resolves the authenticated subject to its profile.
func (as *AuthService) CurrentProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	profile, err := as.profileRepo.GetProfile(ctx, userID)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeNotFound {
			return nil, apperrors.Wrap(err, apperrors.CodeUnauthenticated, "no profile for this session")
		}
		return nil, err
	}
	return profile, nil
}
