package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/skillswap/internal/apperrors"
	"github.com/joshua-takyi/skillswap/internal/models"
	"go.uber.org/zap"
)

type AdminService struct {
	profileRepo models.ProfileRepo
	swapRepo    models.SwapRepo
	logger      *zap.Logger
}

func NewAdminService(profileRepo models.ProfileRepo, swapRepo models.SwapRepo, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		profileRepo: profileRepo,
		swapRepo:    swapRepo,
		logger:      logger,
	}
}

func requireAdmin(actor *models.Profile) error {
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return apperrors.New(apperrors.CodeForbidden, "admin access required")
	}
	return nil
}

// ListUsers returns every profile, private and banned ones included.
func (as *AdminService) ListUsers(ctx context.Context, actor *models.Profile) ([]*models.Profile, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return as.profileRepo.ListProfiles(ctx)
}

func (as *AdminService) ListSwaps(ctx context.Context, actor *models.Profile) ([]*models.SwapRequest, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return as.swapRepo.ListSwaps(ctx)
}

// SetBanned toggles the ban flag. An admin cannot ban themselves.
func (as *AdminService) SetBanned(ctx context.Context, actor *models.Profile, userID uuid.UUID, banned bool) (*models.Profile, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if userID == actor.ID && banned {
		return nil, apperrors.New(apperrors.CodeValidation, "admins cannot ban themselves")
	}

	updated, err := as.profileRepo.UpdateProfile(ctx, userID, map[string]interface{}{
		"banned":     banned,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	as.logger.Info("user ban updated",
		zap.String("admin_id", actor.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Bool("banned", banned),
	)
	return updated, nil
}
