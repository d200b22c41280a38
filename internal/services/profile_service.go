package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/skillswap/internal/apperrors"
	"github.com/joshua-takyi/skillswap/internal/models"
	"go.uber.org/zap"
)

type ProfileService struct {
	profileRepo models.ProfileRepo
	photos      models.PhotoStore
	logger      *zap.Logger
}

// NewProfileService wires the profile store. photos may be nil when no object
// store is configured; photo operations then fail with STORE_UNAVAILABLE.
func NewProfileService(profileRepo models.ProfileRepo, photos models.PhotoStore, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		profileRepo: profileRepo,
		photos:      photos,
		logger:      logger,
	}
}

// Browse lists the profiles the caller may see that match criteria.
func (ps *ProfileService) Browse(ctx context.Context, caller *models.Profile, criteria ProfileCriteria) ([]*models.Profile, error) {
	all, err := ps.profileRepo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProfiles(all, caller, criteria), nil
}

// GetProfile returns a profile to anyone when it is public, otherwise only to
// its owner or an admin. Hidden profiles are reported as missing.
func (ps *ProfileService) GetProfile(ctx context.Context, id uuid.UUID, viewer *models.Profile) (*models.Profile, error) {
	profile, err := ps.profileRepo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !profile.Public() && !viewer.IsOwner(id) && !viewer.IsAdmin() {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "profile %s not found", id)
	}
	return profile, nil
}

func (ps *ProfileService) UpdateProfile(ctx context.Context, actor *models.Profile, update models.ProfileUpdate) (*models.Profile, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if update.IsEmpty() {
		return nil, apperrors.New(apperrors.CodeValidation, "no fields to update")
	}
	if err := models.Validate.Struct(update); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeValidation, "invalid profile update")
	}

	fields := update.Fields()
	fields["updated_at"] = time.Now().UTC()

	updated, err := ps.profileRepo.UpdateProfile(ctx, actor.ID, fields)
	if err != nil {
		return nil, err
	}
	ps.logger.Info("profile updated", zap.String("user_id", actor.ID.String()), zap.Int("fields", len(fields)-1))
	return updated, nil
}

// UploadPhoto stores the actor's photo under their profile id, replacing any
// previous one, and records the returned url on the profile.
func (ps *ProfileService) UploadPhoto(ctx context.Context, actor *models.Profile, file io.Reader) (*models.Profile, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if ps.photos == nil {
		return nil, apperrors.New(apperrors.CodeStoreUnavailable, "photo storage is not configured")
	}
	if file == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "photo is required")
	}

	url, err := ps.photos.UploadPhoto(ctx, actor.ID.String(), file)
	if err != nil {
		return nil, err
	}

	return ps.profileRepo.UpdateProfile(ctx, actor.ID, map[string]interface{}{
		"photo_url":  url,
		"updated_at": time.Now().UTC(),
	})
}

func (ps *ProfileService) DeletePhoto(ctx context.Context, actor *models.Profile) (*models.Profile, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if ps.photos == nil {
		return nil, apperrors.New(apperrors.CodeStoreUnavailable, "photo storage is not configured")
	}
	if actor.PhotoURL == "" {
		return actor, nil
	}

	if err := ps.photos.DeletePhoto(ctx, actor.ID.String()); err != nil {
		return nil, err
	}

	return ps.profileRepo.UpdateProfile(ctx, actor.ID, map[string]interface{}{
		"photo_url":  "",
		"updated_at": time.Now().UTC(),
	})
}
