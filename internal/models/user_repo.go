package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/skillswap/internal/apperrors"
)

const (
	ProfileTable   = "profiles"
	profileColumns = "id,name,email,skills_offered,skills_wanted,location,availability,photo_url,is_public,banned,role,created_at,updated_at"
)

func (su *SupabaseRepo) CreateProfile(ctx context.Context, profile *Profile) error {
	if profile.ID == uuid.Nil {
		return apperrors.New(apperrors.CodeValidation, "profile id is required")
	}

	_, _, err := su.supabaseClient.From(ProfileTable).
		Insert(profile, false, "", "minimal", "").
		Execute()
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "unique constraint") {
			return apperrors.New(apperrors.CodeValidation, "profile already exists")
		}
		return apperrors.StoreUnavailable(err, "failed to create profile")
	}
	return nil
}

func (su *SupabaseRepo) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	if id == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "invalid profile id")
	}

	client, err := su.clientFor(ctx)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err, "failed to get profile")
	}

	raw, status, err := client.From(ProfileTable).
		Select(profileColumns, "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, apperrors.StoreUnavailable(fmt.Errorf("status=%d body=%s: %w", status, string(raw), err), "failed to get profile")
	}

	// postgrest returns an array even for single results
	var profiles []Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, apperrors.StoreUnavailable(err, "failed to decode profile")
	}
	if len(profiles) == 0 {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "profile %s not found", id)
	}
	return &profiles[0], nil
}

func (su *SupabaseRepo) ListProfiles(ctx context.Context) ([]*Profile, error) {
	client, err := su.clientFor(ctx)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err, "failed to list profiles")
	}

	raw, _, err := client.From(ProfileTable).
		Select(profileColumns, "", false).
		Execute()
	if err != nil {
		return nil, apperrors.StoreUnavailable(err, "failed to list profiles")
	}

	var profiles []*Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, apperrors.StoreUnavailable(err, "failed to decode profiles")
	}
	return profiles, nil
}

func (su *SupabaseRepo) UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Profile, error) {
	if id == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "invalid profile id")
	}
	if len(fields) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "no fields to update")
	}

	client, err := su.clientFor(ctx)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err, "failed to update profile")
	}

	raw, _, err := client.From(ProfileTable).
		Update(fields, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, apperrors.StoreUnavailable(err, "failed to update profile")
	}

	var profiles []Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, apperrors.StoreUnavailable(err, "failed to decode updated profile")
	}
	if len(profiles) == 0 {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "profile %s not found", id)
	}
	return &profiles[0], nil
}
