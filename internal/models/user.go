package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile is a row in the profiles table. The id is issued by the identity
// provider at signup; name and email are fixed after registration.
type Profile struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	SkillsOffered []string  `db:"skills_offered" json:"skills_offered"`
	SkillsWanted  []string  `db:"skills_wanted" json:"skills_wanted"`
	Location      string    `db:"location" json:"location"`
	Availability  string    `db:"availability" json:"availability"`
	PhotoURL      string    `db:"photo_url" json:"photo_url"`
	IsPublic      *bool     `db:"is_public" json:"is_public"`
	Banned        bool      `db:"banned" json:"banned"`
	Role          string    `db:"role" json:"role"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// NewProfile returns a profile with registration defaults.
func NewProfile(id uuid.UUID, email, name string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:            id,
		Name:          name,
		Email:         email,
		SkillsOffered: []string{},
		SkillsWanted:  []string{},
		IsPublic:      boolPtr(true),
		Role:          RoleUser,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Public reports whether the profile is listed. Rows that predate the
// is_public column, or hold NULL, are public.
func (p *Profile) Public() bool {
	return p.IsPublic == nil || *p.IsPublic
}

func boolPtr(b bool) *bool { return &b }

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

func (p *Profile) IsOwner(id uuid.UUID) bool {
	return p != nil && p.ID == id
}

// ProfileUpdate carries the owner-editable fields. Nil fields are left as is.
type ProfileUpdate struct {
	Location      *string   `json:"location" validate:"omitempty,max=120"`
	Availability  *string   `json:"availability" validate:"omitempty,max=60"`
	SkillsOffered *[]string `json:"skills_offered" validate:"omitempty,max=50,dive,max=60"`
	SkillsWanted  *[]string `json:"skills_wanted" validate:"omitempty,max=50,dive,max=60"`
	IsPublic      *bool     `json:"is_public"`
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.Location == nil && u.Availability == nil && u.SkillsOffered == nil &&
		u.SkillsWanted == nil && u.IsPublic == nil
}

// Fields converts the update into the partial column map sent to the store.
// Text is trimmed and skill lists lose blank entries; order is kept.
func (u ProfileUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if u.Location != nil {
		fields["location"] = strings.TrimSpace(*u.Location)
	}
	if u.Availability != nil {
		fields["availability"] = strings.TrimSpace(*u.Availability)
	}
	if u.SkillsOffered != nil {
		fields["skills_offered"] = CleanSkills(*u.SkillsOffered)
	}
	if u.SkillsWanted != nil {
		fields["skills_wanted"] = CleanSkills(*u.SkillsWanted)
	}
	if u.IsPublic != nil {
		fields["is_public"] = *u.IsPublic
	}
	return fields
}

func CleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
