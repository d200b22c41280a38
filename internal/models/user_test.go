package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

// Partial updates only carry the fields the owner sent.
func TestProfileUpdateFields(t *testing.T) {
	skills := []string{" Photoshop ", "", "Go", "  "}
	public := false
	update := ProfileUpdate{
		Location:      strPtr("  Berlin "),
		SkillsOffered: &skills,
		IsPublic:      &public,
	}

	fields := update.Fields()

	assert.Equal(t, "Berlin", fields["location"])
	assert.Equal(t, []string{"Photoshop", "Go"}, fields["skills_offered"])
	assert.Equal(t, false, fields["is_public"])
	assert.NotContains(t, fields, "availability")
	assert.NotContains(t, fields, "skills_wanted")
	assert.False(t, update.IsEmpty())
	assert.True(t, ProfileUpdate{}.IsEmpty())
}

func TestProfileUpdateClearsList(t *testing.T) {
	empty := []string{}
	fields := ProfileUpdate{SkillsWanted: &empty}.Fields()

	assert.Equal(t, []string{}, fields["skills_wanted"])
}

func TestNewProfileDefaults(t *testing.T) {
	id := uuid.New()
	p := NewProfile(id, "ada@example.com", "Ada")

	assert.Equal(t, id, p.ID)
	assert.True(t, p.Public())
	assert.False(t, p.Banned)
	assert.Equal(t, RoleUser, p.Role)
	assert.Empty(t, p.Location)
	assert.Empty(t, p.Availability)
	assert.NotNil(t, p.SkillsOffered)
	assert.False(t, p.IsAdmin())
	assert.True(t, p.IsOwner(id))
}

func TestProfileUpdateValidation(t *testing.T) {
	long := make([]string, 51)
	for i := range long {
		long[i] = "skill"
	}
	assert.Error(t, Validate.Struct(ProfileUpdate{SkillsOffered: &long}))

	ok := []string{"Excel"}
	assert.NoError(t, Validate.Struct(ProfileUpdate{SkillsOffered: &ok}))
}

func TestProfilePublic(t *testing.T) {
	public, hidden := true, false

	assert.True(t, (&Profile{}).Public())
	assert.True(t, (&Profile{IsPublic: &public}).Public())
	assert.False(t, (&Profile{IsPublic: &hidden}).Public())
}
