package services

import (
	"strings"

	"github.com/joshua-takyi/skillswap/internal/models"
)

// ProfileCriteria narrows the browsable profile list. Empty fields match everything.
type ProfileCriteria struct {
	Skill        string `form:"skill"`
	Availability string `form:"availability"`
}

// FilterProfiles returns the profiles caller may browse that match criteria,
// in input order. A profile is eligible when it is public and is not the
// caller; caller may be nil for anonymous browsing.
func FilterProfiles(all []*models.Profile, caller *models.Profile, criteria ProfileCriteria) []*models.Profile {
	skill := strings.ToLower(strings.TrimSpace(criteria.Skill))
	availability := strings.TrimSpace(criteria.Availability)

	out := make([]*models.Profile, 0, len(all))
	for _, p := range all {
		if p == nil || !p.Public() {
			continue
		}
		if caller != nil && p.ID == caller.ID {
			continue
		}
		if availability != "" && strings.TrimSpace(p.Availability) != availability {
			continue
		}
		if skill != "" && !offersSkill(p, skill) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func offersSkill(p *models.Profile, lowered string) bool {
	for _, s := range p.SkillsOffered {
		if strings.Contains(strings.ToLower(s), lowered) {
			return true
		}
	}
	return false
}
