package helpers

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CustomClaims mirrors the access tokens issued by Supabase auth.
type CustomClaims struct {
	Role        string `json:"role"`
	Email       string `json:"email"`
	AppMetadata struct {
		Provider  string   `json:"provider"`
		Providers []string `json:"providers"`
	} `json:"app_metadata"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	SessionID    string                 `json:"session_id,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject, which is the auth user id and the profile id.
func (c *CustomClaims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token subject is not a user id: %w", err)
	}
	return id, nil
}

// DisplayName returns the name stored in user metadata at signup, if any.
func (c *CustomClaims) DisplayName() string {
	name, _ := c.UserMetadata["name"].(string)
	return name
}
