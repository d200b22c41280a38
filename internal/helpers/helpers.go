package helpers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joshua-takyi/skillswap/internal/apperrors"
	"go.uber.org/zap"
)

const jwksPath = "/auth/v1/.well-known/jwks.json"

var (
	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	numberRe  = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[@$!%*?&#^_\-+=.]`)
)

// TokenValidator verifies an access token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenStr string) (*CustomClaims, error)
}

// JWKSValidator checks token signatures against the identity provider's
// key set. The key set is fetched once and refreshed in the background.
type JWKSValidator struct {
	jwks *keyfunc.JWKS
}

func NewJWKSValidator(ctx context.Context, supabaseURL string, logger *zap.Logger) (*JWKSValidator, error) {
	if supabaseURL == "" {
		return nil, errors.New("SUPABASE_URL not set")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	jwksURL := strings.TrimRight(supabaseURL, "/") + jwksPath

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Warn("jwks refresh failed", zap.String("url", jwksURL), zap.Error(err))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load jwks from %s: %w", jwksURL, err)
	}
	return &JWKSValidator{jwks: jwks}, nil
}

// NewValidatorFromJWKS wraps an already built key set.
func NewValidatorFromJWKS(jwks *keyfunc.JWKS) *JWKSValidator {
	return &JWKSValidator{jwks: jwks}
}

func (v *JWKSValidator) ValidateToken(tokenStr string) (*CustomClaims, error) {
	if tokenStr == "" {
		return nil, apperrors.New(apperrors.CodeUnauthenticated, "missing token")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256", "ES256", "HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Wrap(err, apperrors.CodeUnauthenticated, "token expired")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeUnauthenticated, "invalid token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, apperrors.New(apperrors.CodeUnauthenticated, "invalid or expired token")
	}
	return claims, nil
}

// Close stops the background refresh.
func (v *JWKSValidator) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	return lowerRe.MatchString(password) &&
		upperRe.MatchString(password) &&
		numberRe.MatchString(password) &&
		specialRe.MatchString(password)
}

// StringTrim trims surrounding whitespace and collapses inner runs to one space.
func StringTrim(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
