package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/skillswap/internal/apperrors"
	"github.com/joshua-takyi/skillswap/internal/helpers"
	"github.com/joshua-takyi/skillswap/internal/models"
	"github.com/joshua-takyi/skillswap/internal/services"
	"go.uber.org/zap"
)

const (
	RequestIDKey   = "request_id"
	UserKey        = "user"
	AccessTokenKey = "access_token"

	maxRequestIDLength = 64
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger logs one line per request, at warn for 4xx and error for 5xx.
func StructuredLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if user := CurrentUser(c); user != nil {
			fields = append(fields, zap.String("user_id", user.ID.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("HTTP Request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("HTTP Request", fields...)
		default:
			logger.Info("HTTP Request", fields...)
		}
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()
		requestID := c.GetString(RequestIDKey)

		logger.Error("Request error",
			zap.String("request_id", requestID),
			zap.Error(err.Err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)

		if c.Writer.Written() {
			return
		}
		appErr := apperrors.From(err.Err)
		if appErr.Code == apperrors.CodeInternal {
			// Don't return error details
			appErr = apperrors.New(apperrors.CodeInternal, "internal server error")
		}
		c.JSON(appErr.HTTPStatus(), models.AppErrorResponse(appErr, requestID))
	}
}

// CurrentUser returns the authenticated profile, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.Profile {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.Profile)
	return user
}

func abortWithError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus(), models.AppErrorResponse(appErr, c.GetString(RequestIDKey)))
}

// Auth resolves the caller from the session cookies (or a bearer token) into
// their profile.
type Auth struct {
	validator    helpers.TokenValidator
	authService  *services.AuthService
	cookieSecure bool
	logger       *zap.Logger
}

func NewAuth(validator helpers.TokenValidator, authService *services.AuthService, cookieSecure bool, logger *zap.Logger) *Auth {
	return &Auth{
		validator:    validator,
		authService:  authService,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	token, _ := c.Cookie(helpers.AccessTokenCookie)
	return token
}

// refresh trades the refresh cookie for a new session and rotates both cookies.
func (a *Auth) refresh(c *gin.Context) (string, error) {
	refreshToken, err := c.Cookie(helpers.RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		return "", apperrors.ErrUnauthenticated
	}

	session, err := a.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		a.logger.Warn("Token refresh failed", zap.String("request_id", c.GetString(RequestIDKey)), zap.Error(err))
		return "", apperrors.New(apperrors.CodeUnauthenticated, "token expired and refresh failed")
	}

	helpers.SetAuthCookies(c, session, a.cookieSecure)
	a.logger.Debug("Token refreshed", zap.String("user_id", session.UserID.String()))
	return session.AccessToken, nil
}

func (a *Auth) authenticate(c *gin.Context) error {
	token := tokenFromRequest(c)

	var claims *helpers.CustomClaims
	var err error
	if token != "" {
		claims, err = a.validator.ValidateToken(token)
	}
	if token == "" || err != nil {
		token, err = a.refresh(c)
		if err != nil {
			return err
		}
		claims, err = a.validator.ValidateToken(token)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeUnauthenticated, "refreshed token validation failed")
		}
	}

	userID, err := claims.UserID()
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeUnauthenticated, "invalid token subject")
	}

	ctx := models.WithAccessToken(c.Request.Context(), token)
	profile, err := a.authService.CurrentProfile(ctx, userID)
	if err != nil {
		return err
	}

	c.Request = c.Request.WithContext(ctx)
	c.Set(UserKey, profile)
	c.Set(AccessTokenKey, token)
	return nil
}

// RequireUser rejects anonymous requests.
func (a *Auth) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.authenticate(c); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}

// OptionalUser resolves the caller when credentials are present and lets
// anonymous requests through. Bad credentials are treated as anonymous.
func (a *Auth) OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.authenticate(c); err != nil && apperrors.CodeOf(err) == apperrors.CodeStoreUnavailable {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireUser.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortWithError(c, apperrors.ErrUnauthenticated)
			return
		}
		if !user.IsAdmin() {
			abortWithError(c, apperrors.New(apperrors.CodeForbidden, "admin access required"))
			return
		}
		c.Next()
	}
}
