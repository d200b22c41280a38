package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/skillswap/internal/helpers"
	"github.com/joshua-takyi/skillswap/internal/models"
	"github.com/joshua-takyi/skillswap/internal/services"
)

func Signup(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err, "invalid request payload")
			return
		}

		profile, err := a.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(profile, "account created"))
	}
}

func Login(a *services.AuthService, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.LoginInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err, "invalid request payload")
			return
		}

		session, err := a.Login(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}

		helpers.SetAuthCookies(c, session, cookieSecure)
		c.JSON(http.StatusOK, models.SuccessResponse(session, "logged in"))
	}
}

// Logout clears the auth cookies. The session is also revoked at the
// identity provider when the request still carries an access token.
func Logout(a *services.AuthService, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(helpers.AccessTokenCookie)
		if err := a.Logout(c.Request.Context(), token); err != nil {
			// cookies are cleared regardless
			_ = c.Error(err)
		}

		helpers.ClearAuthCookies(c, cookieSecure)
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Logged out successfully"))
	}
}
