package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/skillswap/internal/middleware"
	"github.com/joshua-takyi/skillswap/internal/models"
	"github.com/joshua-takyi/skillswap/internal/services"
)

type banRequest struct {
	Banned *bool `json:"banned" binding:"required"`
}

func AdminListUsers(a *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := a.ListUsers(c.Request.Context(), middleware.CurrentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(users, len(users)))
	}
}

func AdminListSwaps(a *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		swaps, err := a.ListSwaps(c.Request.Context(), middleware.CurrentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(swaps, len(swaps)))
	}
}

func AdminSetBanned(a *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseProfileID(c)
		if !ok {
			return
		}

		var req banRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err, "invalid request payload")
			return
		}

		profile, err := a.SetBanned(c.Request.Context(), middleware.CurrentUser(c), id, *req.Banned)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(profile, "ban status updated"))
	}
}
