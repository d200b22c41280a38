package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/skillswap/internal/apperrors"
	"github.com/joshua-takyi/skillswap/internal/middleware"
	"github.com/joshua-takyi/skillswap/internal/models"
	"github.com/joshua-takyi/skillswap/internal/services"
)

type createSwapRequest struct {
	ToUserID string `json:"to_user_id" binding:"required"`
}

type setStatusRequest struct {
	Status models.SwapStatus `json:"status" binding:"required"`
}

type feedbackRequest struct {
	Rating   *int   `json:"rating" binding:"required"`
	Feedback string `json:"feedback"`
}

func CreateSwap(s *services.SwapService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createSwapRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err, "invalid request payload")
			return
		}

		// an unparseable id cannot name an existing profile
		recipientID, err := uuid.Parse(req.ToUserID)
		if err != nil {
			respondError(c, apperrors.New(apperrors.CodeInvalidTarget, "recipient does not exist"))
			return
		}

		swap, err := s.CreateRequest(c.Request.Context(), middleware.CurrentUser(c), recipientID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(swap, "swap request sent"))
	}
}

// ListSwaps returns the caller's incoming and outgoing requests, optionally
// narrowed by ?status=.
func ListSwaps(s *services.SwapService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := s.LoadSwapView(c.Request.Context(), middleware.CurrentUser(c), c.Query("status"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(view, ""))
	}
}

func GetSwap(s *services.SwapService) gin.HandlerFunc {
	return func(c *gin.Context) {
		swap, err := s.GetRequest(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(swap, ""))
	}
}

func SetSwapStatus(s *services.SwapService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err, "invalid request payload")
			return
		}

		swap, err := s.SetStatus(c.Request.Context(), c.Param("id"), req.Status, middleware.CurrentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(swap, "swap "+string(swap.Status)))
	}
}

func AttachFeedback(s *services.SwapService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req feedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err, "invalid request payload")
			return
		}

		swap, err := s.AttachFeedback(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c), *req.Rating, req.Feedback)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(swap, "feedback saved"))
	}
}

func DeleteSwap(s *services.SwapService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.DeleteRequest(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c)); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "swap request deleted"))
	}
}
