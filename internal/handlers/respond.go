package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/skillswap/internal/apperrors"
	"github.com/joshua-takyi/skillswap/internal/middleware"
	"github.com/joshua-takyi/skillswap/internal/models"
)

// respondError writes err in the response envelope. Internal errors are
// attached to the context for the error handler to log; their detail is not
// sent to the client.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Code == apperrors.CodeInternal || appErr.Code == apperrors.CodeStoreUnavailable {
		_ = c.Error(err)
	}
	c.JSON(appErr.HTTPStatus(), models.AppErrorResponse(appErr, c.GetString(middleware.RequestIDKey)))
}

func badRequest(c *gin.Context, err error, message string) {
	respondError(c, apperrors.Wrap(err, apperrors.CodeValidation, message))
}
