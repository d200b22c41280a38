package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/skillswap/internal/apperrors"
	"github.com/joshua-takyi/skillswap/internal/middleware"
	"github.com/joshua-takyi/skillswap/internal/models"
	"github.com/joshua-takyi/skillswap/internal/services"
)

const maxPhotoSize = 5 << 20

func parseProfileID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.Newf(apperrors.CodeNotFound, "profile %q not found", c.Param("id")))
		return uuid.Nil, false
	}
	return id, true
}

// BrowseProfiles lists public profiles other than the caller's, narrowed by
// the skill and availability query parameters.
func BrowseProfiles(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var criteria services.ProfileCriteria
		if err := c.ShouldBindQuery(&criteria); err != nil {
			badRequest(c, err, "invalid query parameters")
			return
		}

		profiles, err := p.Browse(c.Request.Context(), middleware.CurrentUser(c), criteria)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(profiles, len(profiles)))
	}
}

func GetProfile(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseProfileID(c)
		if !ok {
			return
		}

		profile, err := p.GetProfile(c.Request.Context(), id, middleware.CurrentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, ""))
	}
}

func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(middleware.CurrentUser(c), ""))
	}
}

func UpdateMe(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update models.ProfileUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			badRequest(c, err, "invalid request payload")
			return
		}

		profile, err := p.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), update)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, "profile updated"))
	}
}

// UploadPhoto accepts a multipart "photo" field.
func UploadPhoto(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoSize)

		header, err := c.FormFile("photo")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondError(c, apperrors.New(apperrors.CodeValidation, "photo must be at most 5MB"))
				return
			}
			badRequest(c, err, "photo file is required")
			return
		}

		file, err := header.Open()
		if err != nil {
			badRequest(c, err, "could not read photo")
			return
		}
		defer file.Close()

		profile, err := p.UploadPhoto(c.Request.Context(), middleware.CurrentUser(c), file)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, "photo uploaded"))
	}
}

func DeletePhoto(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := p.DeletePhoto(c.Request.Context(), middleware.CurrentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, "photo removed"))
	}
}
