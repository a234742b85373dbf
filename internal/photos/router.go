package photos

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/auth"
	"github.com/OpenDAF/daf/internal/tracking/model"
)

// Router exposes the photo upload and download endpoints.
type Router struct {
	service *Service
}

// NewRouter creates a new photo Router.
func NewRouter(service *Service) *Router {
	return &Router{service: service}
}

// Register mounts the photo routes on the given group.
func (r *Router) Register(group *gin.RouterGroup) {
	photos := group.Group("/photos", auth.RequireAuth())
	photos.POST("", r.upload)
	photos.GET("/:id/file", r.download)
	photos.DELETE("/:id", r.remove)
}

// upload accepts a multipart form with the file under "photo" and the parent
// reference in one of the *Id fields.
func (r *Router) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	parent := Parent{
		InspectionID:     parseOptionalUUID(c.PostForm("inspectionId")),
		InspectionItemID: parseOptionalUUID(c.PostForm("inspectionItemId")),
		AcceptanceID:     parseOptionalUUID(c.PostForm("acceptanceId")),
		AcceptanceItemID: parseOptionalUUID(c.PostForm("acceptanceItemId")),
		PDIID:            parseOptionalUUID(c.PostForm("pdiId")),
		PDIItemID:        parseOptionalUUID(c.PostForm("pdiItemId")),
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read photo"})
		return
	}
	defer file.Close()

	authCtx := auth.FromContext(c)
	photo, err := r.service.Attach(c.Request.Context(), parent, Upload{
		Body:       file,
		Filename:   fileHeader.Filename,
		MimeType:   fileHeader.Header.Get("Content-Type"),
		Size:       fileHeader.Size,
		PhotoType:  model.PhotoType(c.PostForm("photoType")),
		Caption:    c.PostForm("caption"),
		UploadedBy: &authCtx.UserID,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, photo)
}

func (r *Router) download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	body, contentType, err := r.service.Open(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read photo"})
		return
	}
	defer body.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}

func (r *Router) remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	if err := r.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete photo"})
		return
	}
	c.Status(http.StatusNoContent)
}

func parseOptionalUUID(value string) *uuid.UUID {
	if value == "" {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	return &id
}
