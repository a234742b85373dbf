// Package router exposes the unit tracking API over HTTP. Handlers bind and
// validate the wire payloads, map service error kinds to status codes, and
// leave every business decision to the service layer.
package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/OpenDAF/daf/internal/auth"
	"github.com/OpenDAF/daf/internal/tracking/model"
	"github.com/OpenDAF/daf/internal/tracking/service"
)

// Services bundles everything the tracking routes depend on.
type Services struct {
	Units       *service.UnitService
	Inspections *service.InspectionService
	PDIs        *service.PDIService
	Acceptances *service.AcceptanceService
	Checklists  *service.ChecklistService
	Notes       *service.ItemNoteService
}

// RegisterRoutes mounts all tracking routes on the given group.
func RegisterRoutes(group *gin.RouterGroup, services Services) {
	NewUnitRouter(services.Units).Register(group)
	NewInspectionRouter(services.Inspections).Register(group)
	NewPDIRouter(services.PDIs).Register(group)
	NewAcceptanceRouter(services.Acceptances).Register(group)
	NewChecklistRouter(services.Checklists).Register(group)
	NewItemNoteRouter(services.Notes).Register(group)
}

// respondError translates a service error into an HTTP response.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pathUUID parses a UUID path parameter, responding 400 on failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// noteRole maps the caller's account role to the note authoring side.
func noteRole(authCtx *auth.AuthContext) model.NoteAuthorRole {
	if authCtx.IsDealer() {
		return model.NoteAuthorDealer
	}
	return model.NoteAuthorManufacturer
}
