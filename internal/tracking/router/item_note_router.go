package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OpenDAF/daf/internal/auth"
	"github.com/OpenDAF/daf/internal/tracking/model"
	"github.com/OpenDAF/daf/internal/tracking/service"
)

// ItemNoteRouter exposes the cross-party item note endpoints. What each
// caller sees is decided by their role; the handlers only pass it through.
type ItemNoteRouter struct {
	notes *service.ItemNoteService
}

// NewItemNoteRouter creates a new ItemNoteRouter.
func NewItemNoteRouter(notes *service.ItemNoteService) *ItemNoteRouter {
	return &ItemNoteRouter{notes: notes}
}

// Register mounts the note routes on the given group.
func (r *ItemNoteRouter) Register(group *gin.RouterGroup) {
	notes := group.Group("/notes", auth.RequireAuth())
	notes.POST("", r.create)
	notes.GET("/manufacturer-items/:itemId", r.listForManufacturerItem)
	notes.GET("/acceptance-items/:itemId", r.listForAcceptanceItem)
	notes.GET("/units/:unitId", r.listForUnit)
	notes.PATCH("/:id", r.update)
	notes.DELETE("/:id", r.remove)
	notes.POST("/:id/submit", r.submit)
}

func (r *ItemNoteRouter) create(c *gin.Context) {
	var dto model.CreateItemNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authCtx := auth.FromContext(c)
	note, err := r.notes.Create(c.Request.Context(), &dto, authCtx.UserID, noteRole(authCtx))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (r *ItemNoteRouter) listForManufacturerItem(c *gin.Context) {
	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		return
	}

	authCtx := auth.FromContext(c)
	notes, err := r.notes.ListForManufacturerItem(c.Request.Context(), itemID, noteRole(authCtx))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (r *ItemNoteRouter) listForAcceptanceItem(c *gin.Context) {
	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		return
	}

	authCtx := auth.FromContext(c)
	notes, err := r.notes.ListForAcceptanceItem(c.Request.Context(), itemID, noteRole(authCtx))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (r *ItemNoteRouter) listForUnit(c *gin.Context) {
	unitID, ok := pathUUID(c, "unitId")
	if !ok {
		return
	}

	authCtx := auth.FromContext(c)
	notes, err := r.notes.ListForUnit(c.Request.Context(), unitID, noteRole(authCtx))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (r *ItemNoteRouter) update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var dto model.UpdateItemNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authCtx := auth.FromContext(c)
	note, err := r.notes.Update(c.Request.Context(), id, &dto, authCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (r *ItemNoteRouter) remove(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	authCtx := auth.FromContext(c)
	if err := r.notes.Delete(c.Request.Context(), id, authCtx.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *ItemNoteRouter) submit(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var dto model.SubmitNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authCtx := auth.FromContext(c)
	note, err := r.notes.Submit(c.Request.Context(), id, &dto, authCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}
