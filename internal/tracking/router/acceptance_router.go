package router

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/OpenDAF/daf/internal/auth"
	"github.com/OpenDAF/daf/internal/tracking/model"
	"github.com/OpenDAF/daf/internal/tracking/service"
	"github.com/OpenDAF/daf/utils"
)

// AcceptanceRouter exposes the dealer acceptance workflow.
type AcceptanceRouter struct {
	acceptances *service.AcceptanceService
}

// NewAcceptanceRouter creates a new AcceptanceRouter.
func NewAcceptanceRouter(acceptances *service.AcceptanceService) *AcceptanceRouter {
	return &AcceptanceRouter{acceptances: acceptances}
}

// Register mounts the acceptance routes on the given group. Mutations are
// dealer-side; reads are open to both sides.
func (r *AcceptanceRouter) Register(group *gin.RouterGroup) {
	acceptances := group.Group("/acceptances", auth.RequireAuth())
	acceptances.POST("", auth.RequireRole(auth.RoleDealer), r.start)
	acceptances.GET("", r.list)
	acceptances.GET("/vin/:vin", r.listByVIN)
	acceptances.GET("/:id", r.getByID)
	acceptances.GET("/:id/progress", r.progress)
	acceptances.GET("/:id/summary", r.summary)
	acceptances.PATCH("/:id/items/:itemId", auth.RequireRole(auth.RoleDealer), r.updateItem)
	acceptances.PATCH("/:id/items", auth.RequireRole(auth.RoleDealer), r.updateItems)
	acceptances.POST("/:id/submit", auth.RequireRole(auth.RoleDealer), r.submit)
	acceptances.POST("/:id/cancel", auth.RequireRole(auth.RoleDealer), r.cancel)
}

func (r *AcceptanceRouter) start(c *gin.Context) {
	var dto model.StartAcceptanceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authCtx := auth.FromContext(c)
	if authCtx.DealerID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "no dealership on account"})
		return
	}

	record, err := r.acceptances.Start(c.Request.Context(), &dto, authCtx.UserID, *authCtx.DealerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (r *AcceptanceRouter) list(c *gin.Context) {
	var status *model.AcceptanceStatus
	if statusParam := c.Query("status"); statusParam != "" {
		s := model.AcceptanceStatus(statusParam)
		status = &s
	}

	var dealerID *uuid.UUID
	authCtx := auth.FromContext(c)
	if authCtx.IsDealer() {
		dealerID = authCtx.DealerID
	} else if dealerParam := c.Query("dealerId"); dealerParam != "" {
		id, err := uuid.Parse(dealerParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dealerId"})
			return
		}
		dealerID = &id
	}

	var offsetPtr, limitPtr *int
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offsetPtr = &n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limitPtr = &n
		}
	}
	offset, limit := utils.GetPaginationParams(offsetPtr, limitPtr)

	records, meta, err := r.acceptances.List(c.Request.Context(), dealerID, status, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acceptances": records, "meta": meta})
}

func (r *AcceptanceRouter) listByVIN(c *gin.Context) {
	records, err := r.acceptances.ListByVIN(c.Request.Context(), c.Param("vin"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acceptances": records})
}

func (r *AcceptanceRouter) getByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	record, err := r.acceptances.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (r *AcceptanceRouter) progress(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	progress, err := r.acceptances.GetProgress(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (r *AcceptanceRouter) summary(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	summary, err := r.acceptances.GetSummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (r *AcceptanceRouter) updateItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		return
	}

	var dto model.UpdateWorkflowItemDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := r.acceptances.UpdateItem(c.Request.Context(), id, itemID, &dto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r *AcceptanceRouter) updateItems(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var dto model.BulkUpdateItemsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := r.acceptances.UpdateItems(c.Request.Context(), id, &dto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (r *AcceptanceRouter) submit(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var dto model.SubmitAcceptanceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authCtx := auth.FromContext(c)
	record, err := r.acceptances.Submit(c.Request.Context(), id, &dto, authCtx.UserID, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (r *AcceptanceRouter) cancel(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	authCtx := auth.FromContext(c)
	if err := r.acceptances.Cancel(c.Request.Context(), id, authCtx.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
