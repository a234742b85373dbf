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

// InspectionRouter exposes the manufacturer inspection workflow.
type InspectionRouter struct {
	inspections *service.InspectionService
}

// NewInspectionRouter creates a new InspectionRouter.
func NewInspectionRouter(inspections *service.InspectionService) *InspectionRouter {
	return &InspectionRouter{inspections: inspections}
}

// Register mounts the inspection routes on the given group. The whole
// workflow is factory-side.
func (r *InspectionRouter) Register(group *gin.RouterGroup) {
	inspections := group.Group("/inspections", auth.RequireAuth(), auth.RequireRole(auth.RoleManufacturer))
	inspections.POST("", r.start)
	inspections.GET("", r.list)
	inspections.GET("/queue/pending", r.pendingUnits)
	inspections.GET("/queue/approval", r.approvalQueue)
	inspections.GET("/queue/ship", r.shipQueue)
	inspections.GET("/:id", r.getByID)
	inspections.GET("/:id/progress", r.progress)
	inspections.PATCH("/:id/items/:itemId", r.updateItem)
	inspections.PATCH("/:id/items", r.bulkUpdateItems)
	inspections.POST("/:id/complete", r.complete)
	inspections.POST("/:id/approve", r.approve)
	inspections.POST("/:id/reject", r.reject)
	inspections.POST("/units/:unitId/ship", r.ship)
}

func (r *InspectionRouter) start(c *gin.Context) {
	var dto model.StartInspectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authCtx := auth.FromContext(c)
	record, err := r.inspections.Start(c.Request.Context(), &dto, authCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (r *InspectionRouter) list(c *gin.Context) {
	var status *model.InspectionStatus
	if statusParam := c.Query("status"); statusParam != "" {
		s := model.InspectionStatus(statusParam)
		status = &s
	}
	var inspectorID *uuid.UUID
	if inspectorParam := c.Query("inspectorId"); inspectorParam != "" {
		id, err := uuid.Parse(inspectorParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inspectorId"})
			return
		}
		inspectorID = &id
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

	records, meta, err := r.inspections.List(c.Request.Context(), status, inspectorID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inspections": records, "meta": meta})
}

func (r *InspectionRouter) pendingUnits(c *gin.Context) {
	units, err := r.inspections.UnitsPendingInspection(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units})
}

func (r *InspectionRouter) approvalQueue(c *gin.Context) {
	units, err := r.inspections.UnitsPendingApproval(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units})
}

func (r *InspectionRouter) shipQueue(c *gin.Context) {
	units, err := r.inspections.UnitsReadyToShip(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units})
}

func (r *InspectionRouter) getByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	record, err := r.inspections.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (r *InspectionRouter) progress(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	progress, err := r.inspections.GetProgress(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (r *InspectionRouter) updateItem(c *gin.Context) {
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

	item, err := r.inspections.UpdateItem(c.Request.Context(), id, itemID, &dto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r *InspectionRouter) bulkUpdateItems(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var dto model.BulkUpdateItemsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := r.inspections.BulkUpdateItems(c.Request.Context(), id, &dto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (r *InspectionRouter) complete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var dto model.CompleteInspectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authCtx := auth.FromContext(c)
	record, err := r.inspections.Complete(c.Request.Context(), id, &dto, authCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (r *InspectionRouter) approve(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var dto model.ApproveInspectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authCtx := auth.FromContext(c)
	record, err := r.inspections.Approve(c.Request.Context(), id, &dto, authCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (r *InspectionRouter) reject(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var dto model.RejectInspectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authCtx := auth.FromContext(c)
	record, err := r.inspections.Reject(c.Request.Context(), id, &dto, authCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (r *InspectionRouter) ship(c *gin.Context) {
	unitID, ok := pathUUID(c, "unitId")
	if !ok {
		return
	}

	authCtx := auth.FromContext(c)
	unit, err := r.inspections.ShipUnit(c.Request.Context(), unitID, authCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}
