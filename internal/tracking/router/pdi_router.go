package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OpenDAF/daf/internal/auth"
	"github.com/OpenDAF/daf/internal/tracking/model"
	"github.com/OpenDAF/daf/internal/tracking/service"
)

// PDIRouter exposes the legacy PDI webhook and its read endpoints.
type PDIRouter struct {
	pdis *service.PDIService
}

// NewPDIRouter creates a new PDIRouter.
func NewPDIRouter(pdis *service.PDIService) *PDIRouter {
	return &PDIRouter{pdis: pdis}
}

// Register mounts the PDI routes on the given group. The webhook itself is
// manufacturer-side; the read and resolve endpoints are open to both sides
// so dealers can work the issue list.
func (r *PDIRouter) Register(group *gin.RouterGroup) {
	pdi := group.Group("/pdi", auth.RequireAuth())
	pdi.POST("/vin/:vin", auth.RequireRole(auth.RoleManufacturer), r.create)
	pdi.GET("/vin/:vin", r.latestByVIN)
	pdi.GET("/vin/:vin/all", r.listByVIN)
	pdi.GET("/:id", r.getByID)
	pdi.GET("/:id/summary", r.summary)
	pdi.PATCH("/items/:itemId", r.updateItem)
}

func (r *PDIRouter) create(c *gin.Context) {
	var dto model.CreatePDIDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := r.pdis.Create(c.Request.Context(), c.Param("vin"), &dto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (r *PDIRouter) latestByVIN(c *gin.Context) {
	record, err := r.pdis.GetLatestByVIN(c.Request.Context(), c.Param("vin"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (r *PDIRouter) listByVIN(c *gin.Context) {
	records, err := r.pdis.ListByVIN(c.Request.Context(), c.Param("vin"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pdis": records})
}

func (r *PDIRouter) getByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	record, err := r.pdis.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (r *PDIRouter) summary(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	summary, err := r.pdis.GetSummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (r *PDIRouter) updateItem(c *gin.Context) {
	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		return
	}

	var dto model.UpdatePDIItemDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authCtx := auth.FromContext(c)
	item, err := r.pdis.UpdateItem(c.Request.Context(), itemID, &dto, authCtx.UserID.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
