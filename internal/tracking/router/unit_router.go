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

// UnitRouter exposes unit registration, lookup and history.
type UnitRouter struct {
	units *service.UnitService
}

// NewUnitRouter creates a new UnitRouter.
func NewUnitRouter(units *service.UnitService) *UnitRouter {
	return &UnitRouter{units: units}
}

// Register mounts the unit routes on the given group.
func (r *UnitRouter) Register(group *gin.RouterGroup) {
	units := group.Group("/units", auth.RequireAuth())
	units.POST("", auth.RequireRole(auth.RoleManufacturer), r.create)
	units.GET("", r.list)
	units.GET("/incoming", auth.RequireRole(auth.RoleDealer), r.incoming)
	units.GET("/vin/:vin", r.getByVIN)
	units.GET("/:id", r.getByID)
	units.PATCH("/:id", auth.RequireRole(auth.RoleManufacturer), r.update)
	units.GET("/:id/history", r.history)
	units.POST("/vin/:vin/receive", auth.RequireRole(auth.RoleDealer), r.receive)
}

func (r *UnitRouter) create(c *gin.Context) {
	var dto model.CreateUnitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authCtx := auth.FromContext(c)
	unit, err := r.units.Create(c.Request.Context(), &dto, &authCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, unit)
}

func (r *UnitRouter) list(c *gin.Context) {
	query := model.ListUnitsQuery{
		Search: c.Query("search"),
	}
	if statuses := c.QueryArray("status"); len(statuses) > 0 {
		for _, s := range statuses {
			query.Statuses = append(query.Statuses, model.UnitStatus(s))
		}
	}
	if dealerParam := c.Query("dealerId"); dealerParam != "" {
		dealerID, err := uuid.Parse(dealerParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dealerId"})
			return
		}
		query.DealerID = &dealerID
	}
	if offsetParam := c.Query("offset"); offsetParam != "" {
		if v, err := strconv.Atoi(offsetParam); err == nil {
			query.Offset = &v
		}
	}
	if limitParam := c.Query("limit"); limitParam != "" {
		if v, err := strconv.Atoi(limitParam); err == nil {
			query.Limit = &v
		}
	}

	// Dealer users only ever see their own units.
	authCtx := auth.FromContext(c)
	if authCtx.IsDealer() {
		query.DealerID = authCtx.DealerID
	}

	offset, limit := utils.GetPaginationParams(query.Offset, query.Limit)
	query.Offset = &offset
	query.Limit = &limit

	units, meta, err := r.units.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units, "meta": meta})
}

func (r *UnitRouter) incoming(c *gin.Context) {
	authCtx := auth.FromContext(c)
	if authCtx.DealerID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "no dealership on account"})
		return
	}

	units, err := r.units.IncomingForDealer(c.Request.Context(), *authCtx.DealerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units})
}

func (r *UnitRouter) getByVIN(c *gin.Context) {
	unit, err := r.units.GetByVIN(c.Request.Context(), c.Param("vin"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (r *UnitRouter) getByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	unit, err := r.units.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (r *UnitRouter) update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var dto model.UpdateUnitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unit, err := r.units.Update(c.Request.Context(), id, &dto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (r *UnitRouter) history(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	limit := 0
	if limitParam := c.Query("limit"); limitParam != "" {
		if v, err := strconv.Atoi(limitParam); err == nil {
			limit = v
		}
	}

	events, err := r.units.History(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (r *UnitRouter) receive(c *gin.Context) {
	authCtx := auth.FromContext(c)
	unit, err := r.units.MarkReceived(c.Request.Context(), c.Param("vin"), authCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}
