package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/OpenDAF/daf/internal/auth"
	"github.com/OpenDAF/daf/internal/tracking/model"
	"github.com/OpenDAF/daf/internal/tracking/service"
)

// ChecklistRouter exposes checklist template management.
type ChecklistRouter struct {
	checklists *service.ChecklistService
}

// NewChecklistRouter creates a new ChecklistRouter.
func NewChecklistRouter(checklists *service.ChecklistService) *ChecklistRouter {
	return &ChecklistRouter{checklists: checklists}
}

// Register mounts the checklist routes on the given group. Templates are
// managed factory-side; reads are open to any authenticated user.
func (r *ChecklistRouter) Register(group *gin.RouterGroup) {
	checklists := group.Group("/checklists", auth.RequireAuth())
	checklists.GET("", r.list)
	checklists.GET("/resolve", r.resolve)
	checklists.GET("/:id", r.getByID)

	manage := checklists.Group("", auth.RequireRole(auth.RoleManufacturer))
	manage.POST("", r.create)
	manage.PATCH("/:id/active", r.setActive)
	manage.POST("/:id/categories", r.addCategory)
	manage.POST("/categories/:categoryId/items", r.addItem)
}

func (r *ChecklistRouter) list(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	templates, err := r.checklists.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (r *ChecklistRouter) resolve(c *gin.Context) {
	templateType := model.TemplateType(c.Query("type"))
	if templateType != model.TemplateTypeManufacturer && templateType != model.TemplateTypeDealer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be MANUFACTURER or DEALER"})
		return
	}

	var modelID *uuid.UUID
	if modelParam := c.Query("modelId"); modelParam != "" {
		id, err := uuid.Parse(modelParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid modelId"})
			return
		}
		modelID = &id
	}

	template, err := r.checklists.FindForModel(c.Request.Context(), modelID, templateType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (r *ChecklistRouter) getByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	template, err := r.checklists.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (r *ChecklistRouter) create(c *gin.Context) {
	var dto model.CreateTemplateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authCtx := auth.FromContext(c)
	template, err := r.checklists.Create(c.Request.Context(), &dto, &authCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (r *ChecklistRouter) setActive(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template, err := r.checklists.SetActive(c.Request.Context(), id, *body.Active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (r *ChecklistRouter) addCategory(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var dto model.AddCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := r.checklists.AddCategory(c.Request.Context(), id, &dto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (r *ChecklistRouter) addItem(c *gin.Context) {
	categoryID, ok := pathUUID(c, "categoryId")
	if !ok {
		return
	}

	var dto model.AddItemDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := r.checklists.AddItem(c.Request.Context(), categoryID, &dto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}
