package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router exposes the authentication endpoints.
type Router struct {
	service *Service
}

// NewRouter creates a new auth Router.
func NewRouter(service *Service) *Router {
	return &Router{service: service}
}

// Register mounts the auth routes on the given group.
func (r *Router) Register(group *gin.RouterGroup) {
	group.POST("/auth/register", r.register)
	group.POST("/auth/login", r.login)
	group.GET("/auth/me", RequireAuth(), r.me)
}

func (r *Router) register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := r.service.Register(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (r *Router) login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := r.service.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (r *Router) me(c *gin.Context) {
	authCtx := FromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"userId":   authCtx.UserID,
		"role":     authCtx.Role,
		"dealerId": authCtx.DealerID,
	})
}
