package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextKey = "authContext"

// AuthContext is the authenticated identity injected into a request by the
// middleware. DealerID is set only for dealer users.
type AuthContext struct {
	UserID   uuid.UUID
	Email    string
	Role     Role
	DealerID *uuid.UUID
}

// IsDealer reports whether the caller acts for a dealership.
func (ac *AuthContext) IsDealer() bool {
	return ac.Role == RoleDealer
}

// IsManufacturer reports whether the caller acts for the factory. Admins
// count as manufacturer-side for visibility purposes.
func (ac *AuthContext) IsManufacturer() bool {
	return ac.Role == RoleManufacturer || ac.Role == RoleAdmin
}

// FromContext extracts the AuthContext from a gin context. Returns nil when
// the request carried no valid token.
func FromContext(c *gin.Context) *AuthContext {
	value, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	authCtx, ok := value.(*AuthContext)
	if !ok {
		return nil
	}
	return authCtx
}
