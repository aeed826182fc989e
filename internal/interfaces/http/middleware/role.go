package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stockmaster/backend/internal/domain/identity"
	"github.com/stockmaster/backend/internal/interfaces/http/dto"
)

// RequireInventoryManager gates routes that mutate master data or complete
// workflows. Admins and inventory managers pass, staff may only read.
func RequireInventoryManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}
		if !claims.GetRole().CanManageInventory() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Inventory manager role required"))
			return
		}
		c.Next()
	}
}

// RequireRole gates a route to one specific role
func RequireRole(role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}
		if claims.GetRole() != role {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient role"))
			return
		}
		c.Next()
	}
}
