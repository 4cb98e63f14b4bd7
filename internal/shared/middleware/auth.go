package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"noteboard-backend/internal/shared/response"
	"noteboard-backend/internal/shared/utils"
	"noteboard-backend/pkg/jwt"
)

// ContextAccountIDKey is where AuthMiddleware stores the caller's account id
const ContextAccountIDKey = "account_id"

// AuthMiddleware validates the Bearer access token and resolves the caller identity
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify signature, expiry and token type
		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		// 4. Resolve account id and stash it for handlers
		accountID := utils.ParseStringToUUID(claims.AccountID)
		if accountID == uuid.Nil {
			response.Unauthorized(c, "invalid account id in token")
			c.Abort()
			return
		}

		c.Set(ContextAccountIDKey, accountID)
		c.Next()
	}
}
