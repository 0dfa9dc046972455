package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"maintenance-genie.backend/internal/domain/entities"
	"maintenance-genie.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
	// AccountTypeKey is the context key for account type
	AccountTypeKey = "accountType"
	// TokenScopeKey is the context key for the token scope
	TokenScopeKey = "tokenScope"
)

// AuthMiddleware creates a new authentication middleware
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)
		c.Set(AccountTypeKey, claims.Type)
		c.Set(TokenScopeKey, claims.Scope)

		c.Next()
	}
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetUserEmail gets the user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	return role.(string), true
}

// GetAccountType gets the account type from context
func GetAccountType(c *gin.Context) (string, bool) {
	accountType, exists := c.Get(AccountTypeKey)
	if !exists {
		return "", false
	}
	return accountType.(string), true
}

// GetTokenScope gets the token scope from context
func GetTokenScope(c *gin.Context) (string, bool) {
	scope, exists := c.Get(TokenScopeKey)
	if !exists {
		return "", false
	}
	return scope.(string), true
}

// RequireType creates a middleware that requires one of the given account
// types. Scoped tokens (profile completion) carry no type and are rejected.
func RequireType(types ...entities.AccountType) gin.HandlerFunc {
	return func(c *gin.Context) {
		if scope, _ := GetTokenScope(c); scope != "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}

		accountType, exists := GetAccountType(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Account type not found",
			})
			return
		}

		for _, t := range types {
			if accountType == string(t) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
	}
}

// RequireUser creates a middleware that requires a USER account
func RequireUser() gin.HandlerFunc {
	return RequireType(entities.AccountTypeUser)
}

// RequireAdmin creates a middleware that requires an ADMIN account
func RequireAdmin() gin.HandlerFunc {
	return RequireType(entities.AccountTypeAdmin)
}

// RequireScope creates a middleware that requires an exact token scope
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenScope, exists := GetTokenScope(c)
		if !exists || tokenScope != scope {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}
		c.Next()
	}
}
