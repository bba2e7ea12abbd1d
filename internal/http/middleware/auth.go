package middleware

import (
	"net/http"
	"strings"
	"time"

	intconfig "corptransit/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	userIDKey   = "auth_user_id"
	tenantIDKey = "auth_tenant_id"
	roleKey     = "auth_role"
	vendorIDKey = "auth_vendor_id"
)

const tokenTTL = 24 * time.Hour

// IssueToken signs a JWT carrying the user's identity and tenant scope.
// Vendor admins additionally carry their vendor id.
func IssueToken(userID, tenantID uuid.UUID, role string, vendorID *uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   userID.String(),
		"tenant_id": tenantID.String(),
		"role":      role,
		"exp":       time.Now().Add(tokenTTL).Unix(),
	}
	if vendorID != nil {
		claims["vendor_id"] = vendorID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(intconfig.Cfg.JWTSecret))
}

// Auth validates the Bearer token and stashes the caller's identity in the
// gin context.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(intconfig.Cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}
		c.Set(userIDKey, claimString(claims, "user_id"))
		c.Set(tenantIDKey, claimString(claims, "tenant_id"))
		c.Set(roleKey, claimString(claims, "role"))
		c.Set(vendorIDKey, claimString(claims, "vendor_id"))
		c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allowed set. Mount
// after Auth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if !allowed[GetRole(c)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) uuid.UUID   { return ctxUUID(c, userIDKey) }
func GetTenantID(c *gin.Context) uuid.UUID { return ctxUUID(c, tenantIDKey) }
func GetVendorID(c *gin.Context) uuid.UUID { return ctxUUID(c, vendorIDKey) }

func GetRole(c *gin.Context) string {
	if v, ok := c.Get(roleKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func ctxUUID(c *gin.Context, key string) uuid.UUID {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			if id, err := uuid.Parse(s); err == nil {
				return id
			}
		}
	}
	return uuid.Nil
}
