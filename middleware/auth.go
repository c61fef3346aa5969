package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const adminTokenTTL = 24 * time.Hour

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}
	return []byte(secret)
}

// GenerateAdminToken issues a signed token for an authenticated admin.
func GenerateAdminToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  email,
		"role": "admin",
		"exp":  time.Now().Add(adminTokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// AdminRequired gates admin routes on a valid bearer token and stores the
// admin's email in the context for audit fields like approvedBy/reservedBy.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return jwtSecret(), nil
		})
		if err != nil || !token.Valid {
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != "admin" {
			utils.JSONError(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set("adminEmail", sub)
		}
		c.Next()
	}
}

// PaymentCheckAuth protects the automated deadline-sweep endpoint with the
// shared bearer token the external cron is configured with.
func PaymentCheckAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := os.Getenv("PAYMENT_CHECK_TOKEN")
		if expected == "" {
			expected = "default-secure-token"
		}
		if c.GetHeader("Authorization") != "Bearer "+expected {
			utils.JSONError(c, http.StatusUnauthorized, "invalid or missing authorization token")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminEmail reads the audit identity stored by AdminRequired.
func AdminEmail(c *gin.Context) string {
	if v, ok := c.Get("adminEmail"); ok {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}
