package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Maheshkadam-Delxn/eye/models"
	"github.com/Maheshkadam-Delxn/eye/utils"
)

// contextKey is a private type so handlers cannot collide with our keys.
type contextKey string

const identityKey contextKey = "identity"

// PolicyTable maps a path prefix to the role allowed under it. Paths not
// covered by any prefix still require a valid token; only PublicPaths
// skip authentication entirely.
type PolicyTable map[string]models.Role

// DefaultPolicy is the single, centralized role/path policy. Handlers do
// not re-implement prefix checks; they only re-derive object-level
// ownership where it matters.
var DefaultPolicy = PolicyTable{
	"/admin":        models.RoleAdmin,
	"/doctor":       models.RoleDoctor,
	"/receptionist": models.RoleReceptionist,
}

// PublicPaths require no credential. Signup stays public so the first
// admin account can be bootstrapped on an empty database.
var PublicPaths = map[string]bool{
	"/":            true,
	"/auth/login":  true,
	"/auth/signup": true,
}

// AccessGate authenticates every request and enforces the role/path
// policy before any handler runs. Authentication and authorization
// failures are indistinguishable to the caller: both yield a bare 401 so
// the response never discloses why access was denied.
func AccessGate(maker *utils.TokenMaker, policy PolicyTable) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if PublicPaths[path] {
			c.Next()
			return
		}

		token, err := c.Cookie(utils.TokenCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		claims, err := maker.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		for prefix, role := range policy {
			if strings.HasPrefix(path, prefix) && claims.Role != role {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
				return
			}
		}

		// Attach the decoded identity for downstream handlers.
		ctx := context.WithValue(c.Request.Context(), identityKey, claims)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ExtractIdentity retrieves the verified claims from the request context.
func ExtractIdentity(ctx context.Context) (*utils.TokenClaims, error) {
	claims, ok := ctx.Value(identityKey).(*utils.TokenClaims)
	if !ok || claims == nil {
		return nil, errors.New("identity not found in context")
	}
	return claims, nil
}

// WithIdentity returns a context carrying the given claims. Used by tests
// and by internal callers that bypass the HTTP layer.
func WithIdentity(ctx context.Context, claims *utils.TokenClaims) context.Context {
	return context.WithValue(ctx, identityKey, claims)
}
