package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenCookieName is the cookie carrying the session token.
const TokenCookieName = "token"

// SetTokenCookie delivers the session token as an HTTP-only, same-site
// strict cookie scoped to the whole site. Lifetime matches token expiry.
func SetTokenCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(TokenCookieName, token, int(TokenExpiry.Seconds()), "/", "", secure, true)
}

// ClearTokenCookie expires the session cookie. Logout is client-side only:
// an already-issued token stays valid until its natural expiry.
func ClearTokenCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(TokenCookieName, "", -1, "/", "", secure, true)
}
