package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Maheshkadam-Delxn/eye/middlewares"
	"github.com/Maheshkadam-Delxn/eye/services"
	"github.com/Maheshkadam-Delxn/eye/utils"
)

type AuthHandler struct {
	authService   *services.AuthService
	tokenMaker    *utils.TokenMaker
	secureCookies bool
}

func NewAuthHandler(authService *services.AuthService, tokenMaker *utils.TokenMaker, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		tokenMaker:    tokenMaker,
		secureCookies: secureCookies,
	}
}

// Login authenticates the user and delivers the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	if credentials.Email == "" || credentials.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), credentials.Email, credentials.Password)
	if err != nil {
		serviceError(c, err)
		return
	}

	token, err := h.tokenMaker.Issue(user)
	if err != nil {
		middlewares.HttpError(c, "Internal server error", http.StatusInternalServerError, err)
		return
	}
	utils.SetTokenCookie(c, token, h.secureCookies)

	middlewares.RespondJSON(c, gin.H{"user": user.Summary()}, http.StatusOK)
}

// Signup bootstraps the first admin account; closed afterwards.
func (h *AuthHandler) Signup(c *gin.Context) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	if body.Name == "" || body.Email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		serviceError(c, err)
		return
	}

	token, err := h.tokenMaker.Issue(user)
	if err != nil {
		middlewares.HttpError(c, "Internal server error", http.StatusInternalServerError, err)
		return
	}
	utils.SetTokenCookie(c, token, h.secureCookies)

	middlewares.RespondJSON(c, gin.H{"user": user.Summary()}, http.StatusOK)
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; there is no server-side revocation.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.ClearTokenCookie(c, h.secureCookies)
	c.Status(http.StatusOK)
}
