package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Maheshkadam-Delxn/eye/handlers"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler.
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{Handler: authHandler}
}

// RegisterRoutes wires the authentication routes. Login and signup are in
// the access gate's public set; logout requires a valid session.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth/login", ac.Handler.Login)
	router.POST("/auth/signup", ac.Handler.Signup)
	router.POST("/auth/logout", ac.Handler.Logout)
}
