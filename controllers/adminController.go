package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Maheshkadam-Delxn/eye/handlers"
)

type AdminController struct {
	Users *handlers.UserHandler
	Stats *handlers.StatsHandler
}

func NewAdminController(users *handlers.UserHandler, stats *handlers.StatsHandler) *AdminController {
	return &AdminController{Users: users, Stats: stats}
}

// RegisterRoutes wires the admin-scoped routes.
func (ac *AdminController) RegisterRoutes(router *gin.Engine) {
	admin := router.Group("/admin")
	{
		admin.GET("/users", ac.Users.List)
		admin.POST("/users", ac.Users.Create)
		admin.PUT("/users", ac.Users.Update)
		admin.PATCH("/users", ac.Users.SetActive)
		admin.GET("/stats", ac.Stats.Get)
	}
}
