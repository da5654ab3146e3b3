package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// rootHandler answers the public root path.
func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Clinic API is running"})
}

// SetupRootRoute registers the public root route.
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", rootHandler)
}
