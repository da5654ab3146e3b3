package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Maheshkadam-Delxn/eye/middlewares"
	"github.com/Maheshkadam-Delxn/eye/models"
	"github.com/Maheshkadam-Delxn/eye/services"
)

// UserHandler serves the admin's staff-management endpoints.
type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns staff accounts with search, role filter and pagination.
// The calling admin is excluded from the listing.
func (h *UserHandler) List(c *gin.Context) {
	identity, err := middlewares.ExtractIdentity(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Unauthorized", http.StatusUnauthorized, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.service.List(c.Request.Context(), identity.UserID,
		c.Query("search"), models.Role(c.Query("role")), page, limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, result, http.StatusOK)
}

// Create provisions a doctor or receptionist account.
func (h *UserHandler) Create(c *gin.Context) {
	var body struct {
		Name           string      `json:"name"`
		Email          string      `json:"email"`
		Password       string      `json:"password"`
		Role           models.Role `json:"role"`
		Specialization string      `json:"specialization"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	user := &models.User{
		Name:           body.Name,
		Email:          body.Email,
		Password:       body.Password,
		Role:           body.Role,
		Specialization: body.Specialization,
	}
	created, err := h.service.Create(c.Request.Context(), user)
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, created, http.StatusCreated)
}

// Update mutates another staff account. Role is immutable.
func (h *UserHandler) Update(c *gin.Context) {
	identity, err := middlewares.ExtractIdentity(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Unauthorized", http.StatusUnauthorized, err)
		return
	}

	var body struct {
		UserID string `json:"userId"`
		services.UserUpdate
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	user, err := h.service.Update(c.Request.Context(), identity.UserID, body.UserID, body.UserUpdate)
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, user, http.StatusOK)
}

// SetActive toggles another account's active flag.
func (h *UserHandler) SetActive(c *gin.Context) {
	identity, err := middlewares.ExtractIdentity(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Unauthorized", http.StatusUnauthorized, err)
		return
	}

	var body struct {
		UserID   string `json:"userId"`
		IsActive bool   `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	user, err := h.service.SetActive(c.Request.Context(), identity.UserID, body.UserID, body.IsActive)
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, user, http.StatusOK)
}
