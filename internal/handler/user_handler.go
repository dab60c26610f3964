package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sports-academy-api/internal/middleware"
	"github.com/noah-isme/sports-academy-api/internal/models"
	"github.com/noah-isme/sports-academy-api/internal/service"
	appErrors "github.com/noah-isme/sports-academy-api/pkg/errors"
	"github.com/noah-isme/sports-academy-api/pkg/response"
)

// UserHandler handles user registration, role management and lookup.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// Signup godoc
// @Summary Register user
// @Description Idempotent signup keyed on email
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body service.SignupRequest true "Signup payload"
// @Success 200 {object} service.SignupResult
// @Success 201 {object} service.SignupResult
// @Failure 400 {object} response.ErrorBody
// @Router /users [post]
func (h *UserHandler) Signup(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Created {
		response.Created(c, result)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 403 {object} response.ErrorBody
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// ListInstructors godoc
// @Summary List instructors
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Router /instructors [get]
func (h *UserHandler) ListInstructors(c *gin.Context) {
	instructors, err := h.service.ListInstructors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructors)
}

// MakeAdmin godoc
// @Summary Promote user to admin
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.ErrorBody
// @Router /users/admin/{id} [patch]
func (h *UserHandler) MakeAdmin(c *gin.Context) {
	h.promote(c, models.RoleAdmin)
}

// MakeInstructor godoc
// @Summary Promote user to instructor
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.ErrorBody
// @Router /users/instructor/{id} [patch]
func (h *UserHandler) MakeInstructor(c *gin.Context) {
	h.promote(c, models.RoleInstructor)
}

func (h *UserHandler) promote(c *gin.Context, role models.UserRole) {
	if err := h.service.Promote(c.Request.Context(), c.Param("id"), role); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"modified": true})
}

// Delete godoc
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.ErrorBody
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CheckAdmin godoc
// @Summary Check admin role
// @Description Answers whether the caller's email holds the admin role
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Success 200 {object} models.RoleCheck
// @Router /users/admin/{email} [get]
func (h *UserHandler) CheckAdmin(c *gin.Context) {
	h.checkRole(c, models.RoleAdmin)
}

// CheckInstructor godoc
// @Summary Check instructor role
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Success 200 {object} models.RoleCheck
// @Router /users/instructor/{email} [get]
func (h *UserHandler) CheckInstructor(c *gin.Context) {
	h.checkRole(c, models.RoleInstructor)
}

// checkRole answers false without touching the store when the token email
// does not match the path email, mirroring the original contract.
func (h *UserHandler) checkRole(c *gin.Context, role models.UserRole) {
	email := c.Param("email")
	claims := middleware.ClaimsFromContext(c)

	holds := false
	if claims != nil && claims.Email == email {
		var err error
		holds, err = h.service.HasRole(c.Request.Context(), email, role)
		if err != nil {
			response.Error(c, err)
			return
		}
	}

	check := models.RoleCheck{}
	if role == models.RoleAdmin {
		check.Admin = &holds
	} else {
		check.Instructor = &holds
	}
	response.JSON(c, http.StatusOK, check)
}
