package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sports-academy-api/internal/middleware"
	"github.com/noah-isme/sports-academy-api/internal/service"
	appErrors "github.com/noah-isme/sports-academy-api/pkg/errors"
	"github.com/noah-isme/sports-academy-api/pkg/response"
)

// ClassHandler handles the offering lifecycle endpoints.
type ClassHandler struct {
	service *service.ClassService
}

// NewClassHandler creates a new class handler.
func NewClassHandler(svc *service.ClassService) *ClassHandler {
	return &ClassHandler{service: svc}
}

// Submit godoc
// @Summary Submit class
// @Description Instructor submits a class; status always starts pending
// @Tags Classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.SubmitClassRequest true "Class payload"
// @Success 201 {object} models.ClassOffering
// @Failure 400 {object} response.ErrorBody
// @Router /classes [post]
func (h *ClassHandler) Submit(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SubmitClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	class, err := h.service.Submit(c.Request.Context(), req, claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// List godoc
// @Summary List all classes
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ClassOffering
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// ListApproved godoc
// @Summary List approved classes
// @Tags Classes
// @Produce json
// @Success 200 {array} models.ClassOffering
// @Router /approvedClass [get]
func (h *ClassHandler) ListApproved(c *gin.Context) {
	classes, err := h.service.ListApproved(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Top godoc
// @Summary Top classes by enrollment
// @Tags Classes
// @Produce json
// @Param limit query int false "Result limit"
// @Success 200 {array} models.ClassOffering
// @Router /topClasses [get]
func (h *ClassHandler) Top(c *gin.Context) {
	limit := 6
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	classes, err := h.service.TopByEnrollment(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Approve godoc
// @Summary Approve class
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} models.ClassOffering
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /classes/approve/{id} [patch]
func (h *ClassHandler) Approve(c *gin.Context) {
	class, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Deny godoc
// @Summary Deny class
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} models.ClassOffering
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /classes/deny/{id} [patch]
func (h *ClassHandler) Deny(c *gin.Context) {
	class, err := h.service.Deny(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Feedback godoc
// @Summary Attach feedback
// @Tags Classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param payload body service.FeedbackRequest true "Feedback"
// @Success 200 {object} models.ClassOffering
// @Failure 404 {object} response.ErrorBody
// @Router /classes/feedback/{id} [put]
func (h *ClassHandler) Feedback(c *gin.Context) {
	var req service.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	class, err := h.service.AttachFeedback(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// ShowFeedback godoc
// @Summary Show class with feedback
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} models.ClassOffering
// @Failure 404 {object} response.ErrorBody
// @Router /classes/showFeedback/{id} [get]
func (h *ClassHandler) ShowFeedback(c *gin.Context) {
	class, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}
