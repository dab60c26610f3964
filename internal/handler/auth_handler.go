package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sports-academy-api/internal/models"
	"github.com/noah-isme/sports-academy-api/internal/service"
	appErrors "github.com/noah-isme/sports-academy-api/pkg/errors"
	"github.com/noah-isme/sports-academy-api/pkg/response"
)

// AuthHandler exposes the token issuance endpoint.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// IssueToken godoc
// @Summary Issue access token
// @Description Signs a 10h access token for the given identity
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body service.IssueTokenRequest true "Identity claim"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} response.ErrorBody
// @Router /jwt [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req service.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	token, err := h.service.IssueToken(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, models.TokenResponse{Token: token})
}
