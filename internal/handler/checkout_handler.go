package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sports-academy-api/internal/middleware"
	"github.com/noah-isme/sports-academy-api/internal/models"
	"github.com/noah-isme/sports-academy-api/internal/service"
	appErrors "github.com/noah-isme/sports-academy-api/pkg/errors"
	"github.com/noah-isme/sports-academy-api/pkg/export"
	"github.com/noah-isme/sports-academy-api/pkg/response"
)

// CheckoutHandler handles cart, payment intent and checkout endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(svc *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
	}
}

// Select godoc
// @Summary Select class
// @Description Adds an approved class to the caller's cart
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.SelectClassRequest true "Selection payload"
// @Success 201 {object} models.SelectedClass
// @Failure 409 {object} response.ErrorBody
// @Router /selectedClasses [post]
func (h *CheckoutHandler) Select(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SelectClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	selection, err := h.service.Select(c.Request.Context(), req, claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, selection)
}

// Cart godoc
// @Summary List selected classes
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.SelectedClass
// @Router /selectedClass [get]
func (h *CheckoutHandler) Cart(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	selections, err := h.service.Cart(c.Request.Context(), claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selections)
}

// Remove godoc
// @Summary Remove selected class
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Param id path string true "Selection ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.ErrorBody
// @Router /selectedClass/{id} [delete]
func (h *CheckoutHandler) Remove(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.RemoveSelection(c.Request.Context(), c.Param("id"), claims.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CreateIntent godoc
// @Summary Create payment intent
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.IntentRequest true "Amount in minor units"
// @Success 200 {object} payments.Intent
// @Failure 400 {object} response.ErrorBody
// @Router /create-payment-intent [post]
func (h *CheckoutHandler) CreateIntent(c *gin.Context) {
	var req service.IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	intent, err := h.service.CreateIntent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, intent)
}

// Checkout godoc
// @Summary Complete checkout
// @Description Converts a selection into a payment and an enrollment, all-or-nothing
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CheckoutRequest true "Checkout payload"
// @Success 201 {object} service.CheckoutResult
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Failure 502 {object} response.ErrorBody
// @Router /payments [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.service.Checkout(c.Request.Context(), req, claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// PaymentHistory godoc
// @Summary Payment history
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Success 200 {array} models.Payment
// @Failure 403 {object} response.ErrorBody
// @Router /paymentSuccessfully/{email} [get]
func (h *CheckoutHandler) PaymentHistory(c *gin.Context) {
	email, ok := h.ownEmail(c)
	if !ok {
		return
	}

	history, err := h.service.PaymentsByEmail(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history)
}

// Enrolled godoc
// @Summary Enrolled classes
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Success 200 {array} models.EnrolledClass
// @Failure 403 {object} response.ErrorBody
// @Router /enrolledStudent/{email} [get]
func (h *CheckoutHandler) Enrolled(c *gin.Context) {
	email, ok := h.ownEmail(c)
	if !ok {
		return
	}

	enrolled, err := h.service.EnrolledByEmail(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrolled)
}

// ExportPayments godoc
// @Summary Export payment ledger
// @Tags Checkout
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 403 {object} response.ErrorBody
// @Router /payments/export [get]
func (h *CheckoutHandler) ExportPayments(c *gin.Context) {
	ledger, err := h.service.PaymentLedger(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	dataset := paymentDataset(ledger)
	switch c.DefaultQuery("format", "csv") {
	case "pdf":
		payload, err := h.pdf.Render(dataset, "Payment Ledger")
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="payments.pdf"`)
		c.Data(http.StatusOK, "application/pdf", payload)
	case "csv":
		payload, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="payments.csv"`)
		c.Data(http.StatusOK, "text/csv", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported export format"))
	}
}

// ownEmail enforces that the path email matches the verified claims.
func (h *CheckoutHandler) ownEmail(c *gin.Context) (string, bool) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", false
	}
	email := c.Param("email")
	if claims.Email != email {
		response.Error(c, appErrors.ErrForbidden)
		return "", false
	}
	return email, true
}

func paymentDataset(ledger []models.Payment) export.Dataset {
	headers := []string{"Date", "Email", "Class", "Amount", "Currency", "Transaction"}
	rows := make([]map[string]string, 0, len(ledger))
	for _, p := range ledger {
		rows = append(rows, map[string]string{
			"Date":        p.CreatedAt.Format(time.RFC3339),
			"Email":       p.Email,
			"Class":       p.ClassName,
			"Amount":      fmt.Sprintf("%.2f", float64(p.Amount)/100),
			"Currency":    p.Currency,
			"Transaction": p.TransactionID,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
