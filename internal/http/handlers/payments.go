package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/F0laf0lu/payment-gateway/internal/http/middleware"
	"github.com/F0laf0lu/payment-gateway/internal/http/validation"
	"github.com/F0laf0lu/payment-gateway/internal/modules/payments"
	"github.com/F0laf0lu/payment-gateway/internal/shared/apperr"
)

type PaymentHandler struct {
	Logger  *slog.Logger
	Service *payments.Service
}

func NewPaymentHandler(logger *slog.Logger, svc *payments.Service) *PaymentHandler {
	return &PaymentHandler{Logger: logger, Service: svc}
}

type initiateInput struct {
	Name   string `json:"name" binding:"required,max=100"`
	Email  string `json:"email" binding:"required,email,max=255"`
	Amount string `json:"amount" binding:"required,max=32"`
}

// POST /api/v1/payment
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var in initiateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Name, email, and amount are required.",
			"fields": validation.FromBindError(err, &in),
		})
		return
	}

	res, err := h.Service.Initiate(c.Request.Context(), payments.InitiateInput{
		Name:   in.Name,
		Email:  in.Email,
		Amount: in.Amount,
	})
	if err != nil {
		if ae, ok := apperr.As(err); ok && ae.Kind == apperr.Invalid {
			c.JSON(http.StatusBadRequest, gin.H{"error": ae.PublicMsg})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authorization_url": res.AuthorizationURL,
		"access_code":       res.AccessCode,
		"reference":         res.Reference,
	})
}

// GET /api/v1/payment/verify?reference=...
func (h *PaymentHandler) Verify(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction reference is required"})
		return
	}

	res, err := h.Service.Verify(c.Request.Context(), reference)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Transaction verified successfully",
		"data": gin.H{
			"id":             res.ID,
			"payment_status": res.Status,
			"amount":         res.Amount,
			"currency":       res.Currency,
			"channel":        res.Channel,
			"paid_at":        res.PaidAt,
		},
	})
}

// GET /api/v1/payment/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	p, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment": gin.H{
			"id":             p.ID,
			"customer_name":  p.Name,
			"customer_email": p.Email,
			"amount":         p.Amount,
			"status":         p.Status,
		},
		"status":  "success",
		"message": "Payment details retrieved successfully.",
	})
}

// respondError maps service errors onto the wire. Gateway rejections pass the
// gateway's own status and body through unchanged, matching the contract.
func (h *PaymentHandler) respondError(c *gin.Context, err error) {
	var gwErr *payments.GatewayError

	switch {
	case errors.Is(err, payments.ErrGatewayUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Payment service is unavailable. Please try again later.",
		})
	case errors.As(err, &gwErr):
		c.Data(gwErr.StatusCode, "application/json", gwErr.Body)
	case errors.Is(err, payments.ErrTransactionNotSuccessful):
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Transaction not successful",
		})
	default:
		status := apperr.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			// let the error middleware log and render the 500
			middleware.Fail(c, err)
			return
		}
		c.JSON(status, gin.H{
			"status":  "error",
			"message": apperr.PublicMessage(err),
		})
	}
}
