package controllers

import (
	"net/http"
	"time"

	"checkout-service/models"
	"checkout-service/services"

	"github.com/gin-gonic/gin"
)

// PaymentController handles HTTP requests for the checkout API.
type PaymentController struct {
	paymentService services.PaymentService
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(svc services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: svc}
}

// Health handles GET /api/health
func (pc *PaymentController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetConfig handles GET /api/payments/config
func (pc *PaymentController) GetConfig(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, pc.paymentService.Config())
}

// CreateOrder handles POST /api/payments/order
func (pc *PaymentController) CreateOrder(ctx *gin.Context) {
	var req models.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	order, svcErr := pc.paymentService.CreateOrder(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// VerifyPayment handles POST /api/payments/verify
func (pc *PaymentController) VerifyPayment(ctx *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	result, svcErr := pc.paymentService.VerifyPayment(&req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// respondError writes a ServiceError as JSON. Upstream order failures carry
// the raw gateway body under "details".
func respondError(ctx *gin.Context, svcErr *services.ServiceError) {
	body := gin.H{"message": svcErr.Message}
	if svcErr.Details != "" {
		body["details"] = svcErr.Details
	}
	ctx.JSON(svcErr.StatusCode, body)
}
