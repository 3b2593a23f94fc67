package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/api/middleware"
	"github.com/lankacraft/marketapi/internal/service"
	"github.com/lankacraft/marketapi/pkg/errors"
)

// CheckoutRequest represents the quote/confirm payload
type CheckoutRequest struct {
	PromoCode string `json:"promo_code"`
}

// HandleQuote handles POST /v1/checkout/quote
func HandleQuote(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		quote, err := orders.Quote(c.Request.Context(), user.ID, req.PromoCode)
		if err != nil {
			respondCheckoutError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, quote)
	}
}

// HandleConfirm handles POST /v1/checkout/confirm
func HandleConfirm(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		order, items, err := orders.Confirm(c.Request.Context(), user.ID, req.PromoCode)
		if err != nil {
			respondCheckoutError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, toOrderResponse(order, items))
	}
}

func respondCheckoutError(c *gin.Context, logger *zap.Logger, err error) {
	if err == service.ErrEmptyCart {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}
	if _, ok := err.(*errors.ErrInvalidPromoCode); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logger.Error("Checkout failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
