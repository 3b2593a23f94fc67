package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/api/middleware"
	"github.com/lankacraft/marketapi/internal/domain"
	"github.com/lankacraft/marketapi/internal/service"
	"github.com/lankacraft/marketapi/pkg/errors"
)

// OrderResponse represents the order response
type OrderResponse struct {
	ID            string                `json:"id"`
	Status        domain.OrderStatus    `json:"status"`
	Subtotal      float64               `json:"subtotal"`
	DeliveryFee   float64               `json:"delivery_fee"`
	PromoCode     *string               `json:"promo_code,omitempty"`
	PromoDiscount float64               `json:"promo_discount"`
	Total         float64               `json:"total"`
	PaymentMethod *domain.PaymentMethod `json:"payment_method,omitempty"`
	Items         []OrderItemResponse   `json:"items,omitempty"`
	CreatedAt     string                `json:"created_at"`
	UpdatedAt     string                `json:"updated_at"`
}

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	SellerID  string  `json:"seller_id,omitempty"`
	ShopName  string  `json:"shop_name,omitempty"`
}

func toOrderResponse(order *domain.Order, items []*domain.OrderItem) OrderResponse {
	resp := OrderResponse{
		ID:            order.ID.String(),
		Status:        order.Status,
		Subtotal:      order.Subtotal,
		DeliveryFee:   order.DeliveryFee,
		PromoCode:     order.PromoCode,
		PromoDiscount: order.PromoDiscount,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     order.UpdatedAt.Format(time.RFC3339),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			SellerID:  item.SellerID,
			ShopName:  item.ShopName,
		})
	}
	return resp
}

// HandleListOrders handles GET /v1/orders
func HandleListOrders(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		list, err := orders.List(c.Request.Context(), user.ID)
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		resp := make([]OrderResponse, 0, len(list))
		for _, order := range list {
			resp = append(resp, toOrderResponse(order, nil))
		}
		c.JSON(http.StatusOK, gin.H{"orders": resp})
	}
}

// HandleGetOrder handles GET /v1/orders/:id
func HandleGetOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		order, items, err := orders.Get(c.Request.Context(), user.ID, orderID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, toOrderResponse(order, items))
	}
}

// AdvanceStatusRequest represents the status-change payload
type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleAdvanceOrderStatus handles POST /v1/admin/orders/:id/status
func HandleAdvanceOrderStatus(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.GetUserFromContext(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		var req AdvanceStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		order, err := orders.AdvanceStatus(c.Request.Context(), orderID, domain.OrderStatus(req.Status))
		if err != nil {
			if _, ok := err.(*errors.ErrInvalidStateTransition); ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to advance order status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     order.ID.String(),
			"status": order.Status,
		})
	}
}
