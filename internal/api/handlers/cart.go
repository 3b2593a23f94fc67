package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/api/middleware"
	"github.com/lankacraft/marketapi/internal/cart"
	"github.com/lankacraft/marketapi/internal/domain"
)

// AddItemRequest represents the add-to-cart payload
type AddItemRequest struct {
	ID          string  `json:"id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	UnitPrice   float64 `json:"unit_price" binding:"min=0"`
	ImageURL    string  `json:"image_url"`
	SellerID    string  `json:"seller_id"`
	ShopName    string  `json:"shop_name"`
	Quantity    int     `json:"quantity"`
	MaxQuantity int     `json:"max_quantity"`
}

// UpdateQuantityRequest represents the quantity-update payload. A pointer is
// used so zero and negative quantities (which remove the item) still bind.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, carts.Snapshot(user.ID))
	}
}

// HandleAddItem handles POST /v1/cart/items
func HandleAddItem(carts *cart.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		state := carts.Update(user.ID, func(s cart.State) cart.State {
			return s.AddItem(cart.Item{
				ID:          req.ID,
				Name:        req.Name,
				UnitPrice:   req.UnitPrice,
				ImageURL:    req.ImageURL,
				SellerID:    req.SellerID,
				ShopName:    req.ShopName,
				MaxQuantity: req.MaxQuantity,
			}, req.Quantity)
		})

		c.JSON(http.StatusOK, state)
	}
}

// HandleUpdateQuantity handles PUT /v1/cart/items/:id
func HandleUpdateQuantity(carts *cart.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req UpdateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		itemID := c.Param("id")
		state := carts.Update(user.ID, func(s cart.State) cart.State {
			return s.UpdateQuantity(itemID, *req.Quantity)
		})

		c.JSON(http.StatusOK, state)
	}
}

// HandleRemoveItem handles DELETE /v1/cart/items/:id
func HandleRemoveItem(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		itemID := c.Param("id")
		state := carts.Update(user.ID, func(s cart.State) cart.State {
			return s.RemoveItem(itemID)
		})

		c.JSON(http.StatusOK, state)
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		state := carts.Update(user.ID, func(s cart.State) cart.State {
			return s.Clear()
		})

		c.JSON(http.StatusOK, state)
	}
}

// SetPaymentMethodRequest represents the payment-method selection payload
type SetPaymentMethodRequest struct {
	ID      string `json:"id" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Details string `json:"details"`
}

// HandleSetPaymentMethod handles PUT /v1/cart/payment-method
func HandleSetPaymentMethod(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req SetPaymentMethodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		paymentType := domain.PaymentType(req.Type)
		if !paymentType.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid payment type"})
			return
		}

		state := carts.Update(user.ID, func(s cart.State) cart.State {
			return s.SetPaymentMethod(domain.PaymentMethod{
				ID:      req.ID,
				Type:    paymentType,
				Name:    req.Name,
				Details: req.Details,
			})
		})

		c.JSON(http.StatusOK, state)
	}
}

// HandleListPaymentMethods handles GET /v1/payment-methods
func HandleListPaymentMethods() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"payment_methods": domain.DefaultPaymentMethods()})
	}
}
