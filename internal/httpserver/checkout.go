package httpserver

import (
	"log"
	"math"
	"net/http"

	"vibecommerce/internal/domain"
	checkoutsvc "vibecommerce/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	CartItems []checkoutItemRequest `json:"cartItems"`
}

type checkoutItemRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

func checkoutHandler(svc *checkoutsvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
			return
		}

		items := make([]domain.CartItem, 0, len(req.CartItems))
		for _, item := range req.CartItems {
			items = append(items, domain.CartItem{
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				Name:       item.Name,
				PriceCents: int64(math.Round(item.Price * 100)),
			})
		}

		receipt, err := svc.Checkout(c.Request.Context(), checkoutsvc.Input{
			SessionID: c.GetHeader(sessionHeader),
			Name:      req.Name,
			Email:     req.Email,
			Items:     items,
		})
		if err != nil {
			respondError(c, logger, err, "Checkout failed")
			return
		}

		c.JSON(http.StatusOK, checkoutResponse{
			Success: true,
			Message: "Order placed successfully",
			Receipt: toReceiptResponse(*receipt),
		})
	}
}
