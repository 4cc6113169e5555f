package httpserver

import (
	"log"
	"net/http"

	cartsvc "vibecommerce/internal/service/cart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionHeader carries the opaque session identifier the client generates
// and persists across visits.
const sessionHeader = "Session-Id"

// sessionOrNew returns the caller's session id, minting one when the header
// is absent so a first visit still gets a cart. The id is echoed back in the
// response body for the client to keep.
func sessionOrNew(c *gin.Context) string {
	if id := c.GetHeader(sessionHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func getCartHandler(svc *cartsvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := sessionOrNew(c)
		cart, err := svc.GetOrCreate(c.Request.Context(), sessionID)
		if err != nil {
			respondError(c, logger, err, "Failed to fetch cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(sessionID, cart, ""))
	}
}

func addItemHandler(svc *cartsvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID and quantity are required"})
			return
		}

		sessionID := sessionOrNew(c)
		cart, err := svc.AddItem(c.Request.Context(), sessionID, req.ProductID, req.Quantity)
		if err != nil {
			respondError(c, logger, err, "Failed to add item to cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(sessionID, cart, "Item added to cart successfully"))
	}
}

func setQuantityHandler(svc *cartsvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionHeader)
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
			return
		}

		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity is required"})
			return
		}

		cart, err := svc.SetQuantity(c.Request.Context(), sessionID, c.Param("id"), req.Quantity)
		if err != nil {
			respondError(c, logger, err, "Failed to update cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(sessionID, cart, "Cart updated successfully"))
	}
}

func removeItemHandler(svc *cartsvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionHeader)
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
			return
		}

		cart, err := svc.RemoveItem(c.Request.Context(), sessionID, c.Param("id"))
		if err != nil {
			respondError(c, logger, err, "Failed to remove item from cart")
			return
		}

		resp := toCartResponse("", cart, "Item removed from cart successfully")
		c.JSON(http.StatusOK, resp)
	}
}
