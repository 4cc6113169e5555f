package httpserver

import (
	"time"

	"vibecommerce/internal/domain"
)

// The wire format keeps the field names and dollar amounts the original
// single-page client binds to: `_id` on products, `price`/`total` as decimal
// dollars, `total` (not subtotal) on receipts.

type productResponse struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

type cartItemResponse struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

type cartResponse struct {
	SessionID string             `json:"sessionId,omitempty"`
	Items     []cartItemResponse `json:"items"`
	Total     float64            `json:"total"`
	ItemCount int                `json:"itemCount"`
	Message   string             `json:"message,omitempty"`
}

type receiptResponse struct {
	OrderID    string             `json:"orderId"`
	Customer   customerResponse   `json:"customer"`
	Items      []cartItemResponse `json:"items"`
	Total      float64            `json:"total"`
	Tax        float64            `json:"tax"`
	GrandTotal float64            `json:"grandTotal"`
	Timestamp  time.Time          `json:"timestamp"`
	Status     string             `json:"status"`
}

type customerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type checkoutResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Receipt receiptResponse `json:"receipt"`
}

func dollars(cents int64) float64 {
	return float64(cents) / 100
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       dollars(p.PriceCents),
		Description: p.Description,
		Image:       p.ImageURL,
		Category:    p.Category,
	}
}

func toCartItemResponses(items []domain.CartItem) []cartItemResponse {
	out := make([]cartItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, cartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Name:      item.Name,
			Price:     dollars(item.PriceCents),
		})
	}
	return out
}

func toCartResponse(sessionID string, cart *domain.Cart, message string) cartResponse {
	return cartResponse{
		SessionID: sessionID,
		Items:     toCartItemResponses(cart.Items),
		Total:     dollars(cart.TotalCents()),
		ItemCount: cart.ItemCount(),
		Message:   message,
	}
}

func toReceiptResponse(r domain.Receipt) receiptResponse {
	return receiptResponse{
		OrderID:    r.OrderID,
		Customer:   customerResponse{Name: r.Customer.Name, Email: r.Customer.Email},
		Items:      toCartItemResponses(r.Items),
		Total:      dollars(r.SubtotalCents),
		Tax:        dollars(r.TaxCents),
		GrandTotal: dollars(r.GrandTotalCents),
		Timestamp:  r.Timestamp,
		Status:     r.Status,
	}
}
