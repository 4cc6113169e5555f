package domain

import "time"

// Receipt is computed at checkout and returned to the caller. Receipts are
// not persisted.
type Receipt struct {
	OrderID         string     `json:"orderId"`
	Customer        Customer   `json:"customer"`
	Items           []CartItem `json:"items"`
	SubtotalCents   int64      `json:"subtotalCents"`
	TaxCents        int64      `json:"taxCents"`
	GrandTotalCents int64      `json:"grandTotalCents"`
	Timestamp       time.Time  `json:"timestamp"`
	Status          string     `json:"status"`
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
