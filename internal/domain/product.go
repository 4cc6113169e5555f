package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PriceCents  int64     `json:"priceCents"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
