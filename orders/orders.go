// Package orders defines the order/cart persistence collaborator. Cart state
// lives client-side and checkout never reaches a real payment processor;
// only the persistence contract lives here.
package orders

import (
	"context"
	"time"
)

type Line struct {
	BookID   string  `json:"book_id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Lines     []Line    `json:"lines"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo interface {
	Create(ctx context.Context, order *Order) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}
