// Package catalog holds the book listing side of the storefront: filtered,
// paginated listings, home-page groupings, and single-book lookup.
package catalog

import (
	"context"
	"time"
)

type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Genre       string    `json:"genre,omitempty"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Rating      float64   `json:"rating,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

const (
	DefaultPageSize = 12
	MaxPageSize     = 48
)

// ListFilter narrows and pages a listing. Zero values mean "no filter".
type ListFilter struct {
	Genre    string
	Search   string // matches title or author, case-insensitive
	Page     int
	PageSize int
}

// Normalize clamps paging to sane bounds.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

type ListResult struct {
	Books    []Book `json:"books"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// HomeGroups is the landing-page payload: latest arrivals and best rated.
type HomeGroups struct {
	NewArrivals []Book `json:"new_arrivals"`
	TopRated    []Book `json:"top_rated"`
}

type Repo interface {
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	GetByID(ctx context.Context, id string) (*Book, error)
	HomeGroups(ctx context.Context) (*HomeGroups, error)
	Create(ctx context.Context, book *Book) (*Book, error)
}
