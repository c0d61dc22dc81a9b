package repofake

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/bookstore/catalog"
	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
)

var _ catalog.Repo = (*FakeCatalogRepo)(nil)

type FakeCatalogRepo struct {
	books map[string]*catalog.Book
	lock  sync.RWMutex
}

func NewFakeCatalogRepo() *FakeCatalogRepo {
	return &FakeCatalogRepo{books: make(map[string]*catalog.Book)}
}

func (cr *FakeCatalogRepo) Create(_ context.Context, book *catalog.Book) (*catalog.Book, error) {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	stored := *book
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	cr.books[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (cr *FakeCatalogRepo) GetByID(_ context.Context, id string) (*catalog.Book, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	book, ok := cr.books[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *book
	return &copied, nil
}

func (cr *FakeCatalogRepo) List(_ context.Context, filter catalog.ListFilter) (*catalog.ListResult, error) {
	filter = filter.Normalize()

	cr.lock.RLock()
	defer cr.lock.RUnlock()

	matched := make([]catalog.Book, 0)
	for _, book := range cr.books {
		if filter.Genre != "" && book.Genre != filter.Genre {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(book.Title), needle) &&
				!strings.Contains(strings.ToLower(book.Author), needle) {
				continue
			}
		}
		matched = append(matched, *book)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	start := (filter.Page - 1) * filter.PageSize
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}

	return &catalog.ListResult{
		Books:    matched[start:end],
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (cr *FakeCatalogRepo) HomeGroups(ctx context.Context) (*catalog.HomeGroups, error) {
	listed, err := cr.List(ctx, catalog.ListFilter{PageSize: 8})
	if err != nil {
		return nil, err
	}

	cr.lock.RLock()
	rated := make([]catalog.Book, 0, len(cr.books))
	for _, book := range cr.books {
		if book.Rating > 0 {
			rated = append(rated, *book)
		}
	}
	cr.lock.RUnlock()

	sort.Slice(rated, func(i, j int) bool {
		if rated[i].Rating != rated[j].Rating {
			return rated[i].Rating > rated[j].Rating
		}
		return rated[i].ID < rated[j].ID
	})
	if len(rated) > 8 {
		rated = rated[:8]
	}

	return &catalog.HomeGroups{NewArrivals: listed.Books, TopRated: rated}, nil
}
