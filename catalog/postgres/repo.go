package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/inkwell-labs/bookstore/catalog"
	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
)

var _ catalog.Repo = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const bookColumns = `id, title, author, COALESCE(genre, ''), COALESCE(description, ''), price, COALESCE(rating, 0), COALESCE(image_url, ''), created_at`

func (r *Repository) List(ctx context.Context, filter catalog.ListFilter) (*catalog.ListResult, error) {
	filter = filter.Normalize()

	where := make([]string, 0, 2)
	args := make([]interface{}, 0, 4)

	if filter.Genre != "" {
		args = append(args, filter.Genre)
		where = append(where, fmt.Sprintf("genre = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR author ILIKE $%d)", len(args), len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM books %s`, whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, apperrors.Wrapf(err, "db error")
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	listQuery := fmt.Sprintf(
		`SELECT %s FROM books %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		bookColumns, whereClause, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, apperrors.Wrapf(err, "db error")
	}
	defer rows.Close()

	books, err := scanBooks(rows)
	if err != nil {
		return nil, err
	}

	return &catalog.ListResult{
		Books:    books,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*catalog.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1`, bookColumns)

	book := catalog.Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID, &book.Title, &book.Author, &book.Genre, &book.Description,
		&book.Price, &book.Rating, &book.ImageURL, &book.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrapf(err, "db error")
	}
	return &book, nil
}

func (r *Repository) HomeGroups(ctx context.Context) (*catalog.HomeGroups, error) {
	newArrivals, err := r.queryGroup(ctx, fmt.Sprintf(
		`SELECT %s FROM books ORDER BY created_at DESC, id LIMIT 8`, bookColumns))
	if err != nil {
		return nil, err
	}
	topRated, err := r.queryGroup(ctx, fmt.Sprintf(
		`SELECT %s FROM books WHERE rating IS NOT NULL ORDER BY rating DESC, id LIMIT 8`, bookColumns))
	if err != nil {
		return nil, err
	}
	return &catalog.HomeGroups{NewArrivals: newArrivals, TopRated: topRated}, nil
}

func (r *Repository) Create(ctx context.Context, book *catalog.Book) (*catalog.Book, error) {
	query :=
		`INSERT INTO books (title, author, genre, description, price, rating, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at
		 `

	stored := *book
	err := r.db.QueryRowContext(ctx, query,
		stored.Title, stored.Author, nullable(stored.Genre), nullable(stored.Description),
		stored.Price, stored.Rating, nullable(stored.ImageURL),
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, apperrors.Wrapf(err, "db error")
	}
	return &stored, nil
}

func (r *Repository) queryGroup(ctx context.Context, query string) ([]catalog.Book, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrapf(err, "db error")
	}
	defer rows.Close()
	return scanBooks(rows)
}

func scanBooks(rows *sql.Rows) ([]catalog.Book, error) {
	books := make([]catalog.Book, 0)
	for rows.Next() {
		book := catalog.Book{}
		if err := rows.Scan(
			&book.ID, &book.Title, &book.Author, &book.Genre, &book.Description,
			&book.Price, &book.Rating, &book.ImageURL, &book.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrapf(err, "db error")
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrapf(err, "db error")
	}
	return books, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
