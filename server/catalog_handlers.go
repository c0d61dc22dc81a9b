package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/inkwell-labs/bookstore/catalog"
)

func (s *Server) BooksListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := catalog.ListFilter{
			Genre:  query.Get("genre"),
			Search: query.Get("search"),
		}
		if page, err := strconv.Atoi(query.Get("page")); err == nil {
			filter.Page = page
		}
		if size, err := strconv.Atoi(query.Get("page_size")); err == nil {
			filter.PageSize = size
		}

		result, err := s.catalog.List(r.Context(), filter)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) BooksHomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := s.catalog.HomeGroups(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, groups)
	}
}

func (s *Server) BookByIDHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		book, err := s.catalog.GetByID(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, book)
	}
}

// BookCreateHandler adds a catalog entry. Admin only.
func (s *Server) BookCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var book catalog.Book
		if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if book.Title == "" || book.Author == "" {
			writeJSONError(w, http.StatusBadRequest, "title and author are required")
			return
		}

		created, err := s.catalog.Create(r.Context(), &book)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}
