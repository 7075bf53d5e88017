package http

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"procure/internal/core"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.ListCategories(r.Context())
	if err != nil {
		respondServiceError(r.Context(), w, err, "Category not found", "Database error")
		return
	}
	if categories == nil {
		categories = []core.Category{}
	}

	respond(w, http.StatusOK, categories)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	name := categoryName(r)

	category, err := s.categories.GetCategory(r.Context(), name)
	if err != nil {
		respondServiceError(r.Context(), w, err, "Category not found", "Database error")
		return
	}

	respond(w, http.StatusOK, category)
}

func (s *Server) handleCategoryVendors(w http.ResponseWriter, r *http.Request) {
	name := categoryName(r)

	vendors, err := s.categories.ListVendorsByCategory(r.Context(), name)
	if err != nil {
		respondServiceError(r.Context(), w, err, "Category not found", "Database error")
		return
	}
	if vendors == nil {
		vendors = []core.Vendor{}
	}

	respond(w, http.StatusOK, vendors)
}

// categoryName decodes the URL segment so names with spaces, like
// "Office Supplies", round-trip through the path.
func categoryName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
