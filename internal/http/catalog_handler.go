package http

import (
	"net/http"
	"strconv"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/repository"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog Catalog
	logger  *zap.Logger
}

type ReviewsResponseDTO struct {
	Reviews       []*domain.Review `json:"reviews"`
	AverageRating float64          `json:"average_rating"`
}

type CreateReviewRequestDTO struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func productFilter(r *http.Request) repository.ProductFilter {
	q := r.URL.Query()
	f := repository.ProductFilter{
		Category: q.Get("category"),
		Search:   q.Get("q"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		f.Limit = limit
	}
	return f
}

// GET /api/v1/products?category=&q=&limit=
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context(), productFilter(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// GET /api/v1/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// GET /api/v1/products/{id}/reviews
func (h *CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	reviews, err := h.catalog.ListReviews(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	values := make([]domain.Review, 0, len(reviews))
	for _, rv := range reviews {
		values = append(values, *rv)
	}
	respondJSON(w, http.StatusOK, ReviewsResponseDTO{
		Reviews:       reviews,
		AverageRating: domain.AverageRating(values),
	})
}

// POST /api/v1/products/{id}/reviews
func (h *CatalogHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req CreateReviewRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	rv := &domain.Review{
		ProductID: id,
		UserID:    currentUser(r.Context()).ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.catalog.CreateReview(r.Context(), rv); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, rv)
}
