package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finbook/finbook-be/internal/models"
	"github.com/finbook/finbook-be/internal/services"
)

// CategoryHandler handles HTTP requests related to categories.
type CategoryHandler struct {
	service services.CategoryServiceProvider
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service services.CategoryServiceProvider) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Create handles the request to create a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var payload models.CategoryCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusUnprocessableEntity)
		return
	}

	category, err := h.service.Create(userID, payload)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

// GetAll handles the request to list the caller's categories.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	skip, limit := pageParams(r)
	categories, err := h.service.List(userID, skip, limit)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

// GetByType handles the request to list the caller's categories with a given
// type tag.
func (h *CategoryHandler) GetByType(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	categories, err := h.service.ListByType(userID, chi.URLParam(r, "type"))
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

// Get handles the request to fetch a single category.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	category, err := h.service.GetByID(userID, chi.URLParam(r, "id"))
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// Update handles partial updates of a category.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var payload models.CategoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusUnprocessableEntity)
		return
	}

	category, err := h.service.Update(userID, chi.URLParam(r, "id"), payload)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// Delete handles the request to delete a category.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(userID, chi.URLParam(r, "id")); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
