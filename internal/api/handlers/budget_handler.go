package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finbook/finbook-be/internal/models"
	"github.com/finbook/finbook-be/internal/services"
)

// BudgetHandler handles HTTP requests related to budgets.
type BudgetHandler struct {
	service services.BudgetServiceProvider
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(service services.BudgetServiceProvider) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// Create handles the request to create a new budget.
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var payload models.BudgetCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusUnprocessableEntity)
		return
	}

	budget, err := h.service.Create(userID, payload)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, budget)
}

// GetAll handles the request to list the caller's budgets.
func (h *BudgetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	skip, limit := pageParams(r)
	budgets, err := h.service.List(userID, skip, limit)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, budgets)
}

// GetActive handles the request to list budgets whose period covers today.
func (h *BudgetHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	budgets, err := h.service.ListActive(userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, budgets)
}

// Get handles the request to fetch a single budget.
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	budget, err := h.service.GetByID(userID, chi.URLParam(r, "id"))
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, budget)
}

// Update handles partial updates of a budget.
func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var payload models.BudgetUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusUnprocessableEntity)
		return
	}

	budget, err := h.service.Update(userID, chi.URLParam(r, "id"), payload)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, budget)
}

// Delete handles the request to delete a budget.
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
