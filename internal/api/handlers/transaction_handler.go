package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finbook/finbook-be/internal/models"
	"github.com/finbook/finbook-be/internal/services"
)

// TransactionHandler handles HTTP requests related to transactions.
type TransactionHandler struct {
	service services.TransactionServiceProvider
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(service services.TransactionServiceProvider) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// Create handles the request to record a new transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var payload models.TransactionCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusUnprocessableEntity)
		return
	}

	txn, err := h.service.Create(userID, payload)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, txn)
}

// GetAll handles the request to list the caller's transactions.
func (h *TransactionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	skip, limit := pageParams(r)
	txns, err := h.service.List(userID, skip, limit)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, txns)
}

// GetByCategory handles the request to list the caller's transactions in one
// category.
func (h *TransactionHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	categoryID := chi.URLParam(r, "categoryID")
	skip, limit := pageParams(r)
	txns, err := h.service.ListByCategory(userID, categoryID, skip, limit)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, txns)
}

// Get handles the request to fetch a single transaction.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	txn, err := h.service.GetByID(userID, chi.URLParam(r, "id"))
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, txn)
}

// Update handles partial updates of a transaction.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var payload models.TransactionUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusUnprocessableEntity)
		return
	}

	txn, err := h.service.Update(userID, chi.URLParam(r, "id"), payload)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, txn)
}

// Delete handles the request to delete a transaction.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
