package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finbook/finbook-be/internal/models"
	"github.com/finbook/finbook-be/internal/services"
)

// GoalHandler handles HTTP requests related to savings goals.
type GoalHandler struct {
	service services.GoalServiceProvider
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(service services.GoalServiceProvider) *GoalHandler {
	return &GoalHandler{service: service}
}

// Create handles the request to create a new goal.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var payload models.GoalCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusUnprocessableEntity)
		return
	}

	goal, err := h.service.Create(userID, payload)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

// GetAll handles the request to list the caller's goals.
func (h *GoalHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	skip, limit := pageParams(r)
	goals, err := h.service.List(userID, skip, limit)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goals)
}

// Get handles the request to fetch a single goal.
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	goal, err := h.service.GetByID(userID, chi.URLParam(r, "id"))
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

// Update handles partial updates of a goal.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var payload models.GoalUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusUnprocessableEntity)
		return
	}

	goal, err := h.service.Update(userID, chi.URLParam(r, "id"), payload)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

// Delete handles the request to delete a goal.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
