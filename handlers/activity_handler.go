package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/DhruvKhambhata/trackflow/internal/types/activity"
	"github.com/DhruvKhambhata/trackflow/middleware"
	"github.com/DhruvKhambhata/trackflow/services"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// GET /api/v1/activities
func (h *ActivityHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	activities, err := h.activityService.GetActivities(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch activities")
		return
	}

	respondWithJSON(w, http.StatusOK, activities)
}

// POST /api/v1/activities
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req activity.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.activityService.CreateActivity(ctx, userID, &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// DELETE /api/v1/activities/{id}
func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	activityID, err := uuid.Parse(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid activity ID")
		return
	}

	if err := h.activityService.DeleteActivity(ctx, userID, activityID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Activity not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete activity")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Activity deleted successfully"})
}
