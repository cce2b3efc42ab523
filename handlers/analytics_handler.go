package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/DhruvKhambhata/trackflow/middleware"
	"github.com/DhruvKhambhata/trackflow/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GET /api/v1/analytics/calendar?year=2025&month=4&activity_id=...
func (h *AnalyticsHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	now := time.Now().UTC()
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if year == 0 {
		year = now.Year()
	}
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	if month == 0 {
		month = int(now.Month())
	}

	var activityID *uuid.UUID
	if raw := r.URL.Query().Get("activity_id"); raw != "" && raw != "all" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid activity_id")
			return
		}
		activityID = &id
	}

	calendar, err := h.analyticsService.GetCalendar(ctx, userID, year, month, activityID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, calendar)
}

// GET /api/v1/analytics/activities
func (h *AnalyticsHandler) GetActivityStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	activityStats, err := h.analyticsService.GetActivityStats(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to compute activity stats")
		return
	}

	respondWithJSON(w, http.StatusOK, activityStats)
}

// GET /api/v1/dashboard
func (h *AnalyticsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	dashboard, err := h.analyticsService.GetDashboard(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to compute dashboard")
		return
	}

	respondWithJSON(w, http.StatusOK, dashboard)
}
