package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/DhruvKhambhata/trackflow/internal/stats"
	"github.com/DhruvKhambhata/trackflow/internal/types/activitylog"
	"github.com/DhruvKhambhata/trackflow/middleware"
	"github.com/DhruvKhambhata/trackflow/services"
)

type LogHandler struct {
	logService *services.LogService
}

func NewLogHandler(logService *services.LogService) *LogHandler {
	return &LogHandler{
		logService: logService,
	}
}

// GET /api/v1/logs?date=YYYY-MM-DD
func (h *LogHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var logs []*activitylog.Log
	var err error
	if date := r.URL.Query().Get("date"); date != "" {
		if _, perr := time.Parse(stats.DayFormat, date); perr != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		logs, err = h.logService.GetLogsForDate(ctx, userID, date)
	} else {
		logs, err = h.logService.GetLogs(ctx, userID)
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch logs")
		return
	}

	respondWithJSON(w, http.StatusOK, logs)
}

// GET /api/v1/logs/today
func (h *LogHandler) GetTodayLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	logs, err := h.logService.GetTodayLogs(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch today's logs")
		return
	}

	respondWithJSON(w, http.StatusOK, logs)
}

// POST /api/v1/logs - create or replace the log for one activity and day
func (h *LogHandler) UpsertLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req activitylog.UpsertLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, err := h.logService.UpsertLog(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Activity not found")
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, saved)
}
