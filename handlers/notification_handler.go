package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/DhruvKhambhata/trackflow/internal/types/subscription"
	"github.com/DhruvKhambhata/trackflow/middleware"
	"github.com/DhruvKhambhata/trackflow/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// POST /api/v1/notifications/subscribe
func (h *NotificationHandler) SubscribePush(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req subscription.SubscribePushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.notificationService.SubscribePush(ctx, userID, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Subscription saved successfully"})
}

// POST /api/v1/notifications/unsubscribe
func (h *NotificationHandler) UnsubscribePush(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.notificationService.UnsubscribePush(ctx, userID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to unsubscribe")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Unsubscribed successfully"})
}

// POST /api/v1/notifications/email/subscribe
func (h *NotificationHandler) SubscribeEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req subscription.SubscribeEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.notificationService.SubscribeEmail(ctx, userID, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Email subscription saved successfully"})
}

// POST /api/v1/notifications/email/unsubscribe
func (h *NotificationHandler) UnsubscribeEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.notificationService.UnsubscribeEmail(ctx, userID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to unsubscribe")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Unsubscribed successfully"})
}

// POST /api/v1/notifications/send - cron-triggered, guarded by X-Cron-Secret
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var req subscription.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	queued, err := h.notificationService.Send(ctx, &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.CountReminderDeliveries(req.Type, queued)
	respondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Notifications queued successfully",
		"queued":  queued,
	})
}
