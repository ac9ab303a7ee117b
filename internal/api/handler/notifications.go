package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/secondbank/mobile-api/internal/models"
	"github.com/secondbank/mobile-api/internal/notification"
)

// NotificationsHandler serves the activity feed.
type NotificationsHandler struct {
	feed *notification.Feed
}

func NewNotificationsHandler(feed *notification.Feed) *NotificationsHandler {
	return &NotificationsHandler{feed: feed}
}

func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]any{
		"notifications": h.feed.List(),
		"unread":        h.feed.Unread(),
	})
}

func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, r, http.StatusBadRequest, "notifications/invalid-id", "Invalid notification id")
		return
	}

	if err := h.feed.MarkRead(id); err != nil {
		if errors.Is(err, models.ErrNotificationNotFound) {
			RespondError(w, r, http.StatusNotFound, "notifications/not-found", err.Error())
			return
		}
		RespondError(w, r, http.StatusInternalServerError, "notifications/mark-read", err.Error())
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
