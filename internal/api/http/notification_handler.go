package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"islandrides-backend/internal/domain"
	"islandrides-backend/internal/service"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type NotificationResponse struct {
	ID         int32             `json:"id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"isRead"`
	Attributes map[string]string `json:"attributes,omitempty"`
	CreatedOn  string            `json:"createdOn"`
}

func notificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		Title:      n.Title,
		Message:    n.Message,
		IsRead:     n.IsRead,
		Attributes: n.Attributes,
		CreatedOn:  n.CreatedOn,
	}
}

// List handles GET /api/notifications?user_id=.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}
	page, pageSize := pagination(r)

	notes, total, err := h.notifications.GetNotifications(r.Context(), userID, page, pageSize)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	items := make([]NotificationResponse, 0, len(notes))
	for i := range notes {
		items = append(items, notificationResponse(&notes[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": items,
		"total":         total,
		"page":          page,
		"pageSize":      pageSize,
	})
}

// MarkAsRead handles POST /api/notifications/{id}/read.
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid notification id")
		return
	}

	if err := h.notifications.MarkAsRead(r.Context(), userID, int32(id)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
