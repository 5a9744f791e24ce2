package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/service"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

type listNotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int32                 `json:"total"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	notes, total, err := h.noteSvc.GetNotifications(r.Context(), actorFrom(r).ID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listNotificationsResponse{Notifications: notes, Total: total})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["notificationID"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid notification id"})
		return
	}

	if err := h.noteSvc.MarkAsRead(r.Context(), actorFrom(r).ID, int32(id)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
