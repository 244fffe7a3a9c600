package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/internal/service/notify"
)

type inboxService interface {
	List(ctx context.Context, input notify.ListInput) (notify.ListResult, error)
	MarkRead(ctx context.Context, input notify.MarkReadInput) error
	MarkAllRead(ctx context.Context) (int, error)
}

// NotificationHandler serves the caller's in-app inbox.
type NotificationHandler struct {
	svc inboxService
	log *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc inboxService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, log: logger.With("handler", "notification")}
}

type inboxResponse struct {
	Items  []notificationResponse `json:"items"`
	Total  int                    `json:"total"`
	Unread int                    `json:"unread"`
}

// List handles GET /notifications?unread=true.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := page(r)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	input := notify.ListInput{Limit: limit, Offset: offset}
	switch r.URL.Query().Get("unread") {
	case "", "false", "0":
	case "true", "1":
		input.UnreadOnly = true
	default:
		writeDomainError(w, r, h.log, domain.NewValidationError("unread", "must be a boolean"))
		return
	}

	res, err := h.svc.List(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, inboxResponse{
		Items:  mapSlice(res.Items, toNotification),
		Total:  res.Total,
		Unread: res.Unread,
	})
}

// MarkRead handles POST /notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if err := h.svc.MarkRead(r.Context(), notify.MarkReadInput{NotificationID: id}); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.MarkAllRead(r.Context())
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": n})
}
