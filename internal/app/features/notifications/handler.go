// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"errors"
	"net/http"

	notificationstore "github.com/dalemusser/jobhub/internal/app/store/notifications"
	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/authz"
	"github.com/dalemusser/jobhub/internal/app/system/inputval"
	"github.com/dalemusser/jobhub/internal/app/system/notify"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the notification inbox. Every operation is scoped to the
// signed-in user's own notifications.
type Handler struct {
	Store      *notificationstore.Store
	Recruiters *recruiterstore.Store
	Notify     *notify.Dispatcher
	Log        *zap.Logger
}

// NewHandler constructs the notifications handler. Created notifications
// are stored and pushed through n.
func NewHandler(db *mongo.Database, n *notify.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		Store:      notificationstore.New(db),
		Recruiters: recruiterstore.New(db),
		Notify:     n,
		Log:        logger,
	}
}

func caller(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	_, id, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "No token, authorization denied")
	}
	return id, ok
}

// self resolves {userID} and requires it to be the caller.
func self(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	if !authz.IsSelf(r, chi.URLParam(r, "userID")) {
		apierr.Message(w, http.StatusForbidden, "Unauthorized access")
		return primitive.NilObjectID, false
	}
	_, id, _ := authz.UserCtx(r)
	return id, true
}

func notificationID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apierr.Invalid("Invalid notification id")
	}
	return id, nil
}

func storeErr(err error) error {
	if errors.Is(err, notificationstore.ErrNotFound) {
		return apierr.NotFound("Notification not found")
	}
	return apierr.Internal("Server error", err)
}

// ServeList handles GET /user/{userID}: newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	userID, ok := self(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Store.ListByUser(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, list)
}

// ServeUnreadCount handles GET /user/{userID}/unread-count.
func (h *Handler) ServeUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := self(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Store.CountUnread(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]int64{"count": n})
}

type createRequest struct {
	Type        string         `json:"type" validate:"required,notiftype"`
	Title       string         `json:"title" validate:"required"`
	Message     string         `json:"message" validate:"required"`
	JobID       string         `json:"jobId" validate:"omitempty,len=24,hexadecimal"`
	Metadata    map[string]any `json:"metadata"`
	CompanyName string         `json:"companyName"`
	CompanyLogo string         `json:"companyLogo"`
}

// HandleCreate handles POST /: a notification for the caller. Missing
// company fields are taken from the caller's recruiter profile, if any.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var req createRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Struct(req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n := models.Notification{
		UserID:      userID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Metadata:    req.Metadata,
		CompanyName: req.CompanyName,
		CompanyLogo: req.CompanyLogo,
	}
	if req.JobID != "" {
		id, _ := primitive.ObjectIDFromHex(req.JobID)
		n.JobID = &id
	}
	if n.CompanyName == "" || n.CompanyLogo == "" {
		p, err := h.Recruiters.ByUserID(ctx, userID)
		switch {
		case err == nil:
			n.CompanyName = notify.FirstNonEmpty(p.CompanyName, n.CompanyName)
			n.CompanyLogo = notify.FirstNonEmpty(p.CompanyLogo, n.CompanyLogo)
		case !errors.Is(err, recruiterstore.ErrNotFound):
			apierr.Write(w, h.Log, apierr.Internal("Failed to create notification", err))
			return
		}
	}

	created, err := h.Notify.Send(ctx, n)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Failed to create notification", err))
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, created)
}

// HandleMarkRead handles PUT /{id}/read.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := notificationID(r)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Store.MarkRead(ctx, userID, id)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, n)
}

// HandleMarkAllRead handles PUT /user/{userID}/read-all.
func (h *Handler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := self(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Store.MarkAllRead(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  "All notifications marked as read",
		"modified": n,
	})
}

// HandleDelete handles DELETE /{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := notificationID(r)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Delete(ctx, userID, id); err != nil {
		apierr.Write(w, h.Log, storeErr(err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]string{"message": "Notification deleted"})
}

// HandleDeleteAll handles DELETE /.
func (h *Handler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Store.DeleteAll(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "All notifications deleted",
		"deleted": n,
	})
}
