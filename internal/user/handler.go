package user

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/ticket-management/internal/auth"
	"github.com/frahmantamala/ticket-management/internal/transport"
	"github.com/frahmantamala/ticket-management/pkg/logger"
)

type ServiceAPI interface {
	GetProfile(ctx context.Context, userID int64) (*ProfileResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("GetCurrentUser: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := h.Service.GetProfile(r.Context(), user.ID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: failed to load profile", "user_id", user.ID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, profile)
}
