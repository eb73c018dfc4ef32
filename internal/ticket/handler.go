package ticket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/ticket-management/internal/auth"
	"github.com/frahmantamala/ticket-management/internal/permission"
	"github.com/frahmantamala/ticket-management/internal/transport"
	"github.com/frahmantamala/ticket-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetTicket(ctx context.Context, userID, ticketID int64) (*Ticket, error)
	CreateTicket(ctx context.Context, userID int64, dto CreateTicketDTO) (*Ticket, error)
	ChangeField(ctx context.Context, userID, ticketID int64, field permission.Field, fromID, toID int64) error
	Assign(ctx context.Context, userID, ticketID, fromUserTeamID, toUserTeamID, toTeamID int64) error
	Claim(ctx context.Context, userID, ticketID, toUserTeamID int64) (permission.ClaimKind, error)
	CreateThread(ctx context.Context, userID, ticketID int64, dto CreateThreadDTO) (*Thread, error)
	ListThreads(ctx context.Context, userID, ticketID int64) ([]*Thread, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateTicketDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.CreateTicket(r.Context(), user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	user, ticketID, ok := h.userAndTicket(w, r)
	if !ok {
		return
	}

	t, err := h.Service.GetTicket(r.Context(), user.ID, ticketID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) changeField(field permission.Field) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ticketID, ok := h.userAndTicket(w, r)
		if !ok {
			return
		}

		var dto ChangeFieldDTO
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := dto.Validate(); err != nil {
			h.HandleServiceError(w, err)
			return
		}

		if err := h.Service.ChangeField(r.Context(), user.ID, ticketID, field, dto.FromID, dto.ToID); err != nil {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusNoContent, nil)
	}
}

func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	h.changeField(permission.FieldStatus)(w, r)
}

func (h *Handler) ChangePriority(w http.ResponseWriter, r *http.Request) {
	h.changeField(permission.FieldPriority)(w, r)
}

func (h *Handler) ChangeCategory(w http.ResponseWriter, r *http.Request) {
	h.changeField(permission.FieldCategory)(w, r)
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	user, ticketID, ok := h.userAndTicket(w, r)
	if !ok {
		return
	}

	var dto AssignDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Assign(r.Context(), user.ID, ticketID, dto.FromUserTeamID, dto.ToUserTeamID, dto.ToTeamID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	user, ticketID, ok := h.userAndTicket(w, r)
	if !ok {
		return
	}

	var dto ClaimDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind, err := h.Service.Claim(r.Context(), user.ID, ticketID, dto.ToUserTeamID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ClaimResponse{TicketID: ticketID, ClaimKind: string(kind)})
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	user, ticketID, ok := h.userAndTicket(w, r)
	if !ok {
		return
	}

	var dto CreateThreadDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	th, err := h.Service.CreateThread(r.Context(), user.ID, ticketID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, th)
}

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	user, ticketID, ok := h.userAndTicket(w, r)
	if !ok {
		return
	}

	threads, err := h.Service.ListThreads(r.Context(), user.ID, ticketID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ThreadsResponse{Threads: threads})
}

func (h *Handler) userAndTicket(w http.ResponseWriter, r *http.Request) (*auth.User, int64, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return nil, 0, false
	}

	idStr := chi.URLParam(r, "id")
	ticketID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid ticket id")
		return nil, 0, false
	}
	return user, ticketID, true
}
