package team

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/frahmantamala/ticket-management/internal/transport"
	"github.com/frahmantamala/ticket-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetAllTeams() ([]*Team, error)
	GetTeamByID(id int64) (*Team, error)
	GetTeamMembers(teamID int64) ([]*UserTeam, error)
	GrantTeamPermission(teamID int64, perm string) error
	RevokeTeamPermission(teamID int64, perm string) error
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

func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Service.GetAllTeams()
	if err != nil {
		h.Logger.Error("GetTeams: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	resp := TeamsResponse{Teams: make([]TeamResponse, 0, len(teams))}
	for _, t := range teams {
		if t.IsActive {
			resp.Teams = append(resp.Teams, t.ToResponse())
		}
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := h.teamID(w, r)
	if !ok {
		return
	}

	team, err := h.Service.GetTeamByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, team.ToResponse())
}

func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := h.teamID(w, r)
	if !ok {
		return
	}

	members, err := h.Service.GetTeamMembers(id)
	if err != nil {
		h.Logger.Error("GetMembers: service error", "error", err, "team_id", id)
		h.HandleServiceError(w, err)
		return
	}

	resp := MembersResponse{Members: make([]MemberResponse, 0, len(members))}
	for _, m := range members {
		if m.IsActive {
			resp.Members = append(resp.Members, m.ToResponse())
		}
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GrantPermission(w http.ResponseWriter, r *http.Request) {
	id, ok := h.teamID(w, r)
	if !ok {
		return
	}

	var dto GrantPermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(dto.Permission) == "" {
		h.WriteError(w, http.StatusBadRequest, "permission is required")
		return
	}

	if err := h.Service.GrantTeamPermission(id, dto.Permission); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) RevokePermission(w http.ResponseWriter, r *http.Request) {
	id, ok := h.teamID(w, r)
	if !ok {
		return
	}

	var dto GrantPermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.RevokeTeamPermission(id, dto.Permission); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) teamID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid team id")
		return 0, false
	}
	return id, true
}
