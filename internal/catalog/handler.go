package catalog

import (
	"net/http"

	"github.com/frahmantamala/ticket-management/internal/transport"
)

type ServiceAPI interface {
	GetAllStatuses() ([]StatusResponse, error)
	GetAllPriorities() ([]PriorityResponse, error)
	GetAllCategories() ([]CategoryResponse, error)
	IsValidStatus(id int64) bool
	IsValidPriority(id int64) bool
	IsValidCategory(id int64) bool
	IsClosedStatus(id int64) bool
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.Service.GetAllStatuses()
	if err != nil {
		h.Logger.Error("GetStatuses: failed to get statuses", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get statuses")
		return
	}

	h.WriteJSON(w, http.StatusOK, StatusesResponse{
		Statuses: statuses,
	})
}

func (h *Handler) GetPriorities(w http.ResponseWriter, r *http.Request) {
	priorities, err := h.Service.GetAllPriorities()
	if err != nil {
		h.Logger.Error("GetPriorities: failed to get priorities", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get priorities")
		return
	}

	h.WriteJSON(w, http.StatusOK, PrioritiesResponse{
		Priorities: priorities,
	})
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.GetAllCategories()
	if err != nil {
		h.Logger.Error("GetCategories: failed to get categories", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get categories")
		return
	}

	h.WriteJSON(w, http.StatusOK, CategoriesResponse{
		Categories: categories,
	})
}
