package httpx

import (
	"errors"
	"net/http"

	"github.com/tubebridge/tubebridge-api/internal/data"
	"github.com/tubebridge/tubebridge-api/internal/domain/model"
	apperrors "github.com/tubebridge/tubebridge-api/internal/errors"
	"github.com/tubebridge/tubebridge-api/internal/service"
)

// ManagerHandlers provides HTTP handlers for content manager administration.
type ManagerHandlers struct {
	Svc *service.ManagerService
}

// List handles GET /api/managers.
func (h *ManagerHandlers) List(w http.ResponseWriter, r *http.Request) {
	const (
		defaultLimit = 50
		maxLimit     = 200
	)
	limit, offset := ParseLimitOffset(r, defaultLimit, maxLimit)

	managers, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, managers)
}

// GetByID handles GET /api/managers/{id}.
func (h *ManagerHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	manager, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeManagerError(w, err, "get_failed")
		return
	}
	WriteJSON(w, http.StatusOK, manager)
}

// Create handles POST /api/managers.
func (h *ManagerHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateManagerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	manager, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		writeManagerError(w, err, "create_failed")
		return
	}
	WriteJSON(w, http.StatusCreated, manager)
}

// Update handles PATCH /api/managers/{id}. Email is immutable.
func (h *ManagerHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateManagerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	manager, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeManagerError(w, err, "update_failed")
		return
	}
	WriteJSON(w, http.StatusOK, manager)
}

// Delete handles DELETE /api/managers/{id}.
func (h *ManagerHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeManagerError(w, err, "delete_failed")
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     data.ErrManagerNotFound,
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeManagerError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, data.ErrManagerNotFound) || apperrors.IsNotFound(err):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
	case errors.Is(err, data.ErrManagerEmailExists) || apperrors.IsConflict(err):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
	case apperrors.IsValidation(err):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
	default:
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: fallback, Err: err})
	}
}
