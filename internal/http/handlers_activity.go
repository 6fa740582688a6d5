package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tubebridge/tubebridge-api/internal/domain/model"
	"github.com/tubebridge/tubebridge-api/internal/service"
)

// ActivityHandlers provides HTTP handlers for the upload activity feed.
type ActivityHandlers struct {
	Svc *service.ActivityService
}

// List handles GET /api/activity with optional upload_id/action filters.
func (h *ActivityHandlers) List(w http.ResponseWriter, r *http.Request) {
	const (
		defaultLimit = 50
		maxLimit     = 200
	)
	limit, offset := ParseLimitOffset(r, defaultLimit, maxLimit)
	opts := model.ActivityListOptions{Limit: limit, Offset: offset}

	if raw := r.URL.Query().Get("upload_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_upload_id",
				Err:     errors.New("upload_id must be a positive integer"),
			})
			return
		}
		opts.UploadID = &id
	}
	if raw := r.URL.Query().Get("action"); raw != "" {
		action := model.ActivityAction(raw)
		if !action.Valid() {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_action",
				Err:     errors.New("action must be one of: upload.submitted, upload.approved, upload.rejected"),
			})
			return
		}
		opts.Action = &action
	}

	entries, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, entries)
}
