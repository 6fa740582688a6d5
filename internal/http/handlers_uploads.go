// Package httpx provides HTTP handlers and utilities for the tubebridge API.
package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tubebridge/tubebridge-api/internal/data"
	"github.com/tubebridge/tubebridge-api/internal/domain/model"
	apperrors "github.com/tubebridge/tubebridge-api/internal/errors"
	"github.com/tubebridge/tubebridge-api/internal/service"
)

// UploadHandlers provides HTTP handlers for upload staging and listings.
type UploadHandlers struct {
	Svc *service.UploadService
}

// listEnvelope is the response shape for paged listings that carry a total.
type listEnvelope struct {
	Data  any `json:"data"`
	Total int `json:"total"`
}

// List handles GET /api/uploads with optional q/status filters.
func (h *UploadHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts, ok := parseUploadListOptions(w, r)
	if !ok {
		return
	}

	uploads, total, err := h.Svc.ListPage(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, listEnvelope{Data: uploads, Total: total})
}

// GetByID handles GET /api/uploads/{id}.
func (h *UploadHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUploadID(w, r)
	if !ok {
		return
	}

	upload, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		writeUploadError(w, err, "get_failed")
		return
	}
	WriteJSON(w, http.StatusOK, upload)
}

// Delete handles DELETE /api/uploads/{id}.
func (h *UploadHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUploadID(w, r)
	if !ok {
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		writeUploadError(w, err, "delete_failed")
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     apperrors.NotFoundf("Upload with ID %d not found", id),
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OpenStaging handles POST /api/staging.
func (h *UploadHandlers) OpenStaging(w http.ResponseWriter, r *http.Request) {
	state := h.Svc.OpenStaging(r.Context())
	WriteJSON(w, http.StatusCreated, state)
}

// GetStaging handles GET /api/staging/{id}. Clients poll this while a
// simulated transfer runs.
func (h *UploadHandlers) GetStaging(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.GetStaging(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUploadError(w, err, "staging_fetch_failed")
		return
	}
	WriteJSON(w, http.StatusOK, state)
}

// DiscardStaging handles DELETE /api/staging/{id}.
func (h *UploadHandlers) DiscardStaging(w http.ResponseWriter, r *http.Request) {
	h.Svc.DiscardStaging(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// selectFileRequest describes a chosen file. Data is base64 in JSON and is
// only meaningful for thumbnails, where it feeds the preview.
type selectFileRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Data        []byte `json:"data,omitempty"`
}

// SelectVideo handles POST /api/staging/{id}/video.
func (h *UploadHandlers) SelectVideo(w http.ResponseWriter, r *http.Request) {
	var req selectFileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	state, err := h.Svc.SelectVideo(r.Context(), r.PathValue("id"), service.SelectFileInput{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        req.Size,
	})
	if err != nil {
		writeUploadError(w, err, "video_select_failed")
		return
	}
	WriteJSON(w, http.StatusOK, state)
}

// ClearVideo handles DELETE /api/staging/{id}/video.
func (h *UploadHandlers) ClearVideo(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.ClearVideo(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUploadError(w, err, "video_clear_failed")
		return
	}
	WriteJSON(w, http.StatusOK, state)
}

// SelectThumbnail handles POST /api/staging/{id}/thumbnail.
func (h *UploadHandlers) SelectThumbnail(w http.ResponseWriter, r *http.Request) {
	var req selectFileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	state, err := h.Svc.SelectThumbnail(r.Context(), r.PathValue("id"), service.SelectFileInput{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        req.Size,
		Data:        req.Data,
	})
	if err != nil {
		writeUploadError(w, err, "thumbnail_select_failed")
		return
	}
	WriteJSON(w, http.StatusOK, state)
}

// ClearThumbnail handles DELETE /api/staging/{id}/thumbnail.
func (h *UploadHandlers) ClearThumbnail(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.ClearThumbnail(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUploadError(w, err, "thumbnail_clear_failed")
		return
	}
	WriteJSON(w, http.StatusOK, state)
}

// SetDetails handles PUT /api/staging/{id}/details.
func (h *UploadHandlers) SetDetails(w http.ResponseWriter, r *http.Request) {
	var details model.StagingDetails
	if !DecodeJSON(w, r, &details) {
		return
	}

	state, err := h.Svc.SetDetails(r.Context(), r.PathValue("id"), details)
	if err != nil {
		writeUploadError(w, err, "details_update_failed")
		return
	}
	WriteJSON(w, http.StatusOK, state)
}

// Submit handles POST /api/staging/{id}/submit.
func (h *UploadHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	upload, err := h.Svc.Submit(r.Context(), r.PathValue("id"), actorFromContext(r.Context()))
	if err != nil {
		writeUploadError(w, err, "submit_failed")
		return
	}
	WriteJSON(w, http.StatusCreated, upload)
}

func parseUploadID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_id",
			Err:     errors.New("upload ID must be a positive integer"),
		})
		return 0, false
	}
	return id, true
}

func parseUploadListOptions(w http.ResponseWriter, r *http.Request) (model.UploadsListOptions, bool) {
	const (
		defaultLimit = 50
		maxLimit     = 200
	)
	limit, offset := ParseLimitOffset(r, defaultLimit, maxLimit)
	opts := model.UploadsListOptions{Limit: limit, Offset: offset}

	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := model.ParseUploadStatus(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_status",
				Err:     errors.New("status must be one of: Pending, Approved, Rejected, Scheduled"),
			})
			return model.UploadsListOptions{}, false
		}
		opts.Status = &status
	}
	return opts, true
}

// writeUploadError maps service and repository errors onto HTTP responses.
func writeUploadError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, data.ErrUploadNotFound) || apperrors.IsNotFound(err):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
	case apperrors.IsValidation(err):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
	case errors.Is(err, data.ErrUploadAlreadyDecided) || apperrors.IsConflict(err):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
	default:
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: fallback, Err: err})
	}
}
