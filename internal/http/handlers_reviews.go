package httpx

import (
	"net/http"

	"github.com/tubebridge/tubebridge-api/internal/domain/model"
	"github.com/tubebridge/tubebridge-api/internal/service"
)

// ReviewHandlers provides HTTP handlers for the reviewer queue and
// approve/reject decisions.
type ReviewHandlers struct {
	Svc *service.ReviewService
}

// Queue handles GET /api/uploads/pending: uploads still awaiting review.
func (h *ReviewHandlers) Queue(w http.ResponseWriter, r *http.Request) {
	const (
		defaultLimit = 50
		maxLimit     = 200
	)
	limit, offset := ParseLimitOffset(r, defaultLimit, maxLimit)

	uploads, err := h.Svc.ListQueue(r.Context(), limit, offset)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "queue_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, uploads)
}

// Approve handles POST /api/uploads/{id}/approve. The body is optional and
// may carry metadata edits made in the approval dialog.
func (h *ReviewHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUploadID(w, r)
	if !ok {
		return
	}

	var edits model.ReviewUploadEdits
	if r.ContentLength != 0 {
		if !DecodeJSON(w, r, &edits) {
			return
		}
	}

	upload, err := h.Svc.Approve(r.Context(), id, actorFromContext(r.Context()), edits)
	if err != nil {
		writeUploadError(w, err, "approve_failed")
		return
	}
	WriteJSON(w, http.StatusOK, upload)
}

// rejectRequest carries the reviewer's feedback for the submitter.
type rejectRequest struct {
	Feedback string `json:"feedback"`
}

// Reject handles POST /api/uploads/{id}/reject.
func (h *ReviewHandlers) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUploadID(w, r)
	if !ok {
		return
	}

	var req rejectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	upload, err := h.Svc.Reject(r.Context(), id, actorFromContext(r.Context()), req.Feedback)
	if err != nil {
		writeUploadError(w, err, "reject_failed")
		return
	}
	WriteJSON(w, http.StatusOK, upload)
}
