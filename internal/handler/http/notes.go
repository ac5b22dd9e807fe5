package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-notes-keeper/internal/app"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/go-chi/chi/v5"
)

// listNotes handles GET /api/v1/notes/?limit=&offset=. Notes are returned
// newest first.
func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	limit, okLimit := queryUint(r, "limit")
	offset, okOffset := queryUint(r, "offset")
	if !okLimit || !okOffset {
		writeErrorMessage(w, app.MsgInvalidPagination, http.StatusBadRequest)
		return
	}

	notes, err := h.services.NoteService.List(r.Context(), models.NoteFilter{
		AuthorID: userID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

// createNote handles POST /api/v1/notes/. The author is the authenticated
// user; an "author" field in the body is ignored.
func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.NoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := h.services.NoteService.Create(r.Context(), models.Note{
		Title:    deref(req.Title),
		Content:  deref(req.Content),
		AuthorID: userID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}

// getNote handles GET /api/v1/notes/{id}/.
func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.noteTarget(w, r)
	if !ok {
		return
	}

	note, err := h.services.NoteService.Get(r.Context(), userID, noteID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

// updateNote handles PUT /api/v1/notes/{id}/. Both fields are required.
func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	h.saveNote(w, r, false)
}

// patchNote handles PATCH /api/v1/notes/{id}/. At least one field is required.
func (h *Handler) patchNote(w http.ResponseWriter, r *http.Request) {
	h.saveNote(w, r, true)
}

func (h *Handler) saveNote(w http.ResponseWriter, r *http.Request, partial bool) {
	userID, noteID, ok := h.noteTarget(w, r)
	if !ok {
		return
	}

	var req models.NoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := h.services.NoteService.Update(r.Context(), models.NoteUpdate{
		ID:       noteID,
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		Partial:  partial,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

// deleteNote handles DELETE /api/v1/notes/{id}/ with 204 No Content.
func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.noteTarget(w, r)
	if !ok {
		return
	}

	if err := h.services.NoteService.Delete(r.Context(), userID, noteID); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteNoContent(w)
}

// noteTarget returns the authenticated user and the note id from the path.
// An id that does not fit int64 is answered with 404.
func (h *Handler) noteTarget(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return 0, 0, false
	}

	noteID, err := strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
	if err != nil || noteID <= 0 {
		writeErrorMessage(w, app.MsgNoteNotFound, http.StatusNotFound)
		return 0, 0, false
	}

	return userID, noteID, true
}

// queryUint parses an optional unsigned query parameter. Absent means 0.
func queryUint(r *http.Request, name string) (uint64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
