package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/internal/app"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/internal/validators"
	"github.com/MKhiriev/go-notes-keeper/models"
)

type errorMapping struct {
	status  int
	message string
}

// errorStatusMap is ordered: the first matching entry wins.
var errorStatusMap = []struct {
	target error
	errorMapping
}{
	{service.ErrCredentialsRequired, errorMapping{http.StatusBadRequest, app.MsgCredentialsRequired}},
	{service.ErrInvalidCredentials, errorMapping{http.StatusUnauthorized, app.MsgInvalidCredentials}},
	{service.ErrTokenIsExpiredOrInvalid, errorMapping{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{service.ErrNoteNotFound, errorMapping{http.StatusNotFound, app.MsgNoteNotFound}},
	{service.ErrUserNotFound, errorMapping{http.StatusNotFound, app.MsgUserNotFound}},

	{validators.ErrNoFieldsToUpdate, errorMapping{http.StatusBadRequest, app.MsgNoFieldsToUpdate}},
	{validators.ErrInvalidNoteID, errorMapping{http.StatusNotFound, app.MsgNoteNotFound}},
	{validators.ErrInvalidAuthorID, errorMapping{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},

	{ErrNoCredentials, errorMapping{http.StatusUnauthorized, app.MsgNotAuthenticated}},
	{ErrInvalidAuthorizationHeader, errorMapping{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{ErrNoUserInContext, errorMapping{http.StatusUnauthorized, app.MsgNotAuthenticated}},
}

func statusFromError(err error) int {
	return mappingFromError(err).status
}

func mappingFromError(err error) errorMapping {
	var verr *validators.ValidationError
	if errors.As(err, &verr) {
		return errorMapping{http.StatusBadRequest, app.MsgValidationFailed}
	}

	for _, m := range errorStatusMap {
		if errors.Is(err, m.target) {
			return m.errorMapping
		}
	}
	return errorMapping{http.StatusInternalServerError, app.MsgInternalServerError}
}

// writeError answers with the status and message mapped from err. Field
// level validation problems are attached as "details". Unexpected errors are
// logged; their text never reaches the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	m := mappingFromError(err)
	if m.status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Str("uri", r.RequestURI).Msg("unexpected error")
	}

	resp := models.ErrorResponse{Error: m.message}

	var verr *validators.ValidationError
	if errors.As(err, &verr) {
		resp.Details = verr.Fields
	}

	utils.WriteJSON(w, resp, m.status)
}

// writeValidationError answers 400 with msg and the field messages of verr.
func writeValidationError(w http.ResponseWriter, msg string, verr *validators.ValidationError) {
	utils.WriteJSON(w, models.ErrorResponse{Error: msg, Details: verr.Fields}, http.StatusBadRequest)
}

func writeErrorMessage(w http.ResponseWriter, msg string, status int) {
	utils.WriteJSON(w, models.ErrorResponse{Error: msg}, status)
}
