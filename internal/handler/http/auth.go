package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/internal/app"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/internal/validators"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// register handles POST /api/register/. The password confirmation is
// mandatory; on success the session cookie is set.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	user, pair, ok := h.registerUser(w, r, true)
	if !ok {
		return
	}

	h.setSessionCookie(w, pair.Access)
	writeTokenPair(w, pair, &user, http.StatusOK)
}

// registerV1 handles POST /api/v1/register/. The confirmation is optional.
func (h *Handler) registerV1(w http.ResponseWriter, r *http.Request) {
	user, pair, ok := h.registerUser(w, r, false)
	if !ok {
		return
	}

	writeTokenPair(w, pair, &user, http.StatusCreated)
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request, confirmationRequired bool) (models.User, models.TokenPair, bool) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return models.User{}, models.TokenPair{}, false
	}
	req.ConfirmationRequired = confirmationRequired

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		var verr *validators.ValidationError
		if errors.As(err, &verr) {
			log.Debug().Strs("fields", fieldNames(verr)).Msg("registration rejected")
			writeValidationError(w, app.MsgRegistrationFailed, verr)
			return models.User{}, models.TokenPair{}, false
		}
		log.Err(err).Msg("unexpected error occurred during user registration")
		writeError(w, r, err)
		return models.User{}, models.TokenPair{}, false
	}

	pair, err := h.services.AuthService.CreateTokenPair(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeError(w, r, err)
		return models.User{}, models.TokenPair{}, false
	}

	log.Info().Int64("id", registeredUser.UserID).Msg("user registered")
	return registeredUser, pair, true
}

// login handles POST /api/login/ and sets the session cookie.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	user, pair, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	h.setSessionCookie(w, pair.Access)
	writeTokenPair(w, pair, &user, http.StatusOK)
}

// loginV1 handles POST /api/v1/login/.
func (h *Handler) loginV1(w http.ResponseWriter, r *http.Request) {
	user, pair, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	writeTokenPair(w, pair, &user, http.StatusOK)
}

// obtainTokenPair handles POST /api/token/. The body carries no user.
func (h *Handler) obtainTokenPair(w http.ResponseWriter, r *http.Request) {
	_, pair, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	writeTokenPair(w, pair, nil, http.StatusOK)
}

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) (models.User, models.TokenPair, bool) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if !decodeJSON(w, r, &creds) {
		return models.User{}, models.TokenPair{}, false
	}

	foundUser, err := h.services.AuthService.Login(ctx, creds)
	if err != nil {
		log.Debug().Err(err).Str("username", creds.Username).Msg("login rejected")
		writeError(w, r, err)
		return models.User{}, models.TokenPair{}, false
	}

	pair, err := h.services.AuthService.CreateTokenPair(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeError(w, r, err)
		return models.User{}, models.TokenPair{}, false
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")
	return foundUser, pair, true
}

// refreshToken handles POST /api/token/refresh/. A session cookie, when
// present, is updated with the new access token.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Refresh == "" {
		writeErrorMessage(w, app.MsgRefreshTokenRequired, http.StatusBadRequest)
		return
	}

	pair, err := h.services.AuthService.Refresh(ctx, req.Refresh)
	if err != nil {
		if errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
			log.Debug().Err(err).Msg("refresh rejected")
			writeErrorMessage(w, app.MsgInvalidRefreshToken, http.StatusUnauthorized)
			return
		}
		writeError(w, r, err)
		return
	}

	if _, err = r.Cookie(sessionCookieName); err == nil {
		h.setSessionCookie(w, pair.Access)
	}
	writeTokenPair(w, pair, nil, http.StatusOK)
}

// logout handles POST /api/logout/.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.revokeRefreshToken(w, r)
}

// logoutV1 handles POST /api/v1/logout/. It requires authentication.
func (h *Handler) logoutV1(w http.ResponseWriter, r *http.Request) {
	h.revokeRefreshToken(w, r)
}

// revokeRefreshToken blacklists the refresh token from the body and clears
// the session cookie.
func (h *Handler) revokeRefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Refresh == "" {
		writeErrorMessage(w, app.MsgRefreshTokenRequired, http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.Logout(ctx, req.Refresh); err != nil {
		if errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
			log.Debug().Err(err).Msg("logout with invalid token")
			writeErrorMessage(w, app.MsgInvalidToken, http.StatusBadRequest)
			return
		}
		writeError(w, r, err)
		return
	}

	h.clearSessionCookie(w)
	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgLogoutSuccessful}, http.StatusOK)
}

// profile handles GET /api/v1/profile/.
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// decodeJSON decodes the request body into v. On failure it answers 400 and
// returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("Invalid JSON was passed")
		writeErrorMessage(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return false
	}
	return true
}

func writeTokenPair(w http.ResponseWriter, pair models.TokenPair, user *models.User, status int) {
	resp := models.TokenResponse{
		Access:  pair.Access.SignedString,
		Refresh: pair.Refresh.SignedString,
	}
	if user != nil {
		info := user.Public()
		resp.User = &info
	}

	utils.WriteJSON(w, resp, status)
}

func fieldNames(verr *validators.ValidationError) []string {
	names := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		names = append(names, f)
	}
	return names
}
