package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/go-resty/resty/v2"
)

// expirySkew absorbs clock drift between client and server.
const expirySkew = 5 * time.Second

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu      sync.RWMutex
	access  string
	refresh string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.BaseURL and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	timeout := adapterCfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultClientRequestTimeout
	}

	return &httpServerAdapter{client: utils.NewHTTPClient(baseURL, timeout), logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetTokens implements [ServerAdapter].
func (h *httpServerAdapter) SetTokens(access, refresh string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.access = strings.TrimSpace(access)
	h.refresh = strings.TrimSpace(refresh)
}

// Tokens implements [ServerAdapter].
func (h *httpServerAdapter) Tokens() (string, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.access, h.refresh
}

// Register implements [ServerAdapter]. It POSTs to /api/v1/register/ and
// stores the token pair from the response body.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.UserInfo, error) {
	return h.obtainTokens(ctx, "/api/v1/register/", req)
}

// Login implements [ServerAdapter]. It POSTs to /api/v1/login/.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.UserInfo, error) {
	return h.obtainTokens(ctx, "/api/v1/login/", creds)
}

func (h *httpServerAdapter) obtainTokens(ctx context.Context, path string, body any) (models.UserInfo, error) {
	var result models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post(path)
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserInfo{}, err
	}
	if result.Access == "" || result.Refresh == "" {
		return models.UserInfo{}, fmt.Errorf("%s: response carries no tokens", path)
	}

	h.SetTokens(result.Access, result.Refresh)

	if result.User == nil {
		return models.UserInfo{}, nil
	}
	return *result.User, nil
}

// Refresh implements [ServerAdapter]. A rotated refresh token in the
// response replaces the stored one.
func (h *httpServerAdapter) Refresh(ctx context.Context) error {
	_, refresh := h.Tokens()
	if refresh == "" {
		return ErrNotLoggedIn
	}

	var result models.TokenResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RefreshRequest{Refresh: refresh}).
		SetResult(&result).
		Post("/api/token/refresh/")
	if err != nil {
		return fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if result.Refresh != "" {
		refresh = result.Refresh
	}
	h.SetTokens(result.Access, refresh)

	h.logger.Debug().Msg("access token refreshed")
	return nil
}

// Logout implements [ServerAdapter]. Tokens are forgotten even when the
// server rejects the refresh token, since it cannot be used anyway.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	_, refresh := h.Tokens()
	if refresh == "" {
		return ErrNotLoggedIn
	}

	resp, err := h.authorized(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(models.RefreshRequest{Refresh: refresh}).Post("/api/v1/logout/")
	})
	if err != nil && !errors.Is(err, ErrBadRequest) && !errors.Is(err, ErrUnauthorized) {
		return err
	}

	h.SetTokens("", "")
	if err != nil {
		h.logger.Debug().Err(err).Int("status", statusOf(resp)).Msg("server rejected logout")
	}
	return nil
}

// Profile implements [ServerAdapter].
func (h *httpServerAdapter) Profile(ctx context.Context) (models.UserInfo, error) {
	var user models.UserInfo

	_, err := h.authorized(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&user).Get("/api/v1/profile/")
	})
	if err != nil {
		return models.UserInfo{}, err
	}

	return user, nil
}

// ListNotes implements [ServerAdapter].
func (h *httpServerAdapter) ListNotes(ctx context.Context, limit, offset uint64) ([]models.Note, error) {
	var notes []models.Note

	_, err := h.authorized(ctx, func(r *resty.Request) (*resty.Response, error) {
		if limit > 0 {
			r.SetQueryParam("limit", strconv.FormatUint(limit, 10))
		}
		if offset > 0 {
			r.SetQueryParam("offset", strconv.FormatUint(offset, 10))
		}
		return r.SetResult(&notes).Get("/api/v1/notes/")
	})
	if err != nil {
		return nil, err
	}

	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// GetNote implements [ServerAdapter].
func (h *httpServerAdapter) GetNote(ctx context.Context, noteID int64) (models.Note, error) {
	var note models.Note

	_, err := h.authorized(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&note).Get(notePath(noteID))
	})
	if err != nil {
		return models.Note{}, err
	}

	return note, nil
}

// CreateNote implements [ServerAdapter].
func (h *httpServerAdapter) CreateNote(ctx context.Context, req models.NoteRequest) (models.Note, error) {
	var note models.Note

	_, err := h.authorized(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).SetResult(&note).Post("/api/v1/notes/")
	})
	if err != nil {
		return models.Note{}, err
	}

	return note, nil
}

// UpdateNote implements [ServerAdapter] with PATCH, so nil fields of req are
// left unchanged.
func (h *httpServerAdapter) UpdateNote(ctx context.Context, noteID int64, req models.NoteRequest) (models.Note, error) {
	var note models.Note

	_, err := h.authorized(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).SetResult(&note).Patch(notePath(noteID))
	})
	if err != nil {
		return models.Note{}, err
	}

	return note, nil
}

// DeleteNote implements [ServerAdapter].
func (h *httpServerAdapter) DeleteNote(ctx context.Context, noteID int64) error {
	_, err := h.authorized(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.Delete(notePath(noteID))
	})
	return err
}

// ServerVersion implements [ServerAdapter]. It needs no authentication.
func (h *httpServerAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

// authorized sends a request built by send with the access token attached.
// An access token that has already expired is refreshed up front. A 401
// answer triggers one refresh and one retry when a refresh token is held.
func (h *httpServerAdapter) authorized(ctx context.Context, send func(r *resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	access, refresh := h.Tokens()
	if access == "" && refresh == "" {
		return nil, ErrNotLoggedIn
	}

	if refresh != "" && accessExpired(access, time.Now()) {
		if err := h.Refresh(ctx); err != nil {
			return nil, fmt.Errorf("refresh expired access token: %w", err)
		}
		return h.sendAuthorized(ctx, send)
	}

	resp, err := h.sendAuthorized(ctx, send)
	if !errors.Is(err, ErrUnauthorized) || refresh == "" {
		return resp, err
	}

	if refreshErr := h.Refresh(ctx); refreshErr != nil {
		h.logger.Debug().Err(refreshErr).Msg("token refresh failed")
		return resp, err
	}

	return h.sendAuthorized(ctx, send)
}

// accessExpired reports whether access is a JWT whose exp lies within
// expirySkew of now. Tokens that cannot be decoded are left to the server.
func accessExpired(access string, now time.Time) bool {
	if access == "" {
		return true
	}

	claims, err := utils.ParseUnverifiedClaims(access)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return !now.Add(expirySkew).Before(claims.ExpiresAt.Time)
}

func (h *httpServerAdapter) sendAuthorized(ctx context.Context, send func(r *resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	access, _ := h.Tokens()

	req := h.client.R().SetContext(ctx)
	if access != "" {
		req.SetAuthToken(access)
	}

	resp, err := send(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return resp, err
	}

	return resp, nil
}

func notePath(noteID int64) string {
	return "/api/v1/notes/" + strconv.FormatInt(noteID, 10) + "/"
}

func statusOf(resp *resty.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode()
}
