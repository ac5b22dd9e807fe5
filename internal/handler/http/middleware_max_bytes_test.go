package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-notes-keeper/internal/app"
	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithMaxBytes_RejectsOversizedBody(t *testing.T) {
	var readErr error
	handler := withMaxBytes(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 9)))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var maxErr *http.MaxBytesError
	require.ErrorAs(t, readErr, &maxErr)
	assert.Equal(t, int64(8), maxErr.Limit)
}

func TestWithMaxBytes_AllowsBodyWithinLimit(t *testing.T) {
	var body []byte
	handler := withMaxBytes(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("12345678"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "12345678", string(body))
}

func TestWithMaxBytes_DefaultLimit(t *testing.T) {
	var readErr error
	handler := withMaxBytes(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", config.DefaultMaxBodyBytes+1)))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Error(t, readErr)
}

// TestWithMaxBytes_HandlerAnswersInvalidJSON verifies the end to end result
// of an oversized body on a JSON endpoint.
func TestWithMaxBytes_HandlerAnswersInvalidJSON(t *testing.T) {
	notes := &mockNoteService{
		createFn: func(_ context.Context, n models.Note) (models.Note, error) { return n, nil },
	}
	h := NewHandler(&service.Services{AuthService: acceptingAuth(), NoteService: notes}, nil,
		config.Server{MaxBodyBytes: 32}, logger.Nop())

	body := `{"title":"t","content":"` + strings.Repeat("a", 64) + `"}`
	rec := serve(t, h.Init(), http.MethodPost, "/api/v1/notes/", body, bearer())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidJSON, decodeError(t, rec).Error)
}
