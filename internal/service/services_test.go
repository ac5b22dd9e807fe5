package service

import (
	"testing"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServices_WiresEveryService(t *testing.T) {
	cfg := &config.StructuredConfig{App: testAppConfig()}

	services, err := NewServices(&store.Storages{}, cfg, logger.Nop())
	require.NoError(t, err)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.AppInfoService)
	assert.IsType(t, &NoteValidationService{}, services.NoteService)
}

func TestNewServices_MissingVersion(t *testing.T) {
	cfg := &config.StructuredConfig{App: config.App{}}

	_, err := NewServices(&store.Storages{}, cfg, logger.Nop())
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}
