package service

import (
	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
)

type Services struct {
	AuthService    AuthService
	NoteService    NoteService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	noteService := NewNoteValidationService().Wrap(NewNoteService(storages.NoteRepository, logger))

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, storages.TokenBlacklist, cfg.App, logger),
		NoteService:    noteService,
		AppInfoService: appInfoService,
	}, nil
}
