package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-notes-keeper/internal/adapter"
	"github.com/MKhiriev/go-notes-keeper/internal/client"
	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.GetClientConfig()
	if err != nil {
		exit(fmt.Errorf("error getting configs: %w", err))
	}

	log := logger.NewFileLogger(cfg.LogFile, "go-notes-client", cfg.LogLevel)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		exit(fmt.Errorf("create server adapter: %w", err))
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	app := client.NewApp(serverAdapter, cfg.SessionFile, buildInfo.String(), log)

	if err = app.Run(); err != nil {
		log.Debug().Err(err).Msg("command failed")
		exit(err)
	}
}

func exit(err error) {
	_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
