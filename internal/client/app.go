// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-notes-keeper/internal/adapter"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
)

// App is the notes command-line client. Each invocation restores the saved
// session, runs one command and persists whatever tokens the adapter holds
// afterwards, so refreshed tokens survive between runs.
type App struct {
	adapter     adapter.ServerAdapter
	sessionFile string
	version     string
	logger      *logger.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewApp creates the client. version is the client build description
// printed by the version command.
func NewApp(serverAdapter adapter.ServerAdapter, sessionFile, version string, logger *logger.Logger) *App {
	return &App{
		adapter:     serverAdapter,
		sessionFile: sessionFile,
		version:     version,
		logger:      logger,
		in:          os.Stdin,
		out:         os.Stdout,
		errOut:      os.Stderr,
	}
}

// SetIO replaces the standard streams, mostly for tests.
func (a *App) SetIO(in io.Reader, out, errOut io.Writer) {
	a.in, a.out, a.errOut = in, out, errOut
}

// Run executes the command named by the process arguments.
func (a *App) Run() error {
	return a.Execute(context.Background(), os.Args[1:])
}

// Execute runs a single command line.
func (a *App) Execute(ctx context.Context, args []string) error {
	saved, err := loadSession(a.sessionFile)
	if err != nil {
		return err
	}
	a.adapter.SetTokens(saved.Access, saved.Refresh)

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	runErr := root.ExecuteContext(ctx)

	if err = a.syncSession(saved); err != nil {
		a.logger.Err(err).Msg("failed to persist session")
		return errors.Join(runErr, err)
	}
	return runErr
}

// syncSession writes the adapter's tokens back when they differ from saved.
func (a *App) syncSession(saved session) error {
	access, refresh := a.adapter.Tokens()
	current := session{Access: access, Refresh: refresh}
	if current == saved {
		return nil
	}
	if current.empty() {
		return removeSession(a.sessionFile)
	}
	return saveSession(a.sessionFile, current)
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "notes",
		Short:         "Command-line client for the notes server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger.Debug().Str("command", cmd.CommandPath()).Msg("running command")
		},
	}

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.versionCommand(),
		a.notesCommand(),
	)
	return root
}

func (a *App) printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
