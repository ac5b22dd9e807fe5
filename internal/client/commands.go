package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MKhiriev/go-notes-keeper/models"
)

func (a *App) registerCommand() *cobra.Command {
	var req models.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lines := bufio.NewReader(cmd.InOrStdin())
			if req.Password == "" {
				password, err := prompt(cmd, lines, "Password: ")
				if err != nil {
					return err
				}
				confirm, err := prompt(cmd, lines, "Repeat password: ")
				if err != nil {
					return err
				}
				req.Password, req.PasswordConfirm = password, confirm
			}
			if req.PasswordConfirm == "" {
				req.PasswordConfirm = req.Password
			}
			if req.Password != req.PasswordConfirm {
				return ErrPasswordMismatch
			}

			user, err := a.adapter.Register(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			a.printf(cmd, "Registered and logged in as %s (id %d)\n", user.Username, user.UserID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "e-mail address")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password, prompted when omitted")
	cmd.Flags().StringVar(&req.PasswordConfirm, "password-confirm", "", "repeated password, defaults to --password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	var creds models.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if creds.Password == "" {
				password, err := prompt(cmd, bufio.NewReader(cmd.InOrStdin()), "Password: ")
				if err != nil {
					return err
				}
				creds.Password = password
			}

			user, err := a.adapter.Login(cmd.Context(), creds)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			a.printf(cmd, "Logged in as %s\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "password, prompted when omitted")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the refresh token and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.adapter.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			a.printf(cmd, "Logged out\n")
			return nil
		},
	}
}

func (a *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.adapter.Profile(cmd.Context())
			if err != nil {
				return fmt.Errorf("profile: %w", err)
			}
			renderUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.printf(cmd, "%s\n", a.version)

			serverVersion, err := a.adapter.ServerVersion(cmd.Context())
			if err != nil {
				return fmt.Errorf("server version: %w", err)
			}
			a.printf(cmd, "Server version: %s\n", serverVersion)
			return nil
		},
	}
}

func (a *App) notesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage your notes",
	}

	cmd.AddCommand(
		a.listNotesCommand(),
		a.showNoteCommand(),
		a.createNoteCommand(),
		a.updateNoteCommand(),
		a.deleteNoteCommand(),
	)
	return cmd
}

func (a *App) listNotesCommand() *cobra.Command {
	var limit, offset uint64

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			notes, err := a.adapter.ListNotes(cmd.Context(), limit, offset)
			if err != nil {
				return fmt.Errorf("list notes: %w", err)
			}
			if len(notes) == 0 {
				a.printf(cmd, "No notes\n")
				return nil
			}
			renderNotes(cmd.OutOrStdout(), notes)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&limit, "limit", 0, "maximum number of notes, 0 for all")
	cmd.Flags().Uint64Var(&offset, "offset", 0, "number of notes to skip")

	return cmd
}

func (a *App) showNoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, err := parseNoteID(args[0])
			if err != nil {
				return err
			}

			note, err := a.adapter.GetNote(cmd.Context(), noteID)
			if err != nil {
				return fmt.Errorf("get note %d: %w", noteID, err)
			}
			renderNote(cmd.OutOrStdout(), note)
			return nil
		},
	}
}

func (a *App) createNoteCommand() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Long:  "Create a note. Pass --content - to read the content from standard input.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := readContent(cmd, content)
			if err != nil {
				return err
			}

			note, err := a.adapter.CreateNote(cmd.Context(), models.NoteRequest{Title: &title, Content: &body})
			if err != nil {
				return fmt.Errorf("create note: %w", err)
			}
			a.printf(cmd, "Created note %d\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "note title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "note content")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func (a *App) updateNoteCommand() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the title or content of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, err := parseNoteID(args[0])
			if err != nil {
				return err
			}

			var req models.NoteRequest
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("content") {
				body, err := readContent(cmd, content)
				if err != nil {
					return err
				}
				req.Content = &body
			}
			if req.Title == nil && req.Content == nil {
				return ErrNothingToUpdate
			}

			note, err := a.adapter.UpdateNote(cmd.Context(), noteID, req)
			if err != nil {
				return fmt.Errorf("update note %d: %w", noteID, err)
			}
			a.printf(cmd, "Updated note %d\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "new content, - reads standard input")

	return cmd
}

func (a *App) deleteNoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, err := parseNoteID(args[0])
			if err != nil {
				return err
			}

			if err = a.adapter.DeleteNote(cmd.Context(), noteID); err != nil {
				return fmt.Errorf("delete note %d: %w", noteID, err)
			}
			a.printf(cmd, "Deleted note %d\n", noteID)
			return nil
		},
	}
}

func parseNoteID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNoteID, arg)
	}
	return id, nil
}

// readContent returns value, or all of standard input when value is "-".
func readContent(cmd *cobra.Command, value string) (string, error) {
	if value != "-" {
		return value, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// prompt writes label to stderr and reads a password. A terminal on stdin
// is read with echo disabled; anything else is read one line at a time
// from lines.
func prompt(cmd *cobra.Command, lines *bufio.Reader, label string) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), label)

	if fd, ok := terminalFd(cmd.InOrStdin()); ok {
		password, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		if len(password) == 0 {
			return "", ErrEmptyPasswordLine
		}
		return string(password), nil
	}

	line, err := lines.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", ErrEmptyPasswordLine
	}
	return line, nil
}

// terminalFd returns the descriptor of in when it is an interactive terminal.
func terminalFd(in io.Reader) (int, bool) {
	f, ok := in.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}
