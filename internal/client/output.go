package client

import (
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/MKhiriev/go-notes-keeper/models"
)

const previewLength = 40

// renderNotes prints notes as a table, one row per note.
func renderNotes(w io.Writer, notes []models.Note) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Title", "Content", "Updated"})

	for _, n := range notes {
		t.AppendRow(table.Row{n.ID, n.Title, preview(n.Content), formatTime(n.UpdatedAt)})
	}

	t.Render()
}

// renderNote prints every field of a single note.
func renderNote(w io.Writer, n models.Note) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendRows([]table.Row{
		{"ID", n.ID},
		{"Title", n.Title},
		{"Content", n.Content},
		{"Created", formatTime(n.CreatedAt)},
		{"Updated", formatTime(n.UpdatedAt)},
	})
	t.Render()
}

func renderUser(w io.Writer, u models.UserInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendRows([]table.Row{
		{"ID", u.UserID},
		{"Username", u.Username},
		{"Email", u.Email},
	})
	t.Render()
}

// preview collapses whitespace and cuts s to previewLength runes.
func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= previewLength {
		return s
	}
	return string(runes[:previewLength-3]) + "..."
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
