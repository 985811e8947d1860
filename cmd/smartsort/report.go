package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"smartsort/internal/journal"
	"smartsort/internal/organizer"
)

var (
	movedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	plannedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// moveReporter prints one line per decision as the organizer makes it.
type moveReporter struct {
	out      io.Writer
	colorize bool
}

func newMoveReporter(out io.Writer, colorize bool) *moveReporter {
	return &moveReporter{out: out, colorize: colorize}
}

func (r *moveReporter) Decision(d organizer.Decision) {
	fmt.Fprintln(r.out, r.format(d))
}

func (r *moveReporter) format(d organizer.Decision) string {
	name := filepath.Base(d.SourcePath)
	switch d.Outcome {
	case journal.OutcomeFailed:
		detail := ""
		if d.Err != nil {
			detail = " (" + d.Err.Error() + ")"
		}
		return r.style(failedStyle, "Failed:") + " " + name + " → " + d.Group + r.style(detailStyle, detail)
	case journal.OutcomePlanned:
		return r.style(plannedStyle, "Would move:") + " " + name + " → " + destinationLabel(d)
	default:
		return r.style(movedStyle, "Moved:") + " " + name + " → " + destinationLabel(d)
	}
}

func (r *moveReporter) style(s lipgloss.Style, text string) string {
	if !r.colorize || text == "" {
		return text
	}
	return s.Render(text)
}

func destinationLabel(d organizer.Decision) string {
	return d.Group + "/" + filepath.Base(d.Destination)
}
