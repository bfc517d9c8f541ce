package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/doeshing/gitme-go/internal/domain"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	messageStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// Renderer writes styled output to a single writer.
type Renderer struct {
	out io.Writer
}

// NewRenderer returns a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Message prints a generated commit message with the files it covers.
func (r *Renderer) Message(message string, changes domain.FileChangeSet, provider, model string) {
	scope := fmt.Sprintf("%d file(s)", len(changes))
	if provider != "" {
		scope += fmt.Sprintf(" via %s", provider)
		if model != "" {
			scope += fmt.Sprintf(" (%s)", model)
		}
	}
	fmt.Fprintln(r.out, headerStyle.Render("Generated commit message:")+" "+dimStyle.Render(scope))
	fmt.Fprintln(r.out, messageStyle.Render(message))
}

// Info prints a plain status line.
func (r *Renderer) Info(format string, args ...interface{}) {
	fmt.Fprintln(r.out, fmt.Sprintf(format, args...))
}

// Success prints a confirmation line.
func (r *Renderer) Success(format string, args ...interface{}) {
	fmt.Fprintln(r.out, successStyle.Render(fmt.Sprintf(format, args...)))
}

// Warning prints a highlighted notice.
func (r *Renderer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(r.out, warningStyle.Render(fmt.Sprintf(format, args...)))
}

// History prints entries newest first with relative timestamps.
func (r *Renderer) History(entries []domain.HistoryEntry, showRepo bool) {
	if len(entries) == 0 {
		fmt.Fprintln(r.out, dimStyle.Render(msgNoHistory))
		return
	}
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		when := entry.Timestamp
		if t, ok := entry.Time(); ok {
			when = humanize.Time(t)
		}
		meta := []string{when, entry.ProviderName()}
		if model := entry.ModelName(); model != "" {
			meta = append(meta, model)
		}
		meta = append(meta, fmt.Sprintf("%d file(s)", len(entry.FileChanges)))
		if showRepo {
			meta = append(meta, entry.RepoPath)
		}
		fmt.Fprintln(r.out, headerStyle.Render(fmt.Sprintf("#%d", len(entries)-i))+" "+dimStyle.Render(strings.Join(meta, " | ")))
		fmt.Fprintln(r.out, indent(entry.Message, "  "))
		fmt.Fprintln(r.out)
	}
}

// DoctorReport prints one line per health check.
func (r *Renderer) DoctorReport(report domain.HealthReport) {
	for _, check := range report.Checks {
		label := fmt.Sprintf("[%s]", strings.ToUpper(string(check.Status)))
		switch check.Status {
		case domain.HealthOK:
			label = successStyle.Render(label)
		case domain.HealthWarn:
			label = warningStyle.Render(label)
		default:
			label = errorStyle.Render(label)
		}
		fmt.Fprintf(r.out, "%s %s - %s\n", label, check.Name, check.Details)
	}
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
