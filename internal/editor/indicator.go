package editor

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atinylittleshell/ghosttext/internal/suggest"
)

// Indicator shows the suggestion controller's request status.
type Indicator struct {
	spinner spinner.Model
	status  suggest.Status
	label   string
}

// NewIndicator creates a new indicator with the given label.
func NewIndicator(label string) Indicator {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Indicator{
		spinner: s,
		status:  suggest.StatusIdle,
		label:   label,
	}
}

// SetStatus updates the indicator status.
func (i *Indicator) SetStatus(status suggest.Status) {
	i.status = status
}

// Status returns the current status.
func (i Indicator) Status() suggest.Status {
	return i.status
}

// Tick starts the spinner animation.
func (i Indicator) Tick() tea.Msg {
	return i.spinner.Tick()
}

// Update advances the spinner and returns the command for its next frame.
func (i *Indicator) Update(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	i.spinner, cmd = i.spinner.Update(msg)
	return cmd
}

// View renders the indicator.
func (i Indicator) View() string {
	readyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	idleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	var statusIcon string
	switch i.status {
	case suggest.StatusRequesting:
		statusIcon = i.spinner.View()
	case suggest.StatusReady:
		statusIcon = readyStyle.Render("✓")
	case suggest.StatusError:
		statusIcon = errorStyle.Render("✗")
	default:
		statusIcon = idleStyle.Render("○")
	}

	return labelStyle.Render(i.label+":") + statusIcon
}
