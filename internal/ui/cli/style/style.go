package style

import "github.com/charmbracelet/lipgloss"

var (
	Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		Bold(true)

	Prompt = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	Answer = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#DDDDDD"})

	Status = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"})

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))
)
