package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 2)

	bannerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("87"))

	bannerItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	bannerMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))
)

// Banner renders the startup command list. Blank lines are dropped.
func Banner(title string, commands []string) string {
	lines := make([]string, 0, len(commands)+2)
	if title = strings.TrimSpace(title); title != "" {
		lines = append(lines, bannerTitleStyle.Render(title), "")
	}
	for _, command := range commands {
		command = strings.TrimSpace(command)
		if command == "" {
			continue
		}
		lines = append(lines, bannerMarkStyle.Render("•")+" "+bannerItemStyle.Render(command))
	}
	if len(lines) == 0 {
		return ""
	}
	return bannerCardStyle.Render(strings.Join(lines, "\n"))
}

// PlainBanner is the unstyled variant for non-interactive output.
func PlainBanner(title string, commands []string) string {
	lines := make([]string, 0, len(commands)+1)
	if title = strings.TrimSpace(title); title != "" {
		lines = append(lines, title)
	}
	for _, command := range commands {
		if command = strings.TrimSpace(command); command != "" {
			lines = append(lines, "  "+command)
		}
	}
	return strings.Join(lines, "\n")
}
