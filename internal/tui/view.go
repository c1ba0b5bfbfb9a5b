package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	completedStyle = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	statusStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
)

func (m Model) View() string {
	var b strings.Builder

	title := "Tasks"
	if m.username != "" {
		title = fmt.Sprintf("Tasks · %s", m.username)
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  (filter: %s)", title, m.mgr.Filter())))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString("  loading...\n")
	case len(m.visible) == 0:
		b.WriteString("  no tasks\n")
	default:
		for i, t := range m.visible {
			marker := "  "
			if i == m.cursor {
				marker = cursorStyle.Render("> ")
			}
			box := "[ ]"
			line := t.Title
			if t.Completed {
				box = "[x]"
				line = completedStyle.Render(line)
			}
			fmt.Fprintf(&b, "%s%s %s\n", marker, box, line)
		}
	}
	b.WriteString("\n")

	if m.mode == modeAdd || m.mode == modeEdit {
		label := "add"
		if m.mode == modeEdit {
			label = "edit"
		}
		fmt.Fprintf(&b, "%s: %s\n\n", label, m.input.View())
	}

	done := 0
	for _, t := range m.mgr.Tasks() {
		if t.Completed {
			done++
		}
	}
	fmt.Fprintf(&b, "%s  %d/%d\n", m.prog.ViewAs(m.mgr.CompletionRatio()), done, m.mgr.Len())

	status := m.status
	if m.statusErr {
		status = errorStyle.Render(status)
	} else {
		status = statusStyle.Render(status)
	}
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("a add · enter toggle · e edit · d delete · f filter · r reload · q quit"))
	b.WriteString("\n")

	return b.String()
}
