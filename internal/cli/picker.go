package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tosin2013/prompt-manager/pkg/models"
)

var (
	pickerTitleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	pickerSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	pickerHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// pickerModel is a minimal bubbletea list for choosing a task.
type pickerModel struct {
	tasks    []models.Task
	cursor   int
	selected string
	quit     bool
}

func newPickerModel(tasks []models.Task) pickerModel {
	return pickerModel{tasks: tasks}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.tasks[m.cursor].Title
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := pickerTitleStyle.Render("Select a task") + "\n"
	for i, task := range m.tasks {
		line := fmt.Sprintf("%-30s %-12s %s", truncate(task.Title, 30), task.Status, task.Priority)
		if i == m.cursor {
			s += pickerSelectedStyle.Render("> "+line) + "\n"
		} else {
			s += "  " + line + "\n"
		}
	}
	s += pickerHelpStyle.Render("up/down: move | enter: select | q: cancel")
	return s
}

// pickTask runs the interactive picker and returns the chosen title, or
// "" when the user cancels.
func pickTask(tasks []models.Task) (string, error) {
	p := tea.NewProgram(newPickerModel(tasks))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running picker: %w", err)
	}
	m, ok := final.(pickerModel)
	if !ok || m.quit {
		return "", nil
	}
	return m.selected, nil
}
