package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/legform/internal/legs"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenForm    Screen = "form"
	ScreenSummary Screen = "summary"
)

// summaryKeyMap defines key bindings for the submitted-data modal
type summaryKeyMap struct {
	Close key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k summaryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Close, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k summaryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Close, k.Quit}}
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	CurrentScreen Screen

	Form FormModel

	// Legs shown in the summary modal
	Submitted []legs.LegRecord

	Width  int
	Height int

	Help        help.Model
	SummaryKeys summaryKeyMap
}

// NewAppModel creates the application model starting on the form screen
func NewAppModel(ctrl *legs.Controller, locations []string, freeText bool) AppModel {
	return AppModel{
		CurrentScreen: ScreenForm,
		Form:          NewFormModel(ctrl, locations, freeText),
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Help:          help.New(),
		SummaryKeys: summaryKeyMap{
			Close: key.NewBinding(
				key.WithKeys("enter", "esc", "c"),
				key.WithHelp("enter", "close"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
		},
	}
}

// Init implements tea.Model
func (m AppModel) Init() tea.Cmd {
	return m.Form.Init()
}

// Update implements tea.Model
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.Width = size.Width
		m.Height = size.Height
		m.Help.Width = size.Width
	}

	switch m.CurrentScreen {
	case ScreenSummary:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, m.SummaryKeys.Quit):
				return m, tea.Quit
			case key.Matches(keyMsg, m.SummaryKeys.Close):
				m.Form.Ctrl.Dismiss()
				m.Submitted = nil
				m.CurrentScreen = ScreenForm
				return m, nil
			}
			return m, nil
		}
		// Keep the form's size in sync underneath the modal
		updated, cmd := m.Form.Update(msg)
		m.Form = updated.(FormModel)
		return m, cmd

	default:
		updated, cmd := m.Form.Update(msg)
		m.Form = updated.(FormModel)
		if m.Form.Submitted != nil {
			m.Submitted = m.Form.Submitted
			m.Form.Submitted = nil
			m.CurrentScreen = ScreenSummary
		}
		return m, cmd
	}
}

// View implements tea.Model
func (m AppModel) View() string {
	if m.CurrentScreen == ScreenSummary {
		return RenderModal(m.renderSummaryModalContent(), m.Width, m.Height)
	}
	return m.Form.View()
}

func (m AppModel) renderSummaryModalContent() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Submitted Data:"))
	b.WriteString("\n\n")
	for i, leg := range m.Submitted {
		b.WriteString(legs.FormatLeg(i, leg))
		if i < len(m.Submitted)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(RenderButton("Close", true, true))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(SubtleColor).Render(m.Help.View(m.SummaryKeys)))
	return ModalStyle(m.Width).Render(b.String())
}
