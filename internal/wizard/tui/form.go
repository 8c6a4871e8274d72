package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/legform/internal/legs"
)

type rowKind int

const (
	rowField rowKind = iota
	rowRemove
	rowAdd
	rowSubmit
)

// row is one focusable line of the form
type row struct {
	kind  rowKind
	leg   int
	field legs.Field
}

// formKeyMap defines key bindings for the form in normal mode
type formKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Tab    key.Binding
	Select key.Binding
	Add    key.Binding
	Remove key.Binding
	Submit key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Add, k.Submit, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab, k.Select},
		{k.Add, k.Remove, k.Submit},
		{k.Help, k.Quit},
	}
}

// editKeyMap defines key bindings while a field is expanded for editing
type editKeyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Today   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Confirm, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k editKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Today, k.Confirm, k.Cancel}}
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next leg"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "edit/press"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add leg"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove leg"),
		),
		Submit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "submit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func newEditKeyMap() editKeyMap {
	return editKeyMap{
		Prev: key.NewBinding(
			key.WithKeys("up", "left"),
			key.WithHelp("↑", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "right"),
			key.WithHelp("↓", "next"),
		),
		Today: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "today"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// FormModel is the itinerary form screen. It owns no form state of its own;
// every change goes through the controller and the view is rebuilt from it.
type FormModel struct {
	Ctrl      *legs.Controller
	Locations []string
	FreeText  bool

	Cursor int

	// Inline editing state
	Editing      bool
	EditLeg      int
	EditField    legs.Field
	Input        textinput.Model
	PickerCursor int

	// Set by a successful submit; consumed by the app model
	Submitted []legs.LegRecord

	StatusMessage string
	ShowingHelp   bool

	Width  int
	Height int

	Help     help.Model
	Keys     formKeyMap
	EditKeys editKeyMap

	now func() time.Time
}

// NewFormModel creates the form screen over an existing controller
func NewFormModel(ctrl *legs.Controller, locations []string, freeText bool) FormModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 64
	ti.Width = 32

	now := ctrl.Options().Now
	if now == nil {
		now = time.Now
	}

	return FormModel{
		Ctrl:      ctrl,
		Locations: locations,
		FreeText:  freeText,
		Input:     ti,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Help:      help.New(),
		Keys:      newFormKeyMap(),
		EditKeys:  newEditKeyMap(),
		now:       now,
	}
}

// Init implements tea.Model
func (m FormModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.ShowingHelp {
			switch msg.String() {
			case "?", "esc", "enter", "q":
				m.ShowingHelp = false
			case "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}
		if m.Editing {
			return m.updateEditing(msg)
		}
		return m.updateNormalMode(msg)
	}

	if m.Editing && m.usesTextInput() {
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m FormModel) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.StatusMessage = ""
	rows := m.rows()

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Up):
		m.Cursor--
		if m.Cursor < 0 {
			m.Cursor = len(rows) - 1
		}

	case key.Matches(msg, m.Keys.Down):
		m.Cursor++
		if m.Cursor >= len(rows) {
			m.Cursor = 0
		}

	case key.Matches(msg, m.Keys.Tab):
		m.Cursor = m.nextLegStart(rows)

	case key.Matches(msg, m.Keys.Select):
		return m.activate(rows[m.Cursor])

	case key.Matches(msg, m.Keys.Add):
		m = m.addLeg()

	case key.Matches(msg, m.Keys.Remove):
		r := rows[m.Cursor]
		if r.kind == rowField || r.kind == rowRemove {
			m = m.removeLeg(r.leg)
		}

	case key.Matches(msg, m.Keys.Submit):
		m = m.submit()

	case key.Matches(msg, m.Keys.Help):
		m.ShowingHelp = true
	}

	return m, nil
}

// nextLegStart returns the cursor position of the first field of the next leg,
// wrapping to the action buttons and then back to the first leg.
func (m FormModel) nextLegStart(rows []row) int {
	current := rows[m.Cursor]
	for i := m.Cursor + 1; i < len(rows); i++ {
		r := rows[i]
		if r.kind == rowField && r.leg != current.leg && r.field == legs.FieldDepartureLocation {
			return i
		}
		if r.kind == rowAdd && current.kind != rowAdd {
			return i
		}
	}
	return 0
}

func (m FormModel) activate(r row) (tea.Model, tea.Cmd) {
	switch r.kind {
	case rowField:
		return m.startEditing(r.leg, r.field)
	case rowRemove:
		m = m.removeLeg(r.leg)
	case rowAdd:
		m = m.addLeg()
	case rowSubmit:
		m = m.submit()
	}
	return m, nil
}

func (m FormModel) addLeg() FormModel {
	if err := m.Ctrl.AppendDefault(); err != nil {
		m.StatusMessage = fmt.Sprintf("Cannot add leg: %v", err)
		return m
	}
	// Land on the new leg's first field
	for i, r := range m.rows() {
		if r.kind == rowField && r.leg == m.Ctrl.Len()-1 {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m FormModel) removeLeg(index int) FormModel {
	if err := m.Ctrl.Remove(index); err != nil {
		m.StatusMessage = fmt.Sprintf("Cannot remove leg %d: %v", index+1, err)
		return m
	}
	if n := len(m.rows()); m.Cursor >= n {
		m.Cursor = n - 1
	}
	return m
}

func (m FormModel) submit() FormModel {
	snapshot, err := m.Ctrl.Submit()
	if err != nil {
		var subErr *legs.SubmitError
		if errors.As(err, &subErr) {
			m.StatusMessage = fmt.Sprintf("Please fix %d error(s) before submitting", len(subErr.Errors))
		} else {
			m.StatusMessage = err.Error()
		}
		return m
	}
	m.Submitted = snapshot
	return m
}

// usesTextInput reports whether the field being edited takes typed input
// rather than a pick from the location list.
func (m FormModel) usesTextInput() bool {
	return !m.EditField.IsLocation() || m.FreeText
}

// pickerOptions returns the location choices, led by the empty placeholder
func (m FormModel) pickerOptions() []string {
	return append([]string{""}, m.Locations...)
}

func (m FormModel) startEditing(index int, f legs.Field) (tea.Model, tea.Cmd) {
	leg, ok := m.Ctrl.Leg(index)
	if !ok {
		return m, nil
	}
	value := leg.Get(f)

	m.Editing = true
	m.EditLeg = index
	m.EditField = f

	if !m.usesTextInput() {
		m.PickerCursor = 0
		for i, opt := range m.pickerOptions() {
			if opt == value {
				m.PickerCursor = i
				break
			}
		}
		return m, nil
	}

	m.Input.SetValue(value)
	m.Input.Placeholder = placeholderFor(f)
	m.Input.CursorEnd()
	cmd := m.Input.Focus()
	return m, cmd
}

func (m FormModel) stopEditing() FormModel {
	m.Editing = false
	m.Input.Blur()
	m.Input.SetValue("")
	return m
}

func (m FormModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.EditKeys.Cancel):
		// Leaving a field marks it touched even when nothing was committed
		_ = m.Ctrl.Blur(m.EditLeg, m.EditField)
		return m.stopEditing(), nil

	case key.Matches(msg, m.EditKeys.Confirm):
		value := m.Input.Value()
		if !m.usesTextInput() {
			value = m.pickerOptions()[m.PickerCursor]
		}
		if err := m.Ctrl.SetField(m.EditLeg, m.EditField, value); err != nil {
			m.StatusMessage = err.Error()
			return m, nil
		}
		return m.stopEditing(), nil
	}

	if !m.usesTextInput() {
		options := m.pickerOptions()
		switch {
		case key.Matches(msg, m.EditKeys.Prev):
			m.PickerCursor--
			if m.PickerCursor < 0 {
				m.PickerCursor = len(options) - 1
			}
		case key.Matches(msg, m.EditKeys.Next):
			m.PickerCursor++
			if m.PickerCursor >= len(options) {
				m.PickerCursor = 0
			}
		}
		return m, nil
	}

	if m.EditField == legs.FieldDepartureDate && key.Matches(msg, m.EditKeys.Today) {
		m.Input.SetValue(legs.FormatDate(m.now()))
		m.Input.CursorEnd()
		return m, nil
	}

	previous := m.Input.Value()
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if !legs.AcceptsInput(m.EditField, m.Input.Value()) {
		m.Input.SetValue(previous)
		m.Input.CursorEnd()
		m.StatusMessage = m.EditField.Label() + " must be a positive whole number"
	} else {
		m.StatusMessage = ""
	}
	return m, cmd
}

func placeholderFor(f legs.Field) string {
	switch f {
	case legs.FieldDepartureDate:
		return "YYYY-MM-DD"
	case legs.FieldPassengers:
		return "Number of passengers"
	default:
		return "Enter " + strings.ToLower(f.Label())
	}
}

// rows lays out the focusable lines of the form in display order
func (m FormModel) rows() []row {
	var rows []row
	for i := 0; i < m.Ctrl.Len(); i++ {
		for _, f := range legs.Fields {
			rows = append(rows, row{kind: rowField, leg: i, field: f})
		}
		if m.Ctrl.CanRemove(i) {
			rows = append(rows, row{kind: rowRemove, leg: i})
		}
	}
	return append(rows, row{kind: rowAdd}, row{kind: rowSubmit})
}

// View implements tea.Model
func (m FormModel) View() string {
	if m.ShowingHelp {
		return RenderModal(m.renderHelpModalContent(), m.Width, m.Height)
	}
	return RenderApplicationContainer(m.renderContent(), m.footerText(), m.Width, m.Height)
}

func (m FormModel) footerText() string {
	if m.Editing {
		return m.Help.View(m.EditKeys)
	}
	return m.Help.View(m.Keys)
}

func (m FormModel) renderContent() string {
	var b strings.Builder
	rows := m.rows()
	result := m.Ctrl.Result()

	b.WriteString(TitleStyle.Render("Multi-Leg Flight Itinerary"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d of %d legs", m.Ctrl.Len(), legs.MaxLegs)))
	b.WriteString("\n\n")

	for i, r := range rows {
		selected := i == m.Cursor
		switch r.kind {
		case rowField:
			if r.field == legs.FieldDepartureLocation {
				if r.leg > 0 {
					b.WriteString("\n")
				}
				b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Leg %d", r.leg+1)))
				b.WriteString("\n")
			}
			b.WriteString(m.renderField(r, selected))
			b.WriteString("\n")
			if msg := result.VisibleError(r.leg, r.field); msg != "" {
				b.WriteString(FieldErrorStyle.Render(msg))
				b.WriteString("\n")
			}
		case rowRemove:
			b.WriteString(RenderButton("Remove Leg", selected, true))
			b.WriteString("\n")
		case rowAdd:
			b.WriteString("\n")
			if result.ListError != "" {
				b.WriteString(ListErrorStyle.Render(result.ListError))
				b.WriteString("\n\n")
			}
			label := "Add Leg"
			if !m.Ctrl.CanAppend() {
				label = fmt.Sprintf("Add Leg (maximum %d reached)", legs.MaxLegs)
			}
			b.WriteString(RenderButton(label, selected, m.Ctrl.CanAppend()))
			b.WriteString("\n")
		case rowSubmit:
			b.WriteString(RenderButton("Submit", selected, true))
			b.WriteString("\n")
		}
	}

	if m.StatusMessage != "" {
		b.WriteString("\n")
		b.WriteString(StatusStyle.Render(m.StatusMessage))
		b.WriteString("\n")
	}

	return b.String()
}

// renderField renders one field line, expanded in place when it is being edited
func (m FormModel) renderField(r row, selected bool) string {
	prefix := "  "
	if selected {
		prefix = "→ "
	}

	labelStyle := lipgloss.NewStyle().Width(labelWidth)
	valueStyle := lipgloss.NewStyle()
	if selected {
		labelStyle = labelStyle.Foreground(HighlightColor).Bold(true)
		valueStyle = valueStyle.Foreground(HighlightColor)
	}

	leg, _ := m.Ctrl.Leg(r.leg)
	value := leg.Get(r.field)
	if r.field == legs.FieldPassengers {
		value = legs.DisplayPassengers(value)
	}

	line := prefix + labelStyle.Render(r.field.Label()+":")

	if m.Editing && m.EditLeg == r.leg && m.EditField == r.field {
		if m.usesTextInput() {
			return line + "[" + m.Input.View() + "]"
		}
		return line + "\n" + m.renderPicker()
	}

	if value == "" {
		return line + PlaceholderStyle.Render(selectPrompt(r.field, m.FreeText))
	}
	return line + valueStyle.Render(value)
}

func selectPrompt(f legs.Field, freeText bool) string {
	if f.IsLocation() && !freeText {
		return "Select " + f.Label()
	}
	return placeholderFor(f)
}

func (m FormModel) renderPicker() string {
	var b strings.Builder
	for i, opt := range m.pickerOptions() {
		label := opt
		if label == "" {
			label = selectPrompt(m.EditField, false)
		}
		if i == m.PickerCursor {
			b.WriteString("      ● " + lipgloss.NewStyle().Foreground(HighlightColor).Bold(true).Render(label))
		} else {
			b.WriteString("      ○ " + label)
		}
		if i < len(m.Locations) {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m FormModel) renderHelpModalContent() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	full := m.Help
	full.ShowAll = true
	b.WriteString(full.View(m.Keys))
	b.WriteString("\n\n")
	b.WriteString("While editing a field:\n")
	b.WriteString(full.View(m.EditKeys))
	b.WriteString("\n\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf(
		"An itinerary has between %d and %d legs. The first %d legs cannot be removed.",
		legs.MinLegs, legs.MaxLegs, legs.MinLegs)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(SubtleColor).Render("Press ? or esc to close"))
	return ModalStyle(m.Width).Render(b.String())
}
