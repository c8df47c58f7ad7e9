package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"hourglass/internal/config"
	"hourglass/internal/models"
	"hourglass/internal/notify"
	"hourglass/internal/schedule"
	"hourglass/internal/todo"
)

type sessionState int

const (
	stateWeek sessionState = iota
	stateToDo
	stateEventForm
	stateToDoForm
)

// eventForm backs the huh add/edit form with plain string fields; parsing
// happens when the form completes.
type eventForm struct {
	Date        string
	Time        string
	Duration    string
	Color       string
	Description string
	Frequency   models.Frequency
	Times       string
	LeapYears   bool
}

type editTarget struct {
	date models.DateKey
	id   string
	all  bool
}

type Model struct {
	store *schedule.Store
	todos *todo.List
	cfg   *config.Config

	keys   KeyMap
	styles Styles
	help   help.Model

	state      sessionState
	sunday     models.DateKey
	dayIndex   int
	eventIndex int
	todoIndex  int

	form     *huh.Form
	formData *eventForm
	editing  *editTarget // nil while adding
	todoText string

	scanner *notify.Scanner
	alertCh chan string
	alerts  []string

	now      time.Time
	status   string
	quitting bool
	save     SaveFunc
	saveErr  error
	width    int
	height   int
}

// SaveFunc persists both stores at shutdown. The TUI never knows file
// paths; the command layer supplies them through this hook.
type SaveFunc func(store *schedule.Store, todos *todo.List) error

func NewModel(store *schedule.Store, todos *todo.List, cfg *config.Config, save SaveFunc) Model {
	now := time.Now()
	today := models.DateKeyFor(now)

	alertCh := make(chan string, 16)
	scanner := notify.NewScanner(store, func(message string) {
		select {
		case alertCh <- message:
		default:
		}
	})

	return Model{
		store:    store,
		todos:    todos,
		cfg:      cfg,
		keys:     DefaultKeyMap(),
		styles:   newStyles(cfg.DarkMode),
		help:     help.New(),
		state:    stateWeek,
		sunday:   today.AddDays(-int(today.Time().Weekday())),
		dayIndex: int(today.Time().Weekday()),
		scanner:  scanner,
		alertCh:  alertCh,
		now:      now,
		save:     save,
	}
}

// Err reports a failed shutdown save, checked by the command after the
// program exits.
func (m Model) Err() error {
	return m.saveErr
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		if m.cfg.Notify {
			m.scanner.Scan()
			for {
				select {
				case alert := <-m.alertCh:
					m.alerts = append(m.alerts, alert)
				default:
					return m, tickCmd()
				}
			}
		}
		return m, tickCmd()
	}

	switch m.state {
	case stateEventForm, stateToDoForm:
		return m.updateForm(msg)
	case stateToDo:
		return m.updateToDo(msg)
	default:
		return m.updateWeek(msg)
	}
}

func (m Model) updateWeek(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// An alert banner eats the dismiss key before anything else.
	if len(m.alerts) > 0 && key.Matches(keyMsg, m.keys.Dismiss) {
		m.alerts = m.alerts[1:]
		return m, nil
	}

	m.status = ""

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.saveAndQuit()

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(keyMsg, m.keys.Left):
		m.dayIndex = (m.dayIndex + 6) % 7
		m.eventIndex = 0
	case key.Matches(keyMsg, m.keys.Right):
		m.dayIndex = (m.dayIndex + 1) % 7
		m.eventIndex = 0
	case key.Matches(keyMsg, m.keys.PrevWeek):
		m.sunday = m.sunday.AddDays(-7)
		m.eventIndex = 0
	case key.Matches(keyMsg, m.keys.NextWeek):
		m.sunday = m.sunday.AddDays(7)
		m.eventIndex = 0
	case key.Matches(keyMsg, m.keys.Today):
		today := models.DateKeyFor(m.now)
		m.sunday = today.AddDays(-int(today.Time().Weekday()))
		m.dayIndex = int(today.Time().Weekday())
		m.eventIndex = 0

	case key.Matches(keyMsg, m.keys.Up):
		if m.eventIndex > 0 {
			m.eventIndex--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.eventIndex < len(m.selectedDayEvents())-1 {
			m.eventIndex++
		}

	case key.Matches(keyMsg, m.keys.Add):
		return m.openAddForm()
	case key.Matches(keyMsg, m.keys.Edit):
		return m.openEditForm(false)
	case key.Matches(keyMsg, m.keys.EditAll):
		return m.openEditForm(true)
	case key.Matches(keyMsg, m.keys.Remove):
		m.removeSelected(schedule.ActionRemove)
	case key.Matches(keyMsg, m.keys.RemoveAll):
		m.removeSelected(schedule.ActionRemoveAll)

	case key.Matches(keyMsg, m.keys.ToDo):
		m.state = stateToDo
		m.todoIndex = 0
	}

	return m, nil
}

func (m Model) updateToDo(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	items := m.todos.Items()
	m.status = ""

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.saveAndQuit()
	case key.Matches(keyMsg, m.keys.ToDo), keyMsg.String() == "esc":
		m.state = stateWeek

	case key.Matches(keyMsg, m.keys.Up):
		if m.todoIndex > 0 {
			m.todoIndex--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.todoIndex < len(items)-1 {
			m.todoIndex++
		}

	case key.Matches(keyMsg, m.keys.Toggle):
		if m.todoIndex < len(items) {
			item := items[m.todoIndex]
			if err := m.todos.SetDone(item.ID, !item.Done); err != nil {
				m.status = err.Error()
			}
		}
	case key.Matches(keyMsg, m.keys.MoveUp):
		if m.todoIndex > 0 && m.todoIndex < len(items) {
			if err := m.todos.Move(items[m.todoIndex].ID, m.todoIndex-1); err == nil {
				m.todoIndex--
			}
		}
	case key.Matches(keyMsg, m.keys.MoveDown):
		if m.todoIndex < len(items)-1 {
			if err := m.todos.Move(items[m.todoIndex].ID, m.todoIndex+1); err == nil {
				m.todoIndex++
			}
		}
	case key.Matches(keyMsg, m.keys.Remove):
		if m.todoIndex < len(items) {
			if err := m.todos.Remove(items[m.todoIndex].ID); err != nil {
				m.status = err.Error()
			} else if m.todoIndex > 0 {
				m.todoIndex--
			}
		}

	case key.Matches(keyMsg, m.keys.Add):
		m.todoText = ""
		m.form = newToDoForm(&m.todoText)
		m.state = stateToDoForm
		return m, m.form.Init()
	}

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.form = nil
		if m.state == stateToDoForm {
			m.state = stateToDo
		} else {
			m.state = stateWeek
		}
		return m, nil

	case huh.StateCompleted:
		if m.state == stateToDoForm {
			if text := strings.TrimSpace(m.todoText); text != "" {
				m.todos.Add(text)
			}
			m.form = nil
			m.state = stateToDo
			return m, nil
		}
		m.applyEventForm()
		m.form = nil
		m.state = stateWeek
		return m, nil
	}

	return m, cmd
}

func (m *Model) openAddForm() (tea.Model, tea.Cmd) {
	date := m.sunday.AddDays(m.dayIndex)
	m.formData = &eventForm{
		Date:      date.String(),
		Time:      fmt.Sprintf("%02d:%02d", m.now.Hour(), m.now.Minute()),
		Duration:  "00:00",
		Color:     "#838383",
		Frequency: models.FrequencyNone,
		Times:     "1",
		LeapYears: m.cfg.HonorLeapYears,
	}
	m.editing = nil
	m.form = newEventForm(m.formData, true)
	m.state = stateEventForm
	return *m, m.form.Init()
}

func (m *Model) openEditForm(all bool) (tea.Model, tea.Cmd) {
	date := m.sunday.AddDays(m.dayIndex)
	listed := m.selectedDayEvents()
	if m.eventIndex >= len(listed) {
		m.status = "no event selected"
		return *m, nil
	}
	target := listed[m.eventIndex]

	if all && target.event.Frequency == models.FrequencyNone {
		m.status = "event is not recurring"
		return *m, nil
	}

	m.formData = &eventForm{
		Time:        target.event.StartTimeString(),
		Duration:    fmt.Sprintf("%02d:%02d", target.event.DurationHour, target.event.DurationMinute),
		Color:       target.event.Color,
		Description: target.event.Description,
	}
	m.editing = &editTarget{date: date, id: target.id, all: all}
	m.form = newEventForm(m.formData, false)
	m.state = stateEventForm
	return *m, m.form.Init()
}

// applyEventForm parses the completed form and performs the add or edit.
// Parse and validation failures surface in the status line; the schedule is
// untouched on any failure.
func (m *Model) applyEventForm() {
	data := m.formData

	startHour, startMinute, err := splitClock(data.Time)
	if err != nil {
		m.status = err.Error()
		return
	}
	durationHour, durationMinute, err := splitClock(data.Duration)
	if err != nil {
		m.status = err.Error()
		return
	}

	if m.editing != nil {
		update := schedule.Update{
			StartHour:      startHour,
			StartMinute:    startMinute,
			DurationHour:   durationHour,
			DurationMinute: durationMinute,
			Color:          strings.ToLower(data.Color),
			Description:    data.Description,
		}
		action := schedule.ActionEdit
		if m.editing.all {
			action = schedule.ActionEditAll
		}
		if err := m.store.EditOrRemove(m.editing.date, m.editing.id, action, &update); err != nil {
			m.status = err.Error()
			return
		}
		m.status = "event updated"
		return
	}

	date, err := models.ParseDateKey(data.Date)
	if err != nil {
		m.status = err.Error()
		return
	}
	times, err := strconv.Atoi(strings.TrimSpace(data.Times))
	if err != nil {
		m.status = fmt.Sprintf("invalid recurrence amount: %q", data.Times)
		return
	}

	req := schedule.AddRequest{
		Date:           date,
		StartHour:      startHour,
		StartMinute:    startMinute,
		DurationHour:   durationHour,
		DurationMinute: durationMinute,
		Color:          strings.ToLower(data.Color),
		Description:    data.Description,
		Frequency:      data.Frequency,
		Amount:         times,
		HonorLeapYears: data.LeapYears,
	}
	if err := m.store.Add(req); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "event added"
}

func (m *Model) removeSelected(action schedule.Action) {
	date := m.sunday.AddDays(m.dayIndex)
	listed := m.selectedDayEvents()
	if m.eventIndex >= len(listed) {
		m.status = "no event selected"
		return
	}
	target := listed[m.eventIndex]

	if action == schedule.ActionRemoveAll && target.event.Frequency == models.FrequencyNone {
		m.status = "event is not recurring"
		return
	}

	if err := m.store.EditOrRemove(date, target.id, action, nil); err != nil {
		m.status = err.Error()
		return
	}
	if m.eventIndex > 0 {
		m.eventIndex--
	}
	m.status = "event removed"
}

func (m Model) saveAndQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.save != nil {
		m.saveErr = m.save(m.store, m.todos)
	}
	return m, tea.Quit
}

func splitClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}
