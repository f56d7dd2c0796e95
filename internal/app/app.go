// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/datecalc/internal/config"
	"github.com/zjrosen/datecalc/internal/daterange"
	"github.com/zjrosen/datecalc/internal/keys"
	"github.com/zjrosen/datecalc/internal/location"
	"github.com/zjrosen/datecalc/internal/log"
	"github.com/zjrosen/datecalc/internal/pubsub"
	"github.com/zjrosen/datecalc/internal/querystore"
	"github.com/zjrosen/datecalc/internal/ui/calendar"
	"github.com/zjrosen/datecalc/internal/ui/durationinput"
	"github.com/zjrosen/datecalc/internal/ui/help"
	"github.com/zjrosen/datecalc/internal/ui/logview"
	"github.com/zjrosen/datecalc/internal/ui/styles"
	"github.com/zjrosen/datecalc/internal/ui/toaster"
	"github.com/zjrosen/datecalc/internal/watcher"
)

// Calendar IDs, echoed back in calendar.SelectedMsg.
const (
	startCalendar = "start"
	endCalendar   = "end"
)

// stateBuffer bounds queued record snapshots. Each snapshot is complete, so
// a dropped one is superseded by the next.
const stateBuffer = 64

type focus int

const (
	focusStart focus = iota
	focusEnd
	focusInputs
	focusCount
)

// historyMsg reports a finished back/forward navigation.
type historyMsg struct {
	op    string
	moved bool
	err   error
}

// reloadMsg reports a finished Router.Reload after a watcher event.
type reloadMsg struct {
	changed bool
	err     error
}

// Model is the root application state.
type Model struct {
	svc Services

	start  calendar.Model
	end    calendar.Model
	inputs durationinput.Model
	focus  focus

	help     help.Model
	showHelp bool
	toaster  toaster.Model
	logs     logview.Model

	record  querystore.Record
	summary daterange.Summary
	theme   string
	lastLog string

	width  int
	height int

	ctx           context.Context
	cancel        context.CancelFunc
	states        *pubsub.Broker[querystore.Record]
	unsubscribe   func()
	stateListener *pubsub.ContinuousListener[querystore.Record]
	routeListener *pubsub.ContinuousListener[querystore.Query]
	watchListener *pubsub.ContinuousListener[watcher.WatcherEvent]
	logListener   *log.LogListener
}

// New mounts the store and builds the model. Store observers publish every
// new record on a broker that the model listens to, and router changes are
// fed back to the store.
func New(svc Services) Model {
	if svc.Clock == nil {
		svc.Clock = daterange.RealClock{}
	}
	if svc.Clipboard == nil {
		svc.Clipboard = SystemClipboard{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	states := pubsub.NewBrokerWithBuffer[querystore.Record](stateBuffer)

	m := Model{
		svc:     svc,
		start:   calendar.New(startCalendar, calendarConfig(svc.Config.Calendar), svc.Clock),
		end:     calendar.New(endCalendar, calendarConfig(svc.Config.Calendar), svc.Clock),
		inputs:  durationinput.New(),
		help:    help.New(svc.Config.UI.MarkdownStyle),
		toaster: toaster.New(),
		logs:    logview.New(),
		theme:   svc.Config.Theme.Preset,
		ctx:     ctx,
		cancel:  cancel,
		states:  states,
	}
	m.start = m.start.Focus()

	m.stateListener = pubsub.NewContinuousListener(ctx, states)
	m.routeListener = pubsub.NewContinuousListener(ctx, svc.Router.Broker())
	if svc.Watcher != nil {
		m.watchListener = pubsub.NewContinuousListener(ctx, svc.Watcher.Broker())
	}
	if svc.Debug {
		m.logListener = log.NewListener(ctx)
	}

	m.unsubscribe = svc.Store.Subscribe(func(rec querystore.Record) {
		states.Publish(pubsub.UpdatedEvent, rec)
	})
	svc.Store.Mount()
	m = m.applyRecord(svc.Store.State())
	return m
}

func calendarConfig(c config.CalendarConfig) calendar.Config {
	first, err := c.Weekday()
	if err != nil {
		log.Warn(log.CatConfig, "bad first day of week, using monday", "value", c.FirstDayOfWeek)
	}
	return calendar.Config{
		FirstDayOfWeek:  first,
		ShowWeekNumbers: c.ShowWeekNumbers,
		ShowOutsideDays: c.ShowOutsideDays,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.stateListener.Latest(), m.routeListener.Listen()}
	if m.watchListener != nil {
		cmds = append(cmds, m.watchListener.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Record returns the record currently shown.
func (m Model) Record() querystore.Record {
	return m.record
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.toaster = m.toaster.SetSize(msg.Width, msg.Height)
		m.logs = m.logs.SetSize(msg.Width, msg.Height)
		return m, nil

	case pubsub.Event[querystore.Record]:
		m = m.applyRecord(msg.Payload)
		return m, m.stateListener.Latest()

	case pubsub.Event[querystore.Query]:
		log.Debug(log.CatLocation, "location changed", "event", msg.Type, "query", location.Format(msg.Payload))
		m.svc.Store.LocationChanged()
		return m, m.routeListener.Listen()

	case pubsub.Event[watcher.WatcherEvent]:
		return m, tea.Batch(m.reload(), m.watchListener.Listen())

	case pubsub.Event[string]:
		m.lastLog = msg.Payload
		m.logs = m.logs.Append(msg.Payload)
		if m.logListener == nil {
			return m, nil
		}
		return m, m.logListener.Listen()

	case reloadMsg:
		if msg.err != nil {
			return m.toast(fmt.Sprintf("reload failed: %v", msg.err), toaster.StyleError)
		}
		if msg.changed {
			return m.toast("location opened from another terminal", toaster.StyleInfo)
		}
		return m, nil

	case historyMsg:
		switch {
		case msg.err != nil:
			return m.toast(fmt.Sprintf("%s failed: %v", msg.op, msg.err), toaster.StyleError)
		case !msg.moved:
			return m.toast("no "+msg.op+" history", toaster.StyleInfo)
		}
		return m, nil

	case calendar.SelectedMsg:
		return m.handleSelected(msg)

	case durationinput.ChangedMsg:
		rec, err := daterange.DurationChanged(m.svc.Store.State(), msg.Field, msg.Value)
		if err != nil {
			return m.toast(err.Error(), toaster.StyleError)
		}
		m.svc.Store.Update(rec)
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case tea.MouseMsg:
		if m.showHelp || m.logs.Visible() {
			return m, nil
		}
		var startCmd, endCmd tea.Cmd
		m.start, startCmd = m.start.Update(msg)
		m.end, endCmd = m.end.Update(msg)
		return m, tea.Batch(startCmd, endCmd)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// cursor blink and other component messages
	var cmd tea.Cmd
	m.inputs, cmd = m.inputs.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.logs.Visible() {
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		switch {
		case key.Matches(msg, keys.App.Help), key.Matches(msg, keys.App.Escape):
			m.showHelp = false
		case key.Matches(msg, keys.App.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.App.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.App.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, keys.App.Logs):
		if m.svc.Debug {
			m.logs = m.logs.Toggle()
		}
		return m, nil
	case key.Matches(msg, keys.App.NextFocus):
		return m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, keys.App.PrevFocus):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, keys.App.Back):
		return m, m.navigate("back", -1)
	case key.Matches(msg, keys.App.Forward):
		return m, m.navigate("forward", 1)
	case key.Matches(msg, keys.App.Yank):
		return m.yank()
	case key.Matches(msg, keys.App.Theme):
		return m.nextTheme()
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusStart:
		m.start, cmd = m.start.Update(msg)
	case focusEnd:
		m.end, cmd = m.end.Update(msg)
	case focusInputs:
		m.inputs, cmd = m.inputs.Update(msg)
	}
	return m, cmd
}

func (m Model) handleSelected(msg calendar.SelectedMsg) (tea.Model, tea.Cmd) {
	current := m.svc.Store.State()
	switch msg.ID {
	case startCalendar:
		m.svc.Store.Update(daterange.StartPicked(current, msg.Day))
	case endCalendar:
		m.svc.Store.Update(daterange.EndPicked(current, msg.Day))
	}
	return m, nil
}

func (m Model) setFocus(f focus) (tea.Model, tea.Cmd) {
	m.focus = f
	m.start = m.start.Blur()
	m.end = m.end.Blur()
	m.inputs = m.inputs.Blur()

	var cmd tea.Cmd
	switch f {
	case focusStart:
		m.start = m.start.Focus()
	case focusEnd:
		m.end = m.end.Focus()
	case focusInputs:
		m.inputs, cmd = m.inputs.Focus()
	}
	return m, cmd
}

// applyRecord shows rec in every component.
func (m Model) applyRecord(rec querystore.Record) Model {
	m.record = rec
	span := daterange.SpanOf(rec)

	var start, end time.Time
	if span.HasStart {
		start = span.Start
	}
	if span.HasEnd {
		end = span.End
	}
	m.start = m.start.SetSelected(start)
	m.end = m.end.SetSelected(end)
	m.inputs = m.inputs.SetDuration(span.Duration)

	if m.svc.Summarizer != nil {
		m.summary = m.svc.Summarizer.Summarize(m.ctx, start, end)
	} else {
		m.summary = daterange.Summarize(start, end)
	}
	return m
}

func (m Model) navigate(op string, delta int) tea.Cmd {
	router := m.svc.Router
	ctx := m.ctx
	return func() tea.Msg {
		var (
			moved bool
			err   error
		)
		if delta < 0 {
			moved, err = router.Back(ctx)
		} else {
			moved, err = router.Forward(ctx)
		}
		return historyMsg{op: op, moved: moved, err: err}
	}
}

func (m Model) reload() tea.Cmd {
	router := m.svc.Router
	ctx := m.ctx
	return func() tea.Msg {
		changed, err := router.Reload(ctx)
		return reloadMsg{changed: changed, err: err}
	}
}

func (m Model) yank() (tea.Model, tea.Cmd) {
	loc := "?" + m.svc.Router.String()
	if err := m.svc.Clipboard.Copy(loc); err != nil {
		log.ErrorErr(log.CatUI, "copy to clipboard", err)
		return m.toast("copy failed: "+err.Error(), toaster.StyleError)
	}
	return m.toast("copied "+loc, toaster.StyleSuccess)
}

func (m Model) nextTheme() (tea.Model, tea.Cmd) {
	names := styles.PresetNames()
	current := m.theme
	if current == "" {
		current = styles.DefaultPreset.Name
	}
	next := names[(slices.Index(names, current)+1)%len(names)]

	cfg := m.svc.Config.Theme
	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: next,
		Mode:   cfg.Mode,
		Colors: cfg.FlattenedColors(),
	}); err != nil {
		return m.toast(err.Error(), toaster.StyleError)
	}
	m.theme = next

	if m.svc.ConfigPath != "" {
		if err := config.SaveThemePreset(m.svc.ConfigPath, next); err != nil {
			log.ErrorErr(log.CatConfig, "saving theme", err, "path", m.svc.ConfigPath)
			return m.toast("theme "+next+" (not saved)", toaster.StyleError)
		}
	}
	return m.toast("theme "+next, toaster.StyleInfo)
}

func (m Model) toast(text string, style toaster.Style) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(text, style, toaster.DefaultDuration)
	return m, cmd
}

// Close stops listening and unsubscribes from the store. The store, router
// and watcher are owned by the caller.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.cancel()
	m.states.Close()
}
