package ui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"campushub/internal/assistant"
	"campushub/internal/campus"
	"campushub/internal/catalog"
	"campushub/internal/config"
	"campushub/internal/domain"
	"campushub/internal/eventbus"
	"campushub/internal/ui/input"
	"campushub/internal/ui/input/modes"
	"campushub/internal/ui/input/types"
	"campushub/internal/ui/views"
)

const eventQueueSize = 64

// views in cycling order
var viewCycle = []catalog.ViewKind{catalog.ViewAll, catalog.ViewTop, catalog.ViewUpcoming, catalog.ViewMine}

// pageState is the per-tab browsing state. Criteria live in the board.
type pageState struct {
	categoryIndex int // 0 is "all"
	bucketIndex   int // 0 is any date
	view          int // index into viewCycle
	cursor        int
	offset        int
	rows          []campus.Row
}

// Options configures the terminal browser
type Options struct {
	Registry *campus.Registry
	Config   *config.Config
	Bus      eventbus.EventBus // optional; notifications arrive through it when set
	Chat     *assistant.Chat
	Logger   *log.Logger
}

// Model represents the application state
type Model struct {
	boards []campus.Board
	states []*pageState
	active int

	cfg    *config.Config
	bus    eventbus.EventBus
	events chan eventbus.DomainEvent
	unsub  []func()
	logger *log.Logger

	chat        *assistant.Chat
	chatLines   []views.ChatLine
	chatPending bool

	inputHandler *input.Handler
	renderer     *views.Renderer
	help         help.Model
	keys         modes.KeyMap

	width  int
	height int

	toast         string
	toastSeq      int
	statusMessage string
	statusIsError bool
	showHelp      bool
}

// NewModel creates a model positioned on the configured start page
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Model{
		boards:       opts.Registry.Boards(),
		cfg:          cfg,
		bus:          opts.Bus,
		logger:       logger.WithPrefix("ui"),
		chat:         opts.Chat,
		inputHandler: input.New(),
		renderer:     views.NewRenderer(cfg.UI.ShowScores),
		help:         help.New(),
		keys:         modes.DefaultKeyMap,
	}
	for range m.boards {
		m.states = append(m.states, &pageState{})
	}
	if i := opts.Registry.Index(cfg.StartPage); i >= 0 {
		m.active = i
	}

	if m.bus != nil {
		m.events = make(chan eventbus.DomainEvent, eventQueueSize)
		forward := func(e eventbus.DomainEvent) {
			select {
			case m.events <- e:
			default:
				m.logger.Warn("ui event queue full, dropping event", "type", e.Type())
			}
		}
		m.unsub = append(m.unsub,
			m.bus.Subscribe(eventbus.EventNotification, forward),
			m.bus.Subscribe(eventbus.EventError, forward),
		)
	}

	for i := range m.boards {
		m.refresh(i)
	}
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent blocks until the bus forwards an event
func (m *Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return EventMsg{Event: e}
	}
}

// Close detaches the model from the event bus
func (m *Model) Close() {
	for _, unsub := range m.unsub {
		unsub()
	}
	m.unsub = nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case EventMsg:
		m.handleEvent(msg.Event)
		var cmd tea.Cmd
		if n, ok := msg.Event.(eventbus.NotificationEvent); ok {
			cmd = m.showToast(n.Notification.Title, n.Notification.Description)
		}
		return m, tea.Batch(cmd, m.waitForEvent())

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case assistantReplyMsg:
		m.chatPending = false
		if n := len(m.chatLines); n > 0 {
			m.chatLines[n-1].Reply = msg.turn.Reply
			m.chatLines[n-1].Err = msg.turn.Err
		}
		return m, nil

	case pagerDoneMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("pager: %v", msg.err))
		}
		return m, nil
	}

	return m, m.inputHandler.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the help overlay
	if m.showHelp && m.inputHandler.CurrentMode() == types.ModeNormal && msg.String() != "ctrl+c" {
		m.showHelp = false
		return m, nil
	}

	actions, cmd := m.inputHandler.HandleKey(msg, m)
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.apply(action))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleEvent(e eventbus.DomainEvent) {
	if errEvent, ok := e.(eventbus.ErrorEvent); ok {
		m.setError(errEvent.Message)
	}
}

// apply executes one input action
func (m *Model) apply(action types.Action) tea.Cmd {
	board, st := m.current()

	switch a := action.(type) {
	case types.NavigateAction:
		m.navigate(a.Direction)

	case types.SwitchPageAction:
		n := len(m.boards)
		m.active = ((m.active+a.Delta)%n + n) % n
		m.clearStatus()

	case types.JumpPageAction:
		if a.Index >= 0 && a.Index < len(m.boards) {
			m.active = a.Index
			m.clearStatus()
		}

	case types.UpdateTextAction:
		if a.Mode == types.ModeFilter {
			m.setText(a.Text)
		}

	case types.SubmitTextAction:
		switch a.Mode {
		case types.ModeFilter:
			m.setText(a.Text)
		case types.ModeThreshold:
			m.setThreshold(a.Text)
		case types.ModeAsk:
			return m.ask(a.Text)
		}

	case types.CancelTextAction:
		if a.Mode == types.ModeFilter {
			m.setText("")
		}

	case types.CycleCategoryAction:
		categories := board.Categories()
		st.categoryIndex = (st.categoryIndex + 1) % (len(categories) + 1)
		c := board.Criteria()
		c.Category = catalog.AllCategories
		if st.categoryIndex > 0 {
			c.Category = categories[st.categoryIndex-1]
		}
		m.setCriteria(c)

	case types.CycleBucketAction:
		buckets := catalog.DateBuckets()
		st.bucketIndex = (st.bucketIndex + 1) % (len(buckets) + 1)
		c := board.Criteria()
		c.DateBucket = catalog.BucketAny
		if st.bucketIndex > 0 {
			c.DateBucket = buckets[st.bucketIndex-1]
		}
		m.setCriteria(c)

	case types.CycleViewAction:
		st.view = (st.view + 1) % len(viewCycle)
		m.refresh(m.active)

	case types.ClearFiltersAction:
		st.categoryIndex, st.bucketIndex, st.view = 0, 0, 0
		m.setCriteria(catalog.Criteria{})

	case types.MutateAction:
		row, ok := m.currentRow()
		if !ok {
			return nil
		}
		_, n := board.Mutate(row.ID, a.Kind)
		m.refresh(m.active)
		if n != nil && m.bus == nil {
			return m.showToast(n.Title, n.Description)
		}

	case types.ShowDetailAction:
		row, ok := m.currentRow()
		if !ok {
			return nil
		}
		return showInPager(renderDetail(board.Title(), row, board.NumericLabel()))

	case types.ToggleHelpAction:
		m.showHelp = !m.showHelp

	case types.ResetChatAction:
		if m.chatPending {
			m.setError("wait for the reply before resetting the chat")
			return nil
		}
		if m.chat != nil {
			m.chat.Reset()
		}
		m.chatLines = nil

	case types.QuitAction:
		m.Close()
		return tea.Quit
	}
	return nil
}

func (m *Model) current() (campus.Board, *pageState) {
	return m.boards[m.active], m.states[m.active]
}

func (m *Model) currentRow() (campus.Row, bool) {
	_, st := m.current()
	if st.cursor < 0 || st.cursor >= len(st.rows) {
		return campus.Row{}, false
	}
	return st.rows[st.cursor], true
}

func (m *Model) setText(text string) {
	board, _ := m.current()
	c := board.Criteria()
	c.Text = text
	m.setCriteria(c)
}

// setThreshold parses the typed bound. Empty input removes it; anything
// unparseable is reported and leaves the criteria unchanged.
func (m *Model) setThreshold(text string) {
	board, _ := m.current()
	c := board.Criteria()
	text = strings.TrimSpace(text)
	if text == "" {
		c.Threshold = nil
	} else {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			m.setError(fmt.Sprintf("not a number: %q", text))
			return
		}
		c.Threshold = &v
	}
	m.setCriteria(c)
}

func (m *Model) setCriteria(c catalog.Criteria) {
	board, _ := m.current()
	board.SetCriteria(c)
	m.clearStatus()
	m.refresh(m.active)
}

// refresh recomputes the rows of page i for its current view
func (m *Model) refresh(i int) {
	board, st := m.boards[i], m.states[i]
	st.rows = board.Derived(viewCycle[st.view], campus.ViewOptions{
		TopN:         m.cfg.UI.TopN,
		UpcomingDays: m.cfg.UI.UpcomingDays,
	})
	if st.cursor >= len(st.rows) {
		st.cursor = len(st.rows) - 1
	}
	if st.cursor < 0 {
		st.cursor = 0
	}
	if i == m.active {
		m.ensureCursorVisible()
	}
}

func (m *Model) navigate(direction string) {
	_, st := m.current()
	last := len(st.rows) - 1
	switch direction {
	case "up":
		st.cursor--
	case "down":
		st.cursor++
	case "home":
		st.cursor = 0
	case "end":
		st.cursor = last
	case "pageup":
		st.cursor -= m.viewportHeight()
	case "pagedown":
		st.cursor += m.viewportHeight()
	}
	st.cursor = max(0, min(st.cursor, last))
	m.ensureCursorVisible()
}

// viewportHeight is the number of list lines that fit on screen
func (m *Model) viewportHeight() int {
	if m.height <= 0 {
		return 15
	}
	// title, tabs, blank, heading, footer (2) and main padding (2)
	return max(m.height-10, 3)
}

func (m *Model) ensureCursorVisible() {
	_, st := m.current()
	height := m.viewportHeight()
	if st.cursor < st.offset {
		st.offset = st.cursor
	}
	if st.cursor >= st.offset+height {
		st.offset = st.cursor - height + 1
	}
	if st.offset < 0 {
		st.offset = 0
	}
}

// showToast displays a notification until ToastSeconds pass or a newer
// one replaces it
func (m *Model) showToast(title, description string) tea.Cmd {
	m.toast = title
	if description != "" {
		m.toast = title + ": " + description
	}
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(time.Duration(m.cfg.UI.ToastSeconds)*time.Second, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m *Model) clearStatus() {
	m.statusMessage = ""
	m.statusIsError = false
}

func (m *Model) setError(message string) {
	m.statusMessage = message
	m.statusIsError = true
}

// ask sends a question to the assistant without blocking the UI
func (m *Model) ask(text string) tea.Cmd {
	if m.chat == nil || m.chatPending {
		return nil
	}
	m.chatPending = true
	m.chatLines = append(m.chatLines, views.ChatLine{Question: text})
	chat := m.chat
	timeout := m.cfg.Assistant.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return assistantReplyMsg{turn: chat.Ask(ctx, text)}
	}
}

// View renders the model
func (m *Model) View() string {
	board, st := m.current()

	tabs := make([]string, len(m.boards))
	for i, b := range m.boards {
		tabs[i] = b.Title()
	}

	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Tabs:           tabs,
		ActiveTab:      m.active,
		PageTitle:      board.Title(),
		NumericLabel:   board.NumericLabel(),
		Rows:           st.rows,
		Total:          board.Len(),
		SelectedIndex:  st.cursor,
		ViewportOffset: st.offset,
		ViewportHeight: m.viewportHeight(),
		Criteria:       criteriaSummary(board),
		FilterText:     board.Criteria().Text,
		View:           viewCycle[st.view].String(),
		Toast:          m.toast,
		StatusMessage:  m.statusMessage,
		StatusIsError:  m.statusIsError,
		ShowHelp:       m.showHelp,
		HelpModel:      m.help,
		Keys:           m.keys,
		Chat:           m.chatLines,
		ChatPending:    m.chatPending,
	}
	if mode := m.inputHandler.CurrentMode(); mode != types.ModeNormal {
		state.InputMode = mode.String()
		state.InputPrompt = m.inputHandler.Prompt()
		if ti := m.inputHandler.TextInput(); ti != nil {
			state.TextInput = ti.View()
		}
	}

	return m.renderer.Render(state)
}

// criteriaSummary describes the active criteria of a board
func criteriaSummary(board campus.Board) string {
	c := board.Criteria()
	var parts []string
	if text := strings.TrimSpace(c.Text); text != "" {
		parts = append(parts, fmt.Sprintf("%q", text))
	}
	if c.Category != "" && !strings.EqualFold(c.Category, catalog.AllCategories) {
		parts = append(parts, c.Category)
	}
	if c.DateBucket != catalog.BucketAny {
		parts = append(parts, string(c.DateBucket))
	}
	if c.Threshold != nil {
		parts = append(parts, fmt.Sprintf("%s %s %s", board.NumericLabel(), board.Bound(), views.FormatNumber(*c.Threshold)))
	}
	for _, flag := range domain.AllFlags() {
		want, ok := c.Flags[flag]
		switch {
		case !ok:
		case want:
			parts = append(parts, flag.String())
		default:
			parts = append(parts, "!"+flag.String())
		}
	}
	return strings.Join(parts, " · ")
}
