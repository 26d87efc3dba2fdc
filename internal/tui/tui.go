package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/videopoker/internal/game"
	"github.com/lox/videopoker/internal/strategy"
	"github.com/lox/videopoker/poker"
)

const maxLogEntries = 200

// Model is the bubbletea model for playing a session at the terminal
type Model struct {
	session *game.Session
	advisor *strategy.Advisor
	logger  *log.Logger

	keys        keyMap
	help        help.Model
	logViewport viewport.Model

	gameLog []string
	advice  string
	lastErr error

	width    int
	height   int
	quitting bool
}

// NewModel creates a model driving the given session and subscribes it to
// the session's events so rounds appear in the log pane.
func NewModel(session *game.Session, logger *log.Logger) *Model {
	vp := viewport.New(40, 6)
	vp.SetContent("")

	m := &Model{
		session:     session,
		advisor:     strategy.NewAdvisor(logger),
		logger:      logger.WithPrefix("tui"),
		keys:        defaultKeyMap(),
		help:        help.New(),
		logViewport: vp,
		gameLog:     []string{},
	}
	session.Events().Subscribe(m)
	return m
}

// Run plays the session in a full screen terminal program until the user quits
func Run(session *game.Session, logger *log.Logger, opts ...tea.ProgramOption) error {
	model := NewModel(session, logger)
	defer session.Events().Unsubscribe(model)

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(model, opts...).Run()
	return err
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return nil
}

// OnEvent implements game.EventSubscriber
func (m *Model) OnEvent(event game.GameEvent) {
	m.AddLogEntry(game.FormatEvent(event))
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logViewport.Width = max(msg.Width-2, 1)
		m.logViewport.Height = max(msg.Height-16, 3)
		m.logViewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Deal):
			m.deal()
			return m, nil
		case key.Matches(msg, m.keys.Hold):
			m.session.ToggleHold(int(msg.String()[0] - '1'))
			return m, nil
		case key.Matches(msg, m.keys.Advise):
			m.applyAdvice()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) deal() {
	m.advice = ""
	m.lastErr = nil
	if err := m.session.Deal(); err != nil {
		m.logger.Error("Deal failed", "error", err)
		m.lastErr = err
		m.AddLogEntry("Error: " + err.Error())
	}
}

func (m *Model) applyAdvice() {
	if m.session.State() != game.FirstDeal {
		m.advice = "deal first"
		return
	}
	decision := m.advisor.Decide(m.session.Cards())
	m.session.ApplyHolds(decision.Holds)
	m.advice = decision.Reasoning
}

// AddLogEntry adds an entry to the game log and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	if len(m.gameLog) > maxLogEntries {
		m.gameLog = m.gameLog[len(m.gameLog)-maxLogEntries:]
	}
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.GotoBottom()
}

// GameLog returns a copy of the log entries
func (m *Model) GameLog() []string {
	return append([]string(nil), m.gameLog...)
}

// Advice returns the reasoning of the last applied advice
func (m *Model) Advice() string {
	return m.advice
}

// Err returns the error from the last failed deal, if any
func (m *Model) Err() error {
	return m.lastErr
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderHand(),
		m.renderStatus(),
		LogFrameStyle.Render(m.logViewport.View()),
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	title := HeaderStyle.Render("Jacks or Better")
	info := InfoStyle.Render(fmt.Sprintf(" %s | round %d", m.session.State(), m.session.Round()))
	return title + info
}

func (m *Model) renderHand() string {
	showHolds := m.session.State() == game.FirstDeal
	slots := m.session.Slots()

	rendered := make([]string, 0, len(slots))
	for i, slot := range slots {
		rendered = append(rendered, renderSlot(i, slot, showHolds))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderSlot(index int, slot game.Slot, showHolds bool) string {
	face := FormatCard(slot.Card)

	frame := CardFrameStyle
	label := InfoStyle.Render(fmt.Sprintf("%d", index+1))
	if showHolds && slot.Held {
		frame = HeldFrameStyle
		label = HeldStyle.Render("HELD")
	}
	return lipgloss.JoinVertical(lipgloss.Center, frame.Render(face), label)
}

func (m *Model) renderStatus() string {
	var lines []string

	category := m.session.HandCategory()
	if category == poker.None {
		lines = append(lines, InfoStyle.Render("No win"))
	} else {
		lines = append(lines, HandInfoStyle.Render(category.String()))
	}

	if m.advice != "" {
		lines = append(lines, AdviceStyle.Render("Advice: "+m.advice))
	}
	if m.lastErr != nil {
		lines = append(lines, ErrorStyle.Render("Error: "+m.lastErr.Error()))
	}
	return strings.Join(lines, "\n")
}

// FormatCard renders a card with its suit glyph, coloured by suit
func FormatCard(card poker.Card) string {
	if card.Suit.Red() {
		return RedCardStyle.Render(card.Symbol())
	}
	return BlackCardStyle.Render(card.Symbol())
}

// FormatCards renders cards separated by spaces
func FormatCards(cards []poker.Card) string {
	formatted := make([]string, len(cards))
	for i, card := range cards {
		formatted[i] = FormatCard(card)
	}
	return strings.Join(formatted, " ")
}
