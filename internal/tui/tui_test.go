package tui

import (
	"io"
	"math/rand"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/videopoker/internal/game"
	"github.com/lox/videopoker/poker"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type stackedDeck struct {
	*poker.Deck
}

func (stackedDeck) Shuffle() {}

func newTestModel(t *testing.T, cards string) *Model {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	session := game.NewSession(rand.New(rand.NewSource(1)),
		game.WithLogger(logger),
		game.WithDeckFactory(func() game.Deck {
			return stackedDeck{poker.NewDeckFromCards(poker.MustParseCards(cards), nil)}
		}),
	)
	m := NewModel(session, logger)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		switch k {
		case "enter":
			m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		case "space":
			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		default:
			m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

const dealOrder = "2c 7d 9h Js Kd 3c 4d 5h 6s 8c"

func TestModelPlaysRound(t *testing.T) {
	m := newTestModel(t, dealOrder)

	press(m, "space")
	require.Equal(t, game.FirstDeal, m.session.State())
	assert.Equal(t, "2c 7d 9h Js Kd", poker.FormatCards(cardsOf(m)))

	press(m, "4", "5")
	assert.Equal(t, [5]bool{false, false, false, true, true}, m.session.Holds())

	press(m, "enter")
	require.Equal(t, game.GameOver, m.session.State())
	assert.Equal(t, "3c 4d 5h Js Kd", poker.FormatCards(cardsOf(m)))

	entries := m.GameLog()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0], "Round 1 dealt")
	assert.Contains(t, entries[1], "Round 1 drew 3")
}

func TestModelToggleTwiceReleases(t *testing.T) {
	m := newTestModel(t, dealOrder)
	press(m, "space", "2", "2")
	assert.Equal(t, [5]bool{}, m.session.Holds())
}

func TestModelHoldsIgnoredBeforeDeal(t *testing.T) {
	m := newTestModel(t, dealOrder)
	before := m.session.Holds()
	press(m, "1")
	assert.Equal(t, before, m.session.Holds())
	assert.Equal(t, game.NewGame, m.session.State())
}

func TestModelAppliesAdvice(t *testing.T) {
	m := newTestModel(t, "Ah Kh Qh Jh 2c 9s 8s 7s 6s 5s")

	press(m, "a")
	assert.Equal(t, "deal first", m.Advice())

	press(m, "space", "a")
	assert.Equal(t, "four to a royal", m.Advice())
	assert.Equal(t, [5]bool{true, true, true, true, false}, m.session.Holds())

	press(m, "space")
	assert.Empty(t, m.Advice(), "advice cleared by deal")
}

func TestModelReportsDealErrors(t *testing.T) {
	m := newTestModel(t, "2c 7d 9h")

	press(m, "space")
	require.Error(t, m.Err())
	assert.ErrorIs(t, m.Err(), game.ErrInsufficientDeck)
	assert.Equal(t, game.NewGame, m.session.State())
	assert.Contains(t, m.View(), "insufficient cards in deck")
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, dealOrder)

	view := m.View()
	assert.Contains(t, view, "Jacks or Better")
	assert.Contains(t, view, "New Game")
	assert.Contains(t, view, "Royal Flush")
	assert.Contains(t, view, "A♠")
	assert.NotContains(t, view, "HELD", "filler holds are not shown")

	press(m, "space", "1")
	view = m.View()
	assert.Contains(t, view, "First Deal")
	assert.Contains(t, view, "HELD")
	assert.Contains(t, view, "No win")
	assert.Contains(t, view, "Round 1 dealt")
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, dealOrder)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestFormatCards(t *testing.T) {
	cards := poker.MustParseCards("Ah Ts 2d")
	assert.Equal(t, "A♥ T♠ 2♦", FormatCards(cards))
}

func cardsOf(m *Model) []poker.Card {
	cards := m.session.Cards()
	return cards[:]
}
