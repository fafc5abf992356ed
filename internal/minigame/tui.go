package minigame

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kanitomo/internal/store"
)

// ScoreKey identifies crab-catch rows in the score table.
const ScoreKey = "crabcatch"

const tickInterval = 50 * time.Millisecond

var catchStyles = struct {
	header lipgloss.Style
	field  lipgloss.Style
	crab   lipgloss.Style
	final  lipgloss.Style
}{
	header: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#E5C07B")).
		Padding(0, 1),

	field: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#5C6370")),

	crab: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF6464")),

	final: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98C379")).
		Padding(1, 2),
}

type model struct {
	game     *Game
	db       *store.Store
	width    int
	height   int
	finished bool
	best     int
	aborted  bool
}

type gameTickMsg time.Time

// Run plays one round of crab catch and records the score.
func Run(db *store.Store) error {
	m := model{
		game: New(40, 16, rand.New(rand.NewSource(time.Now().UnixNano()))),
		db:   db,
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func gameTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return gameTickMsg(t)
	})
}

// Init implements tea.Model
func (m model) Init() tea.Cmd {
	return gameTick()
}

// Update implements tea.Model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.finished {
			return m, tea.Quit
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		case "left", "h", "a":
			m.game.Move(-1)
		case "right", "l", "d":
			m.game.Move(1)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.game.Resize(msg.Width, m.fieldHeight())
		return m, nil

	case gameTickMsg:
		if m.finished {
			return m, nil
		}
		m.game.Update(tickInterval.Seconds())
		if m.game.Finished() {
			m.finished = true
			m.recordScore()
			return m, nil
		}
		return m, gameTick()
	}

	return m, nil
}

func (m *model) recordScore() {
	ctx := context.Background()
	if err := m.db.RecordScore(ctx, ScoreKey, m.game.Score); err != nil {
		log.Printf("Recording score failed: %v", err)
		return
	}
	best, err := m.db.BestScore(ctx, ScoreKey)
	if err != nil {
		log.Printf("Reading best score failed: %v", err)
		return
	}
	m.best = best
}

// View implements tea.Model
func (m model) View() string {
	if m.aborted {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.finished {
		return catchStyles.final.Render(fmt.Sprintf(
			"Time! You caught %d (missed %d).\nBest so far: %d\n\nPress any key to exit.",
			m.game.Score, m.game.Misses, m.best))
	}

	header := catchStyles.header.Render(fmt.Sprintf(
		"crab catch  •  score %d  miss %d  •  %2.0fs left",
		m.game.Score, m.game.Misses, m.game.Remaining().Seconds()))

	width := m.game.Width()
	height := m.fieldHeight()
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	for _, f := range m.game.Foods {
		x := int(math.Round(f.X))
		y := int(f.Y)
		if x >= 0 && x < width && y >= 0 && y < height-1 {
			grid[y][x] = f.Glyph
		}
	}

	for i, r := range m.game.Sprite() {
		x := m.game.CrabX + i
		if x >= 0 && x < width {
			grid[height-2][x] = r
		}
	}
	for x := 0; x < width; x++ {
		grid[height-1][x] = '─'
	}

	lines := make([]string, height)
	for y, row := range grid {
		lines[y] = string(row)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		catchStyles.field.Render(strings.Join(lines, "\n")),
		catchStyles.header.Render("←/→ move • q quit"),
	)
}

func (m model) fieldHeight() int {
	h := m.height - 5
	if h < 8 {
		h = 8
	}
	return h
}
