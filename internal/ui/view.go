package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"kanitomo/internal/crab"
	"kanitomo/internal/wellbeing"
)

// Rows reserved below the scene for the stats panel, message and help line.
const panelRows = 12

var gameStyles = struct {
	title   lipgloss.Style
	scene   lipgloss.Style
	stats   lipgloss.Style
	label   lipgloss.Style
	message lipgloss.Style
	help    lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6464")).
		Padding(0, 1),

	scene: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#5C6370")),

	stats: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ABB2BF")).
		Padding(0, 1),

	label: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5C6370")),

	message: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E5C07B")).
		Padding(0, 1),

	help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5C6370")).
		Padding(0, 1),
}

func (m Model) sceneBounds() crab.Bounds {
	w := float64(m.width - 2)
	if w < crab.FrameWidth+2 {
		w = crab.FrameWidth + 2
	}
	h := float64(m.height - panelRows)
	if h < crab.FrameHeight+2 {
		h = crab.FrameHeight + 2
	}
	return crab.Bounds{Width: w, Height: h}
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return "See you at the next commit!\n"
	}
	if m.width == 0 {
		return "Loading..."
	}

	mood := crab.MoodFor(m.well.Happiness())
	title := gameStyles.title.Render("🦀 kanitomo")

	sections := []string{
		title,
		m.renderScene(),
		m.renderStats(mood),
	}

	if m.message != "" {
		sections = append(sections, gameStyles.message.Render("🦀 "+m.message))
	} else {
		sections = append(sections, "")
	}

	help := "r refresh • q quit"
	if m.debug {
		help += " • f feed • p punish • z freeze"
	}
	sections = append(sections, gameStyles.help.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderScene draws the crab sprite into a blank grid at its current
// position, then colors the whole block with the pose color.
func (m Model) renderScene() string {
	bounds := m.sceneBounds()
	width := int(bounds.Width)
	height := int(bounds.Height)

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}
	for x := 0; x < width; x++ {
		grid[height-1][x] = '─'
	}

	pose := m.crab.Pose()
	for dy, line := range strings.Split(pose.Art(), "\n") {
		y := pose.Y + dy
		if y < 0 || y >= height {
			continue
		}
		for dx, r := range line {
			x := pose.X + dx
			if x < 0 || x >= width || r == ' ' {
				continue
			}
			grid[y][x] = r
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		lines[y] = string(row)
	}

	return gameStyles.scene.Copy().
		Foreground(lipgloss.Color(pose.Color)).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderStats(mood crab.Mood) string {
	moodStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(mood.AccentColor()))

	lines := []string{
		fmt.Sprintf("%s %s %s",
			gameStyles.label.Render("Mood:"),
			moodStyle.Render(mood.DisplayName()),
			happinessBar(m.well.Happiness())),
		fmt.Sprintf("%s %d day(s) (best %d)",
			gameStyles.label.Render("Streak:"),
			m.well.Streak(), m.well.BestStreak()),
		fmt.Sprintf("%s %d today, last %s",
			gameStyles.label.Render("Commits:"),
			m.well.ActivityToday(wellbeing.TimeNow()),
			m.lastCommitAgo()),
		fmt.Sprintf("%s %s",
			gameStyles.label.Render("Repos:"),
			repoSummary(m.tracker.RepoNames())),
	}

	return gameStyles.stats.Render(strings.Join(lines, "\n"))
}

func happinessBar(happiness int) string {
	const barWidth = 20
	filled := happiness * barWidth / wellbeing.MaxHappiness
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("%s %d/%d", bar, happiness, wellbeing.MaxHappiness)
}

func (m Model) lastCommitAgo() string {
	last, ok := m.well.LastActivity()
	if !ok {
		return "never"
	}
	elapsed := wellbeing.TimeNow().Sub(last)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
}

func repoSummary(names []string) string {
	if len(names) == 0 {
		return "none found"
	}
	if len(names) <= 3 {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(names[:3], ", "), len(names)-3)
}
