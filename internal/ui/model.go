package ui

import (
	"context"
	"log"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kanitomo/internal/config"
	"kanitomo/internal/crab"
	"kanitomo/internal/gitwatch"
	"kanitomo/internal/store"
	"kanitomo/internal/wellbeing"
)

// idleMessageChance is the per-tick probability of the crab saying something
// while no message is showing.
const idleMessageChance = 0.002

// messageDuration is how long a speech bubble stays on screen.
const messageDuration = 4 * time.Second

// Model is the main pet screen.
type Model struct {
	cfg   config.Config
	debug bool

	well    *wellbeing.State
	crab    *crab.Crab
	tracker *gitwatch.Tracker
	watcher *gitwatch.Watcher
	db      *store.Store
	rng     *rand.Rand

	width  int
	height int

	message        string
	messageExpires time.Time
	lastSave       time.Time
	quitting       bool
}

type tickMsg time.Time
type refsChangedMsg struct{}

// NewModel loads persisted state, discovers and backfills git repos, and
// wires the ref watcher.
func NewModel(cfg config.Config, db *store.Store, debug bool) (Model, error) {
	now := wellbeing.TimeNow()

	snap, found, err := db.Load(context.Background())
	if err != nil {
		return Model{}, err
	}

	var well *wellbeing.State
	if found {
		well = wellbeing.FromSnapshot(snap)
		if lost := well.ApplyLoadDecay(now); lost > 0 {
			log.Printf("Away decay: happiness dropped by %d to %d", lost, well.Happiness())
		}
	} else {
		well = wellbeing.NewState()
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	tracker := gitwatch.Discover(cwd)
	log.Printf("Tracking %d repos under %s", tracker.RepoCount(), cwd)

	// Rebuild history from the repos themselves so streaks survive sessions
	// when the pet was not running. Backfilled commits never boost.
	for _, rec := range tracker.Backfill(now.AddDate(0, 0, -400)) {
		well.RecordActivity(rec)
	}
	well.RecomputeStreak(now)

	var watcher *gitwatch.Watcher
	if dirs := tracker.GitDirs(); len(dirs) > 0 {
		watcher, err = gitwatch.NewWatcher(dirs)
		if err != nil {
			log.Printf("Ref watching disabled: %v", err)
			watcher = nil
		}
	}

	rng := rand.New(rand.NewSource(now.UnixNano()))
	return Model{
		cfg:      cfg,
		debug:    debug,
		well:     well,
		crab:     crab.New(10, 2, rng),
		tracker:  tracker,
		watcher:  watcher,
		db:       db,
		rng:      rng,
		lastSave: now,
	}, nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitForRefs())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForRefs() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.Events
	return func() tea.Msg {
		<-ch
		return refsChangedMsg{}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.save()
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.checkCommits()
			return m, nil
		case "f":
			if m.debug {
				m.well.Boost(5)
				m.crab.Celebrate()
				m.setMessage(commitMessage(m.rng))
			}
			return m, nil
		case "p":
			if m.debug {
				m.well.Decay(5)
			}
			return m, nil
		case "z":
			if m.debug {
				m.crab.SetMovementFrozen(!m.crab.MovementFrozen)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		mood := crab.MoodFor(m.well.Happiness())
		m.crab.Update(m.cfg.TickInterval.Seconds(), m.sceneBounds(), mood)

		if m.message != "" && now.After(m.messageExpires) {
			m.message = ""
		}
		if m.message == "" && m.rng.Float64() < idleMessageChance {
			m.setMessage(moodMessage(m.rng, mood))
		}

		if now.Sub(m.lastSave) >= m.cfg.SaveInterval {
			m.save()
			m.lastSave = now
		}
		return m, m.tick()

	case refsChangedMsg:
		m.checkCommits()
		return m, m.waitForRefs()
	}

	return m, nil
}

// checkCommits asks the tracker for head movement and feeds new commits into
// the wellbeing state. Boost and celebration fire only for records that were
// actually new, so duplicate ref events are harmless.
func (m *Model) checkCommits() {
	for _, c := range m.tracker.CheckNewCommits() {
		rec := wellbeing.ActivityRecord{
			Timestamp:  c.When,
			ActivityID: c.Hash,
			SourceID:   c.RepoDir,
			SourceName: c.RepoName,
		}
		if !m.well.RecordActivity(rec) {
			continue
		}
		m.well.Boost(m.cfg.CommitBoost)
		m.crab.Celebrate()
		m.setMessage(commitMessage(m.rng))
		log.Printf("New commit %s in %s, happiness now %d", c.Hash, c.RepoName, m.well.Happiness())
	}
	m.save()
}

func (m *Model) save() {
	m.well.Touch(wellbeing.TimeNow())
	if err := m.db.Save(context.Background(), m.well.Snapshot()); err != nil {
		log.Printf("Save failed: %v", err)
	}
}

func (m *Model) setMessage(msg string) {
	m.message = msg
	m.messageExpires = wellbeing.TimeNow().Add(messageDuration)
}

// Close releases the ref watcher.
func (m Model) Close() {
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
}

// Run starts the pet screen and blocks until it exits.
func Run(cfg config.Config, db *store.Store, debug bool) error {
	m, err := NewModel(cfg, db, debug)
	if err != nil {
		return err
	}
	defer m.Close()

	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
