package round

import (
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"go-wingo/internal/game/outcome"
	"go-wingo/internal/game/wingo"
	"go-wingo/internal/lib/logger/sl"
)

type Phase string

const (
	PhaseBetting       Phase = "betting"
	PhaseResolving     Phase = "resolving"
	PhaseShowingResult Phase = "showing_result"
)

const subscriberBuffer = 16

type Config struct {
	Durations       []int
	DefaultDuration int
	ResolveDwell    time.Duration
	ShowDwell       time.Duration
	HistorySize     int
}

// Machine owns the whole game state and is its only mutator. Intents and
// timer callbacks all serialize on one mutex, so every transition is atomic
// with respect to every other.
type Machine struct {
	log       *slog.Logger
	cfg       Config
	roller    *outcome.Roller
	scheduler Scheduler

	mu               sync.Mutex
	running          bool
	phase            Phase
	duration         int
	timeRemaining    int
	selectedDuration int
	active           []wingo.Prediction
	locked           []wingo.Prediction
	lastResult       *outcome.RoundResult
	history          []outcome.RoundResult
	stopTick         func()
	cancelDwell      func()
	subs             map[int]chan Snapshot
	nextSubID        int
}

func NewMachine(log *slog.Logger, cfg Config, roller *outcome.Roller, scheduler Scheduler) *Machine {
	if len(cfg.Durations) == 0 {
		cfg.Durations = []int{10, 15, 20}
	}

	if !containsDuration(cfg.Durations, cfg.DefaultDuration) {
		cfg.DefaultDuration = cfg.Durations[0]
	}

	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 10
	}

	return &Machine{
		log:       log,
		cfg:       cfg,
		roller:    roller,
		scheduler: scheduler,
		subs:      make(map[int]chan Snapshot),
	}
}

// Start enters the first betting phase. Calling Start on a running machine
// is a no-op.
func (m *Machine) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	m.running = true
	m.selectedDuration = m.cfg.DefaultDuration

	m.log.Info("round machine started", sl.Int("duration", m.selectedDuration))

	m.startBettingLocked()
}

// Stop halts the cycle and invalidates any pending timer. State is left as
// it was; a stopped machine rejects betting intents via the phase guards.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.running = false

	if m.stopTick != nil {
		m.stopTick()
		m.stopTick = nil
	}

	if m.cancelDwell != nil {
		m.cancelDwell()
		m.cancelDwell = nil
	}

	m.log.Info("round machine stopped")
}

// PlaceBet adds or replaces the active prediction of the kind's category.
// Only one prediction per category exists at a time.
func (m *Machine) PlaceBet(kind wingo.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseBetting || !m.running {
		return ErrBettingClosed
	}

	if m.timeRemaining <= 0 {
		return ErrBettingClosed
	}

	prediction, ok := wingo.Lookup(kind)
	if !ok {
		return ErrUnknownKind
	}

	replaced := false

	for i, p := range m.active {
		if p.Category == prediction.Category {
			m.active[i] = prediction
			replaced = true

			break
		}
	}

	if !replaced {
		m.active = append(m.active, prediction)
	}

	m.log.Info("bet placed",
		sl.String("kind", string(prediction.Kind)),
		sl.String("category", string(prediction.Category)))

	m.publishLocked(EventBetsChanged)

	return nil
}

// ClearBets empties the active set. Permitted only while betting is open.
func (m *Machine) ClearBets() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseBetting || !m.running || m.timeRemaining <= 0 {
		return ErrBettingClosed
	}

	if len(m.active) == 0 {
		return nil
	}

	m.active = nil

	m.publishLocked(EventBetsChanged)

	return nil
}

// ConfirmBets locks the active set in early, before the countdown runs out,
// and moves straight to resolving.
func (m *Machine) ConfirmBets() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseBetting || !m.running {
		return ErrBettingClosed
	}

	if m.timeRemaining <= 0 {
		return ErrTimeExpired
	}

	if len(m.active) == 0 {
		return ErrNoActiveBets
	}

	m.lockInLocked()

	return nil
}

// SetDuration records the selected duration for the next round. While the
// betting phase is live it also restarts the countdown at the new value;
// in any other phase the new value takes effect on rollover.
func (m *Machine) SetDuration(seconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !containsDuration(m.cfg.Durations, seconds) {
		return ErrBadDuration
	}

	m.selectedDuration = seconds

	if m.phase == PhaseBetting && m.running {
		m.duration = seconds
		m.timeRemaining = seconds
	}

	m.log.Info("duration selected", sl.Int("seconds", seconds), sl.String("phase", string(m.phase)))

	m.publishLocked(EventDurationChanged)

	return nil
}

// Snapshot returns a read-only copy of the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snapshotLocked(EventSnapshot)
}

// Subscribe registers a snapshot channel that receives every state change.
// A subscriber that falls behind has updates dropped, never blocking the
// machine. The returned func unsubscribes.
func (m *Machine) Subscribe() (<-chan Snapshot, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++

	ch := make(chan Snapshot, subscriberBuffer)
	m.subs[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
	}
}

func (m *Machine) startBettingLocked() {
	m.phase = PhaseBetting
	m.duration = m.selectedDuration
	m.timeRemaining = m.duration
	m.active = nil
	m.locked = nil

	m.stopTick = m.scheduler.Every(time.Second, m.tick)

	m.publishLocked(EventRoundStarted)
}

func (m *Machine) tick() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseBetting || !m.running {
		return
	}

	m.timeRemaining--

	if m.timeRemaining > 0 {
		m.publishLocked(EventTick)

		return
	}

	m.timeRemaining = 0
	m.lockInLocked()
}

// lockInLocked snapshots the active predictions and enters resolving.
func (m *Machine) lockInLocked() {
	if m.stopTick != nil {
		m.stopTick()
		m.stopTick = nil
	}

	m.locked = append([]wingo.Prediction(nil), m.active...)
	m.phase = PhaseResolving
	m.timeRemaining = 0

	m.log.Info("bets locked", sl.Int("count", len(m.locked)))

	m.cancelDwell = m.scheduler.After(m.cfg.ResolveDwell, m.reveal)

	m.publishLocked(EventBetsLocked)
}

func (m *Machine) reveal() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseResolving || !m.running {
		return
	}

	result := m.roller.Roll(m.duration)
	m.lastResult = &result

	m.history = append([]outcome.RoundResult{result}, m.history...)
	if len(m.history) > m.cfg.HistorySize {
		m.history = m.history[:m.cfg.HistorySize]
	}

	m.phase = PhaseShowingResult

	m.log.Info("round resolved",
		sl.Int("number", result.Number),
		sl.String("color", string(result.Color)))

	m.cancelDwell = m.scheduler.After(m.cfg.ShowDwell, m.rollover)

	m.publishLocked(EventRoundResolved)
}

func (m *Machine) rollover() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseShowingResult || !m.running {
		return
	}

	m.log.Info("starting new round", sl.Int("duration", m.selectedDuration))

	m.startBettingLocked()
}

func (m *Machine) publishLocked(event string) {
	if len(m.subs) == 0 {
		return
	}

	snap := m.snapshotLocked(event)

	for _, ch := range m.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func containsDuration(durations []int, d int) bool {
	for _, allowed := range durations {
		if allowed == d {
			return true
		}
	}

	return false
}
