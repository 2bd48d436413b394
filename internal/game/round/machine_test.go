package round

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"go-wingo/internal/game/outcome"
	"go-wingo/internal/game/wingo"
)

// manualScheduler advances a simulated clock deterministically. Callbacks
// fire synchronously inside advance, in deadline order.
type manualScheduler struct {
	now     time.Duration
	tickers []*manualTicker
	timers  []*manualTimer
}

type manualTicker struct {
	interval time.Duration
	next     time.Duration
	fn       func()
	stopped  bool
}

type manualTimer struct {
	due      time.Duration
	fn       func()
	fired    bool
	canceled bool
}

func (s *manualScheduler) Every(interval time.Duration, fn func()) func() {
	tk := &manualTicker{interval: interval, next: s.now + interval, fn: fn}
	s.tickers = append(s.tickers, tk)

	return func() { tk.stopped = true }
}

func (s *manualScheduler) After(delay time.Duration, fn func()) func() {
	tm := &manualTimer{due: s.now + delay, fn: fn}
	s.timers = append(s.timers, tm)

	return func() { tm.canceled = true }
}

func (s *manualScheduler) advance(d time.Duration) {
	target := s.now + d

	for {
		var (
			found    bool
			earliest time.Duration
		)

		for _, tk := range s.tickers {
			if !tk.stopped && tk.next <= target && (!found || tk.next < earliest) {
				found = true
				earliest = tk.next
			}
		}

		for _, tm := range s.timers {
			if !tm.fired && !tm.canceled && tm.due <= target && (!found || tm.due < earliest) {
				found = true
				earliest = tm.due
			}
		}

		if !found {
			break
		}

		s.now = earliest

		// Fire everything due at this instant. Callbacks may schedule new
		// work, which the rescan above picks up.
		for _, tk := range s.tickers {
			if !tk.stopped && tk.next == earliest {
				tk.next += tk.interval
				tk.fn()
			}
		}

		for _, tm := range s.timers {
			if !tm.fired && !tm.canceled && tm.due == earliest {
				tm.fired = true
				tm.fn()
			}
		}
	}

	s.now = target
}

// seqSource replays a fixed draw sequence, cycling when exhausted.
type seqSource struct {
	draws []uint64
	pos   int
}

func (s *seqSource) Uint64() uint64 {
	d := s.draws[s.pos%len(s.draws)]
	s.pos++

	return d
}

func testConfig() Config {
	return Config{
		Durations:       []int{10, 15, 20},
		DefaultDuration: 10,
		ResolveDwell:    1500 * time.Millisecond,
		ShowDwell:       3 * time.Second,
		HistorySize:     10,
	}
}

func newTestMachine(draws ...uint64) (*Machine, *manualScheduler) {
	if len(draws) == 0 {
		draws = []uint64{0, 0}
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	scheduler := &manualScheduler{}
	roller := outcome.NewRoller(&seqSource{draws: draws})

	return NewMachine(log, testConfig(), roller, scheduler), scheduler
}

func kinds(predictions []wingo.Prediction) []wingo.Kind {
	var out []wingo.Kind
	for _, p := range predictions {
		out = append(out, p.Kind)
	}

	return out
}

func TestPlaceBetReplacesWithinCategory(t *testing.T) {
	m, _ := newTestMachine()
	m.Start()

	require.NoError(t, m.PlaceBet(wingo.KindBig))
	require.NoError(t, m.PlaceBet(wingo.KindSmall))

	snap := m.Snapshot()
	assert.Equal(t, []wingo.Kind{wingo.KindSmall}, kinds(snap.Active))

	require.NoError(t, m.PlaceBet(wingo.KindRed))
	require.NoError(t, m.PlaceBet(wingo.Kind("4")))
	require.NoError(t, m.PlaceBet(wingo.KindGreen))

	snap = m.Snapshot()
	assert.Equal(t, []wingo.Kind{wingo.KindSmall, wingo.KindGreen, wingo.Kind("4")}, kinds(snap.Active))
}

func TestPlaceBetRejectedOutsideBetting(t *testing.T) {
	m, scheduler := newTestMachine()
	m.Start()

	require.NoError(t, m.PlaceBet(wingo.KindBig))

	// Run the countdown out; the machine locks and enters resolving.
	scheduler.advance(10 * time.Second)

	snap := m.Snapshot()
	require.Equal(t, PhaseResolving, snap.Phase)

	err := m.PlaceBet(wingo.KindRed)
	assert.ErrorIs(t, err, ErrBettingClosed)

	after := m.Snapshot()
	assert.Equal(t, kinds(snap.Locked), kinds(after.Locked))
	assert.Equal(t, kinds(snap.Active), kinds(after.Active))
}

func TestPlaceBetUnknownKind(t *testing.T) {
	m, _ := newTestMachine()
	m.Start()

	assert.ErrorIs(t, m.PlaceBet(wingo.Kind("medium")), ErrUnknownKind)
	assert.Empty(t, m.Snapshot().Active)
}

func TestPlaceBetBeforeStart(t *testing.T) {
	m, _ := newTestMachine()

	assert.ErrorIs(t, m.PlaceBet(wingo.KindBig), ErrBettingClosed)
}

func TestCountdownTicks(t *testing.T) {
	m, scheduler := newTestMachine()
	m.Start()

	scheduler.advance(4 * time.Second)

	snap := m.Snapshot()
	assert.Equal(t, PhaseBetting, snap.Phase)
	assert.Equal(t, 6, snap.TimeRemaining)
	assert.Equal(t, 10, snap.Duration)
}

func TestRoundLifecycleLiveness(t *testing.T) {
	m, scheduler := newTestMachine()
	m.Start()

	require.NoError(t, m.PlaceBet(wingo.KindBig))

	scheduler.advance(10 * time.Second)
	assert.Equal(t, PhaseResolving, m.Snapshot().Phase)

	scheduler.advance(1500 * time.Millisecond)
	snap := m.Snapshot()
	assert.Equal(t, PhaseShowingResult, snap.Phase)
	require.NotNil(t, snap.LastResult)
	assert.Len(t, snap.History, 1)

	scheduler.advance(3 * time.Second)
	snap = m.Snapshot()
	assert.Equal(t, PhaseBetting, snap.Phase)
	assert.Equal(t, 10, snap.TimeRemaining)
	assert.Empty(t, snap.Active)
	assert.Empty(t, snap.Locked)
}

func TestConfirmBetsLocksEarly(t *testing.T) {
	m, scheduler := newTestMachine()
	m.Start()

	require.NoError(t, m.PlaceBet(wingo.KindBig))
	require.NoError(t, m.PlaceBet(wingo.KindRed))

	scheduler.advance(2 * time.Second)

	require.NoError(t, m.ConfirmBets())

	snap := m.Snapshot()
	assert.Equal(t, PhaseResolving, snap.Phase)
	assert.Equal(t, []wingo.Kind{wingo.KindBig, wingo.KindRed}, kinds(snap.Locked))

	// Confirming twice is rejected; the round is already resolving.
	assert.ErrorIs(t, m.ConfirmBets(), ErrBettingClosed)

	// The canceled countdown must not fire a second lock-in.
	scheduler.advance(20 * time.Second)
	assert.Equal(t, PhaseBetting, m.Snapshot().Phase)
}

func TestConfirmBetsWithoutBets(t *testing.T) {
	m, _ := newTestMachine()
	m.Start()

	assert.ErrorIs(t, m.ConfirmBets(), ErrNoActiveBets)
	assert.Equal(t, PhaseBetting, m.Snapshot().Phase)
}

func TestEmptyBetsStillResolve(t *testing.T) {
	m, scheduler := newTestMachine()
	m.Start()

	// A spectator round: nobody bet, the countdown still resolves it.
	scheduler.advance(10 * time.Second)
	assert.Equal(t, PhaseResolving, m.Snapshot().Phase)

	scheduler.advance(1500 * time.Millisecond)
	snap := m.Snapshot()
	assert.Equal(t, PhaseShowingResult, snap.Phase)
	assert.Empty(t, snap.Winners)
	assert.Zero(t, snap.TotalPayout)
}

func TestClearBets(t *testing.T) {
	m, scheduler := newTestMachine()
	m.Start()

	require.NoError(t, m.PlaceBet(wingo.KindBig))
	require.NoError(t, m.ClearBets())
	assert.Empty(t, m.Snapshot().Active)

	// Clearing an already empty set is a quiet no-op.
	require.NoError(t, m.ClearBets())

	scheduler.advance(10 * time.Second)
	assert.ErrorIs(t, m.ClearBets(), ErrBettingClosed)
}

func TestSetDurationRestartsLiveCountdown(t *testing.T) {
	m, scheduler := newTestMachine()
	m.Start()

	scheduler.advance(6 * time.Second)
	require.Equal(t, 4, m.Snapshot().TimeRemaining)

	require.NoError(t, m.SetDuration(20))

	snap := m.Snapshot()
	assert.Equal(t, 20, snap.Duration)
	assert.Equal(t, 20, snap.TimeRemaining)
	assert.Equal(t, 20, snap.SelectedDuration)
}

func TestSetDurationOutsideBettingAppliesOnRollover(t *testing.T) {
	m, scheduler := newTestMachine()
	m.Start()

	scheduler.advance(10 * time.Second)
	scheduler.advance(1500 * time.Millisecond)
	require.Equal(t, PhaseShowingResult, m.Snapshot().Phase)

	require.NoError(t, m.SetDuration(15))

	snap := m.Snapshot()
	assert.Equal(t, 15, snap.SelectedDuration)
	assert.Equal(t, 10, snap.Duration)

	scheduler.advance(3 * time.Second)

	snap = m.Snapshot()
	assert.Equal(t, PhaseBetting, snap.Phase)
	assert.Equal(t, 15, snap.Duration)
	assert.Equal(t, 15, snap.TimeRemaining)
}

func TestSetDurationRejectsUnknownValue(t *testing.T) {
	m, _ := newTestMachine()
	m.Start()

	assert.ErrorIs(t, m.SetDuration(13), ErrBadDuration)
	assert.Equal(t, 10, m.Snapshot().SelectedDuration)
}

func TestWinnersRecomputedWhileShowingResult(t *testing.T) {
	// Draws 7 then 0: number=7, color=red.
	m, scheduler := newTestMachine(7, 0)
	m.Start()

	require.NoError(t, m.PlaceBet(wingo.KindBig))
	require.NoError(t, m.PlaceBet(wingo.KindRed))

	scheduler.advance(10 * time.Second)
	scheduler.advance(1500 * time.Millisecond)

	snap := m.Snapshot()
	require.Equal(t, PhaseShowingResult, snap.Phase)
	require.NotNil(t, snap.LastResult)
	assert.Equal(t, 7, snap.LastResult.Number)
	assert.Equal(t, wingo.Red, snap.LastResult.Color)

	assert.Equal(t, []wingo.Kind{wingo.KindBig, wingo.KindRed}, kinds(snap.Winners))
	assert.InDelta(t, 4.7, snap.TotalPayout, 1e-9)
}

func TestHistoryCapAfterElevenRounds(t *testing.T) {
	// One draw pair per round: numbers 0..10, all red.
	var draws []uint64
	for i := uint64(0); i <= 10; i++ {
		draws = append(draws, i, 0)
	}

	m, scheduler := newTestMachine(draws...)
	m.Start()

	for i := 0; i < 11; i++ {
		scheduler.advance(10 * time.Second)
		scheduler.advance(1500 * time.Millisecond)
		scheduler.advance(3 * time.Second)
	}

	snap := m.Snapshot()
	require.Len(t, snap.History, 10)

	// Most recent first: round 11 rolled 10%10=0, round 2 rolled 1.
	assert.Equal(t, 0, snap.History[0].Number)
	assert.Equal(t, 1, snap.History[9].Number)
}

func TestSubscribeReceivesStateChanges(t *testing.T) {
	m, _ := newTestMachine()

	ch, unsubscribe := m.Subscribe()

	m.Start()

	snap := <-ch
	assert.Equal(t, EventRoundStarted, snap.Event)

	require.NoError(t, m.PlaceBet(wingo.KindBlue))

	snap = <-ch
	assert.Equal(t, EventBetsChanged, snap.Event)
	assert.Equal(t, []wingo.Kind{wingo.KindBlue}, kinds(snap.Active))

	unsubscribe()

	_, open := <-ch
	assert.False(t, open)
}

func TestSlowSubscriberNeverBlocksMachine(t *testing.T) {
	m, scheduler := newTestMachine()

	_, unsubscribe := m.Subscribe()
	defer unsubscribe()

	m.Start()

	// Far more events than the subscriber buffer holds; the machine must
	// keep cycling regardless.
	for i := 0; i < 5; i++ {
		scheduler.advance(10 * time.Second)
		scheduler.advance(1500 * time.Millisecond)
		scheduler.advance(3 * time.Second)
	}

	snap := m.Snapshot()
	assert.Equal(t, PhaseBetting, snap.Phase)
	assert.Len(t, snap.History, 5)
}

func TestStopCancelsPendingTimers(t *testing.T) {
	m, scheduler := newTestMachine()
	m.Start()

	scheduler.advance(10 * time.Second)
	require.Equal(t, PhaseResolving, m.Snapshot().Phase)

	m.Stop()

	// The pending reveal must not fire after Stop.
	scheduler.advance(time.Minute)
	assert.Equal(t, PhaseResolving, m.Snapshot().Phase)
}
