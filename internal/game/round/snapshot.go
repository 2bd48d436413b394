package round

import (
	"go-wingo/internal/game/evaluate"
	"go-wingo/internal/game/outcome"
	"go-wingo/internal/game/wingo"
)

// Event names delivered with snapshots so the presentation layer knows why
// it is being asked to re-render.
const (
	EventSnapshot        = "snapshot"
	EventRoundStarted    = "round.started"
	EventTick            = "round.tick"
	EventBetsChanged     = "bets.changed"
	EventBetsLocked      = "bets.locked"
	EventRoundResolved   = "round.resolved"
	EventDurationChanged = "duration.changed"
)

// Snapshot is the read-only view handed to subscribers and the HTTP layer.
// Every slice is a copy; holding a snapshot never aliases machine state.
type Snapshot struct {
	Event            string                `json:"event"`
	Phase            Phase                 `json:"phase"`
	Duration         int                   `json:"duration"`
	TimeRemaining    int                   `json:"time_remaining"`
	SelectedDuration int                   `json:"selected_duration"`
	Active           []wingo.Prediction    `json:"active"`
	Locked           []wingo.Prediction    `json:"locked"`
	LastResult       *outcome.RoundResult  `json:"last_result,omitempty"`
	History          []outcome.RoundResult `json:"history"`
	Winners          []wingo.Prediction    `json:"winners,omitempty"`
	TotalPayout      float64               `json:"total_payout"`
}

func (m *Machine) snapshotLocked(event string) Snapshot {
	snap := Snapshot{
		Event:            event,
		Phase:            m.phase,
		Duration:         m.duration,
		TimeRemaining:    m.timeRemaining,
		SelectedDuration: m.selectedDuration,
		Active:           append([]wingo.Prediction(nil), m.active...),
		Locked:           append([]wingo.Prediction(nil), m.locked...),
		History:          append([]outcome.RoundResult(nil), m.history...),
	}

	if m.lastResult != nil {
		result := *m.lastResult
		snap.LastResult = &result
	}

	// Winners are recomputed on demand, never stored.
	if m.phase == PhaseShowingResult && m.lastResult != nil {
		snap.Winners = evaluate.Winners(*m.lastResult, snap.Locked)
		snap.TotalPayout = evaluate.TotalPayout(snap.Winners)
	}

	return snap
}
