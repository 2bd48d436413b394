package event

import (
	"golang.org/x/exp/slog"

	"go-wingo/internal/game/round"
	"go-wingo/internal/job"
	"go-wingo/internal/lib/logger/sl"
)

// Forwarder turns machine snapshots into presentation events. It only reads
// the snapshots it is handed; round state stays owned by the machine.
type Forwarder struct {
	log        *slog.Logger
	dispatcher *job.Dispatcher
	publisher  Publisher
	channel    string
}

func NewForwarder(log *slog.Logger, dispatcher *job.Dispatcher, publisher Publisher, channel string) *Forwarder {
	return &Forwarder{
		log:        log,
		dispatcher: dispatcher,
		publisher:  publisher,
		channel:    channel,
	}
}

// Run drains the subscription until it is closed. Call it on its own
// goroutine.
func (f *Forwarder) Run(snapshots <-chan round.Snapshot) {
	const op = "event.Forwarder.Run"

	log := f.log.With(slog.String("op", op))

	for snap := range snapshots {
		message := Message{
			Channel: f.channel,
			Event:   snap.Event,
			Data: map[string]interface{}{
				"phase":          snap.Phase,
				"time_remaining": snap.TimeRemaining,
				"state":          snap,
			},
		}

		f.dispatcher.Dispatch(&SendEventJob{EventMessage: message, Publisher: f.publisher}, 0)
	}

	log.Info("snapshot subscription closed", sl.String("channel", f.channel))
}
