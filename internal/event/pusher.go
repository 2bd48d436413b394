package event

import (
	"fmt"

	"github.com/pusher/pusher-http-go/v5"
	"golang.org/x/exp/slog"

	"go-wingo/internal/lib/logger/sl"
)

// PusherEvent publishes through a hosted pusher channel app.
type PusherEvent struct {
	log    *slog.Logger
	pusher *pusher.Client
}

func NewPusherEvent(log *slog.Logger, pusherClient *pusher.Client) *PusherEvent {
	return &PusherEvent{
		log:    log,
		pusher: pusherClient,
	}
}

func (p *PusherEvent) TriggerEvent(m Message) error {
	const op = "event.PusherEvent.TriggerEvent"

	if err := p.pusher.Trigger(m.Channel, m.Event, m.Data); err != nil {
		p.log.Error("failed to trigger pusher event", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
