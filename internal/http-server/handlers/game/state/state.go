package state

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/exp/slog"

	"go-wingo/internal/game/round"
	resp "go-wingo/internal/lib/api/response"
)

type Response struct {
	resp.Response
	State round.Snapshot `json:"state"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=Snapshotter
type Snapshotter interface {
	Snapshot() round.Snapshot
}

type State struct {
	log         *slog.Logger
	snapshotter Snapshotter
}

func NewState(log *slog.Logger, snapshotter Snapshotter) *State {
	return &State{
		log:         log,
		snapshotter: snapshotter,
	}
}

func (s *State) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.game.state.New"

		log := s.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		snap := s.snapshotter.Snapshot()

		log.Debug("state snapshot served", slog.String("phase", string(snap.Phase)))

		render.JSON(w, r, Response{
			Response: resp.OK(),
			State:    snap,
		})
	}
}
