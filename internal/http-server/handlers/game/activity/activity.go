package activity

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/exp/slog"

	"go-wingo/internal/feed"
	resp "go-wingo/internal/lib/api/response"
)

type Response struct {
	resp.Response
	Entries []feed.Entry `json:"entries"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=Feeder
type Feeder interface {
	Recent() []feed.Entry
}

type Activity struct {
	log    *slog.Logger
	feeder Feeder
}

func NewActivity(log *slog.Logger, feeder Feeder) *Activity {
	return &Activity{
		log:    log,
		feeder: feeder,
	}
}

func (a *Activity) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.game.activity.New"

		log := a.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		entries := a.feeder.Recent()

		log.Debug("activity served", slog.Int("entries", len(entries)))

		render.JSON(w, r, Response{
			Response: resp.OK(),
			Entries:  entries,
		})
	}
}
