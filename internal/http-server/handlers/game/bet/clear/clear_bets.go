package clear

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/exp/slog"

	"go-wingo/internal/game/round"
	resp "go-wingo/internal/lib/api/response"
	"go-wingo/internal/lib/logger/sl"
)

type Response struct {
	resp.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=BetsClearer
type BetsClearer interface {
	ClearBets() error
}

type Clear struct {
	log     *slog.Logger
	clearer BetsClearer
}

func NewClear(log *slog.Logger, clearer BetsClearer) *Clear {
	return &Clear{
		log:     log,
		clearer: clearer,
	}
}

func (c *Clear) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.game.bet.clear.New"

		log := c.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := c.clearer.ClearBets(); err != nil {
			log.Info("clear rejected", sl.Err(err))

			if errors.Is(err, round.ErrBettingClosed) {
				render.JSON(w, r, resp.Rejected("betting is closed", resp.ReasonBettingClosed, http.StatusConflict))

				return
			}

			render.JSON(w, r, resp.Error("failed to clear bets", http.StatusInternalServerError))

			return
		}

		log.Info("bets cleared")

		render.JSON(w, r, Response{
			Response: resp.OK(),
		})
	}
}
