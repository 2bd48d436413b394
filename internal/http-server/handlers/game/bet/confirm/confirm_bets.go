package confirm

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

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=BetsConfirmer
type BetsConfirmer interface {
	ConfirmBets() error
}

type Confirm struct {
	log       *slog.Logger
	confirmer BetsConfirmer
}

func NewConfirm(log *slog.Logger, confirmer BetsConfirmer) *Confirm {
	return &Confirm{
		log:       log,
		confirmer: confirmer,
	}
}

func (c *Confirm) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.game.bet.confirm.New"

		log := c.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := c.confirmer.ConfirmBets(); err != nil {
			log.Info("confirm rejected", sl.Err(err))

			switch {
			case errors.Is(err, round.ErrNoActiveBets):
				render.JSON(w, r, resp.Rejected("no active bets", resp.ReasonNoActiveBets, http.StatusBadRequest))
			case errors.Is(err, round.ErrTimeExpired):
				render.JSON(w, r, resp.Rejected("betting time expired", resp.ReasonTimeExpired, http.StatusConflict))
			case errors.Is(err, round.ErrBettingClosed):
				render.JSON(w, r, resp.Rejected("betting is closed", resp.ReasonBettingClosed, http.StatusConflict))
			default:
				render.JSON(w, r, resp.Error("failed to confirm bets", http.StatusInternalServerError))
			}

			return
		}

		log.Info("bets confirmed")

		render.JSON(w, r, Response{
			Response: resp.OK(),
		})
	}
}
