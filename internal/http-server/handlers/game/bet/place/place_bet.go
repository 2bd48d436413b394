package place

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"

	"go-wingo/internal/game/round"
	"go-wingo/internal/game/wingo"
	resp "go-wingo/internal/lib/api/response"
	"go-wingo/internal/lib/logger/sl"
)

type Request struct {
	Kind string `json:"kind" validate:"required"`
}

type Response struct {
	resp.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=BetPlacer
type BetPlacer interface {
	PlaceBet(kind wingo.Kind) error
}

type Bet struct {
	log       *slog.Logger
	validator *validator.Validate
	placer    BetPlacer
}

func NewBet(log *slog.Logger, placer BetPlacer) *Bet {
	return &Bet{
		log:       log,
		validator: validator.New(),
		placer:    placer,
	}
}

func (b *Bet) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.game.bet.place.New"

		var (
			err  error
			req  Request
			log  *slog.Logger
			kind wingo.Kind
		)

		log = b.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err = render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to decode request body", http.StatusBadRequest))

			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = b.validator.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		kind, err = wingo.ParseKind(req.Kind)
		if err != nil {
			log.Error("unknown bet kind", sl.Err(err))

			render.JSON(w, r, resp.Error("unknown bet kind", http.StatusBadRequest))

			return
		}

		if err = b.placer.PlaceBet(kind); err != nil {
			log.Info("bet rejected", sl.Err(err))

			switch {
			case errors.Is(err, round.ErrBettingClosed):
				render.JSON(w, r, resp.Rejected("betting is closed", resp.ReasonBettingClosed, http.StatusConflict))
			case errors.Is(err, round.ErrUnknownKind):
				render.JSON(w, r, resp.Error("unknown bet kind", http.StatusBadRequest))
			default:
				render.JSON(w, r, resp.Error("failed to place bet", http.StatusInternalServerError))
			}

			return
		}

		log.Info("bet placed", sl.String("kind", string(kind)))

		responseOK(w, r)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Response{
		Response: resp.OK(),
	})
}
