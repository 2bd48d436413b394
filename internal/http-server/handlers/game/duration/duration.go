package duration

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"

	"go-wingo/internal/game/round"
	resp "go-wingo/internal/lib/api/response"
	"go-wingo/internal/lib/logger/sl"
)

type Request struct {
	Seconds int `json:"seconds" validate:"required,min=1"`
}

type Response struct {
	resp.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=DurationSetter
type DurationSetter interface {
	SetDuration(seconds int) error
}

type Duration struct {
	log       *slog.Logger
	validator *validator.Validate
	setter    DurationSetter
}

func NewDuration(log *slog.Logger, setter DurationSetter) *Duration {
	return &Duration{
		log:       log,
		validator: validator.New(),
		setter:    setter,
	}
}

func (d *Duration) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.game.duration.New"

		var (
			err error
			req Request
			log *slog.Logger
		)

		log = d.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err = render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to decode request body", http.StatusBadRequest))

			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = d.validator.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		if err = d.setter.SetDuration(req.Seconds); err != nil {
			log.Info("duration rejected", sl.Err(err))

			if errors.Is(err, round.ErrBadDuration) {
				render.JSON(w, r, resp.Rejected("duration is not allowed", resp.ReasonBadDuration, http.StatusBadRequest))

				return
			}

			render.JSON(w, r, resp.Error("failed to set duration", http.StatusInternalServerError))

			return
		}

		log.Info("duration selected", sl.Int("seconds", req.Seconds))

		render.JSON(w, r, Response{
			Response: resp.OK(),
		})
	}
}
