package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	Status int    `json:"status"`
	Error  string `json:"error,omitempty"`
	Reason string `json:"reason,omitempty"`
}

const (
	StatusOK = 200
)

// Reason codes returned with rejected game intents. The presentation layer
// switches on these, not on the human-readable error text.
const (
	ReasonBettingClosed = "betting_closed"
	ReasonNoActiveBets  = "no_active_bets"
	ReasonTimeExpired   = "time_expired"
	ReasonBadDuration   = "bad_duration"
)

func OK() Response {
	return Response{
		Status: StatusOK,
	}
}

func Error(msg string, status int) Response {
	if status == 0 {
		status = http.StatusInternalServerError
	}

	return Response{
		Status: status,
		Error:  msg,
	}
}

func Rejected(msg string, reason string, status int) Response {
	resp := Error(msg, status)
	resp.Reason = reason

	return resp
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is required", err.Field()))
		case "oneof":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s has an unsupported value", err.Field()))
		case "min":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is below the allowed minimum", err.Field()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is invalid", err.Field()))
		}
	}

	return Response{
		Status: http.StatusBadRequest,
		Error:  strings.Join(errMsgs, ", "),
	}
}
