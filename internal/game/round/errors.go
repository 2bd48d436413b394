package round

import "errors"

// Intent rejections. None of these are fatal: the machine refuses the intent,
// leaves its state untouched and keeps cycling.
var (
	// ErrBettingClosed rejects intents arriving outside the betting phase or
	// after the countdown hit zero.
	ErrBettingClosed = errors.New("betting is closed")

	// ErrNoActiveBets rejects a confirm with an empty active set.
	ErrNoActiveBets = errors.New("no active bets to confirm")

	// ErrTimeExpired rejects a confirm that raced the final tick.
	ErrTimeExpired = errors.New("betting time expired")

	// ErrBadDuration rejects a duration outside the allowed set.
	ErrBadDuration = errors.New("duration is not allowed")

	// ErrUnknownKind rejects a bet kind missing from the catalog.
	ErrUnknownKind = errors.New("unknown bet kind")
)
