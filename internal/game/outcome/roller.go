package outcome

import (
	"time"

	"github.com/google/uuid"

	"go-wingo/internal/game/wingo"
	"go-wingo/internal/lib/random"
)

const seedLength = 16

// RoundResult is the immutable outcome of one resolved round.
type RoundResult struct {
	UUID     uuid.UUID   `json:"uuid"`
	Number   int         `json:"number"`
	Color    wingo.Color `json:"color"`
	Seed     string      `json:"seed"`
	Duration int         `json:"duration"`
	PlayedAt time.Time   `json:"played_at"`
}

type Roller struct {
	src RandomSource
}

func NewRoller(src RandomSource) *Roller {
	return &Roller{
		src: src,
	}
}

// Roll draws the number and the color independently, each uniform over its
// range. It cannot fail; entropy fallback happens inside the source.
func (r *Roller) Roll(duration int) RoundResult {
	number := Intn(r.src, 10)
	color := wingo.Colors[Intn(r.src, len(wingo.Colors))]

	return RoundResult{
		UUID:     uuid.New(),
		Number:   number,
		Color:    color,
		Seed:     random.NewRandomString(seedLength),
		Duration: duration,
		PlayedAt: time.Now(),
	}
}
