package evaluate

import (
	"go-wingo/internal/game/outcome"
	"go-wingo/internal/game/wingo"
)

// bigThreshold splits the number range for size bets: big wins on 5-9,
// small wins on 0-4.
const bigThreshold = 5

// Winners returns the subset of predictions that the result pays out.
// Pure function of its inputs; the caller may invoke it repeatedly.
func Winners(result outcome.RoundResult, predictions []wingo.Prediction) []wingo.Prediction {
	var winners []wingo.Prediction

	for _, p := range predictions {
		if wins(result, p) {
			winners = append(winners, p)
		}
	}

	return winners
}

// TotalPayout sums the multipliers of the winning predictions. With at most
// one prediction per category, this is the round's combined payout factor.
func TotalPayout(winners []wingo.Prediction) float64 {
	var total float64

	for _, p := range winners {
		total += p.Multiplier
	}

	return total
}

func wins(result outcome.RoundResult, p wingo.Prediction) bool {
	switch p.Category {
	case wingo.CategorySize:
		if p.Kind == wingo.KindBig {
			return result.Number >= bigThreshold
		}

		return result.Number < bigThreshold
	case wingo.CategoryColor:
		return wingo.Color(p.Kind) == result.Color
	case wingo.CategoryNumber:
		return p.Kind == wingo.KindForNumber(result.Number)
	}

	return false
}
