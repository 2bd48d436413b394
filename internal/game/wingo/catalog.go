package wingo

import "fmt"

type Category string

const (
	CategorySize   Category = "size"
	CategoryColor  Category = "color"
	CategoryNumber Category = "number"
)

type Color string

const (
	Red   Color = "red"
	Green Color = "green"
	Blue  Color = "blue"
)

// Colors lists every color a round result can land on, in a fixed order so
// the outcome roller can index it with a uniform draw.
var Colors = []Color{Red, Green, Blue}

type Kind string

const (
	KindBig   Kind = "big"
	KindSmall Kind = "small"
	KindRed   Kind = "red"
	KindGreen Kind = "green"
	KindBlue  Kind = "blue"
)

// Prediction is one placed bet: the kind the player picked, the category that
// kind belongs to, and the payout multiplier the catalog assigns to it.
type Prediction struct {
	Kind       Kind     `json:"kind"`
	Category   Category `json:"category"`
	Multiplier float64  `json:"multiplier"`
}

type kindConfig struct {
	Category   Category
	Multiplier float64
}

const (
	sizeMultiplier   = 1.9
	colorMultiplier  = 2.8
	numberMultiplier = 9.0
)

var catalog = map[Kind]kindConfig{
	KindBig:   {Category: CategorySize, Multiplier: sizeMultiplier},
	KindSmall: {Category: CategorySize, Multiplier: sizeMultiplier},
	KindRed:   {Category: CategoryColor, Multiplier: colorMultiplier},
	KindGreen: {Category: CategoryColor, Multiplier: colorMultiplier},
	KindBlue:  {Category: CategoryColor, Multiplier: colorMultiplier},
	"0":       {Category: CategoryNumber, Multiplier: numberMultiplier},
	"1":       {Category: CategoryNumber, Multiplier: numberMultiplier},
	"2":       {Category: CategoryNumber, Multiplier: numberMultiplier},
	"3":       {Category: CategoryNumber, Multiplier: numberMultiplier},
	"4":       {Category: CategoryNumber, Multiplier: numberMultiplier},
	"5":       {Category: CategoryNumber, Multiplier: numberMultiplier},
	"6":       {Category: CategoryNumber, Multiplier: numberMultiplier},
	"7":       {Category: CategoryNumber, Multiplier: numberMultiplier},
	"8":       {Category: CategoryNumber, Multiplier: numberMultiplier},
	"9":       {Category: CategoryNumber, Multiplier: numberMultiplier},
}

// Lookup resolves a kind into a full prediction. The second return reports
// whether the kind exists in the catalog.
func Lookup(kind Kind) (Prediction, bool) {
	cfg, ok := catalog[kind]
	if !ok {
		return Prediction{}, false
	}

	return Prediction{
		Kind:       kind,
		Category:   cfg.Category,
		Multiplier: cfg.Multiplier,
	}, true
}

// ParseKind validates raw presentation-layer input against the catalog.
func ParseKind(s string) (Kind, error) {
	kind := Kind(s)

	if _, ok := catalog[kind]; !ok {
		return "", fmt.Errorf("unknown bet kind: %q", s)
	}

	return kind, nil
}

// KindForNumber maps a rolled number onto its exact-number bet kind.
func KindForNumber(number int) Kind {
	return Kind(fmt.Sprintf("%d", number))
}
