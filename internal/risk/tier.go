package risk

// Label is the human-readable severity band of a risk score.
type Label int

const (
	// Safe covers scores up to and including 20.
	Safe Label = iota
	// Caution covers scores in (20, 40].
	Caution
	// Risky covers scores in (40, 60].
	Risky
	// Dangerous covers scores in (60, 80].
	Dangerous
	// HighlyDangerous covers everything above 80.
	HighlyDangerous
)

// String returns the label as displayed in the popup.
func (l Label) String() string {
	switch l {
	case Safe:
		return "Safe"
	case Caution:
		return "Caution"
	case Risky:
		return "Risky"
	case Dangerous:
		return "Dangerous"
	case HighlyDangerous:
		return "Highly Dangerous"
	default:
		return "Unknown"
	}
}

// Tier colours, used for the popup border and the label text.
const (
	ColorSafe            = "#28a745"
	ColorCaution         = "#ffc107"
	ColorRisky           = "#fd7e14"
	ColorDangerous       = "#dc3545"
	ColorHighlyDangerous = "#8b0000"
)

// Tier is the presentation derived from a risk score. It is never stored.
type Tier struct {
	// Color is a CSS hex colour.
	Color string `json:"color"`

	// Label is the severity band.
	Label Label `json:"label"`
}

// tierBound pairs an inclusive upper bound with the tier it selects.
type tierBound struct {
	max  int
	tier Tier
}

// bounds must stay sorted by max. Anything above the last bound is
// HighlyDangerous.
var bounds = []tierBound{
	{max: 20, tier: Tier{Color: ColorSafe, Label: Safe}},
	{max: 40, tier: Tier{Color: ColorCaution, Label: Caution}},
	{max: 60, tier: Tier{Color: ColorRisky, Label: Risky}},
	{max: 80, tier: Tier{Color: ColorDangerous, Label: Dangerous}},
}

// Classify returns the tier for riskPercent. Negative values are Safe and
// values above 100 are HighlyDangerous.
func Classify(riskPercent int) Tier {
	for _, b := range bounds {
		if riskPercent <= b.max {
			return b.tier
		}
	}
	return Tier{Color: ColorHighlyDangerous, Label: HighlyDangerous}
}
