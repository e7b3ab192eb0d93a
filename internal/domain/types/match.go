package types

type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchOnTheWay MatchType = "on_the_way"
	MatchPartial  MatchType = "partial"
	MatchNone     MatchType = "none"
)

// Score returns the ranking score of a match tier.
func (m MatchType) Score() int {
	switch m {
	case MatchExact:
		return 100
	case MatchOnTheWay:
		return 85
	case MatchPartial:
		return 60
	default:
		return 0
	}
}

// DistanceSource names where a trip distance came from.
type DistanceSource string

const (
	SourceOverride DistanceSource = "override"
	SourceLive     DistanceSource = "live"
	SourceRoute    DistanceSource = "route"
	SourceSupplied DistanceSource = "supplied"
	SourceCorridor DistanceSource = "corridor"
	SourceDefault  DistanceSource = "default"
)
