package agent

// Tuning holds the weights behind the heuristic tiers.
type Tuning struct {
	// EasyHeuristicRate is the chance the easy tier plays the cheapest beating
	// card instead of a random legal one.
	EasyHeuristicRate float64

	CucumberWeight float64 // per cucumber on the played card
	KeepHighWeight float64 // per high card still held after the play
	BeatBonus      float64 // for taking the field
	MarginWeight   float64 // per point the play overshoots the field

	// HighCard is the lowest value that counts as high. Playing one when at
	// most ScarceHighCards high cards remain unseen costs ScarcityPenalty.
	HighCard        int
	ScarceHighCards int
	ScarcityPenalty float64

	// NormalSlack widens the set of near-best candidates the normal tier picks from.
	NormalSlack float64
}

// DefaultTuning is used unless WithTuning overrides it.
var DefaultTuning = Tuning{
	EasyHeuristicRate: 0.2,

	CucumberWeight: 1.0,
	KeepHighWeight: 0.6,
	BeatBonus:      1.5,
	MarginWeight:   0.25,

	HighCard:        12,
	ScarceHighCards: 4,
	ScarcityPenalty: 8.0,

	NormalSlack: 0.35,
}
