package sentiment

import (
	"strings"
	"unicode"

	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// LexiconScorer scores headlines with a weighted financial word list.
// Stateless and pure: interchangeable with a pretrained-model backend
// through the ISentiment interface.
// -----------------------------------------------------------------------------

type LexiconScorer struct{}

var _ interfaces.ISentiment = (*LexiconScorer)(nil)

// -----------------------------------------------------------------------------

func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{}
}

// -----------------------------------------------------------------------------

// Word weights in [-1, 1]. Tuned for financial headlines.
var lexicon = map[string]float64{
	// positive
	"gain": 0.6, "gains": 0.6, "rally": 0.7, "rallies": 0.7, "surge": 0.8,
	"surges": 0.8, "soar": 0.8, "soars": 0.8, "jump": 0.6, "jumps": 0.6,
	"rise": 0.5, "rises": 0.5, "up": 0.3, "high": 0.4, "higher": 0.4,
	"record": 0.5, "beat": 0.6, "beats": 0.6, "strong": 0.5, "growth": 0.5,
	"profit": 0.6, "profits": 0.6, "upgrade": 0.7, "upgrades": 0.7,
	"bullish": 0.8, "outperform": 0.7, "buy": 0.4, "win": 0.5, "wins": 0.5,
	"positive": 0.5, "optimistic": 0.6, "boom": 0.7, "recovery": 0.5,
	// negative
	"loss": -0.6, "losses": -0.6, "fall": -0.5, "falls": -0.5, "drop": -0.6,
	"drops": -0.6, "plunge": -0.8, "plunges": -0.8, "crash": -0.9,
	"crashes": -0.9, "tumble": -0.7, "tumbles": -0.7, "slump": -0.7,
	"slumps": -0.7, "down": -0.3, "low": -0.4, "lower": -0.4, "weak": -0.5,
	"miss": -0.6, "misses": -0.6, "downgrade": -0.7, "downgrades": -0.7,
	"bearish": -0.8, "underperform": -0.7, "sell": -0.4, "selloff": -0.7,
	"lawsuit": -0.6, "fraud": -0.9, "bankruptcy": -0.9, "recession": -0.7,
	"negative": -0.5, "fears": -0.6, "fear": -0.6, "warns": -0.5,
	"warning": -0.5, "cuts": -0.5, "cut": -0.4, "decline": -0.5,
	"declines": -0.5, "risk": -0.3, "crisis": -0.7,
}

// Negators flip the sign of the next sentiment-bearing word.
var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "without": {},
}

// -----------------------------------------------------------------------------

// Score returns the lexicon polarity in [-1, 1] and a confidence in [0, 1]
// proportional to how much of the headline the lexicon covered.
func (s *LexiconScorer) Score(headline models.MHeadline) models.MSentimentResult {
	tokens := tokenize(headline.Title)

	sum := 0.0
	matched := 0
	negate := false

	for _, tok := range tokens {
		if _, ok := negators[tok]; ok {
			negate = true
			continue
		}

		weight, ok := lexicon[tok]
		if !ok {
			continue
		}

		if negate {
			weight = -weight
			negate = false
		}

		sum += weight
		matched++
	}

	polarity := 0.0
	confidence := 0.0

	if matched > 0 {
		polarity = clamp(sum/float64(matched), -1, 1)
		confidence = clamp(float64(matched)/float64(len(tokens)), 0, 1)
	}

	return models.MSentimentResult{
		Headline:   headline,
		Polarity:   polarity,
		Confidence: confidence,
	}
}

// -----------------------------------------------------------------------------

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// -----------------------------------------------------------------------------

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
