package interfaces

import "stock-dashboard/src/models"

// -----------------------------------------------------------------------------
// ISentiment is the capability interface for headline sentiment scoring.
// Implementations are stateless pure functions of the input text so a
// lexicon backend and a pretrained-model backend are interchangeable.
// -----------------------------------------------------------------------------

type ISentiment interface {

	// Score returns a polarity in [-1, 1] and a confidence in [0, 1]
	// for the given headline.
	Score(headline models.MHeadline) models.MSentimentResult
}
