package models

import "time"

// MHeadline represents a news headline fetched from the news provider.
type MHeadline struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// -----------------------------------------------------------------------------

// MSentimentResult annotates a headline with a polarity score in [-1, 1]
// and a confidence value in [0, 1]. Derived, not persisted.
type MSentimentResult struct {
	Headline   MHeadline `json:"headline"`
	Polarity   float64   `json:"polarity"`
	Confidence float64   `json:"confidence"`
}

// -----------------------------------------------------------------------------

// MNewsSentimentSummary aggregates sentiment over a batch of headlines.
type MNewsSentimentSummary struct {
	Symbol          string             `json:"symbol"`
	Count           int                `json:"count"`
	Results         []MSentimentResult `json:"results"`
	AveragePolarity float64            `json:"average_sentiment"`
	Summary         string             `json:"summary"` // "positive", "negative" or "neutral"
	MostPositive    string             `json:"most_positive,omitempty"`
	MostNegative    string             `json:"most_negative,omitempty"`
}
