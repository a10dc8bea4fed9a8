package sentiment

import "stock-dashboard/src/models"

// -----------------------------------------------------------------------------
// Aggregate sentiment over a batch of scored headlines.
// -----------------------------------------------------------------------------

// Thresholds for the overall label. Averages within (-0.1, 0.1) are neutral.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// -----------------------------------------------------------------------------

// Summarize builds the aggregate view: average polarity, an overall label,
// and the most positive / most negative headline.
func Summarize(symbol string, results []models.MSentimentResult) models.MNewsSentimentSummary {
	summary := models.MNewsSentimentSummary{
		Symbol:  symbol,
		Count:   len(results),
		Results: results,
		Summary: "neutral",
	}

	if len(results) == 0 {
		return summary
	}

	total := 0.0
	maxIdx, minIdx := 0, 0

	for i, r := range results {
		total += r.Polarity
		if r.Polarity > results[maxIdx].Polarity {
			maxIdx = i
		}
		if r.Polarity < results[minIdx].Polarity {
			minIdx = i
		}
	}

	summary.AveragePolarity = total / float64(len(results))
	summary.MostPositive = results[maxIdx].Headline.Title
	summary.MostNegative = results[minIdx].Headline.Title

	switch {
	case summary.AveragePolarity > positiveThreshold:
		summary.Summary = "positive"
	case summary.AveragePolarity < negativeThreshold:
		summary.Summary = "negative"
	}

	return summary
}
