package recommend

import (
	"context"
	"fmt"
	"sort"
)

// topRatingClass is the index of the 5.0 rating class in the scorer's
// probability vector.
const topRatingClass = 4

// Default ranking parameters.
const (
	DefaultThreshold = 0.7
	DefaultTopN      = 10
)

// Recommendation pairs a destination with its probability of the top
// rating class.
type Recommendation struct {
	Name        string
	Probability float64
}

// Rank scores every candidate for the traveler profile and returns the
// top N destinations whose top-rating probability meets the threshold,
// ordered by descending probability.
func Rank(
	ctx context.Context,
	scorer Scorer,
	profile Profile,
	candidates []Candidate,
	threshold float64,
	topN int,
) ([]Recommendation, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	rows := make([]FeatureRow, 0, len(candidates))
	for _, candidate := range candidates {
		rows = append(rows, FeatureRow{
			Profile:           profile,
			VisitAreaTypeCode: candidate.AreaTypeCode,
			VisitAreaNameCode: candidate.NameCode,
		})
	}

	probabilities, err := scorer.Score(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("score candidates: %w", err)
	}

	recommendations := make([]Recommendation, 0, len(candidates))
	for i, vector := range probabilities {
		if len(vector) <= topRatingClass {
			return nil, fmt.Errorf("probability vector for %q has %d classes", candidates[i].Name, len(vector))
		}
		probability := vector[topRatingClass]
		if probability >= threshold {
			recommendations = append(recommendations, Recommendation{
				Name:        candidates[i].Name,
				Probability: probability,
			})
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Probability > recommendations[j].Probability
	})

	if len(recommendations) > topN {
		recommendations = recommendations[:topN]
	}
	return recommendations, nil
}
