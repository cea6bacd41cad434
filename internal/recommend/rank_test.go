package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeScorer struct {
	vectors [][]float64
	gotRows []FeatureRow
	err     error
}

func (s *fakeScorer) Score(_ context.Context, rows []FeatureRow) ([][]float64, error) {
	s.gotRows = rows
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors, nil
}

func testProfile() Profile {
	return Profile{
		Gender:           "여",
		AgeGroup:         "20",
		TravelStyle1:     "3",
		TravelMotive:     "8",
		CompanionsNumber: "2",
		MissionInterest:  "3",
	}
}

func TestRank(t *testing.T) {
	candidates := []Candidate{
		{Name: "경복궁", AreaTypeCode: "1", NameCode: "101"},
		{Name: "남산타워", AreaTypeCode: "2", NameCode: "102"},
		{Name: "한라산", AreaTypeCode: "3", NameCode: "103"},
	}
	scorer := &fakeScorer{vectors: [][]float64{
		{0.05, 0.05, 0.05, 0.05, 0.80},
		{0.10, 0.10, 0.10, 0.30, 0.40},
		{0.02, 0.03, 0.02, 0.03, 0.90},
	}}

	got, err := Rank(context.Background(), scorer, testProfile(), candidates, 0.7, 10)
	require.NoError(t, err)

	// Below-threshold candidates are dropped, the rest sorted by
	// descending top-rating probability.
	require.Equal(t, []Recommendation{
		{Name: "한라산", Probability: 0.90},
		{Name: "경복궁", Probability: 0.80},
	}, got)

	require.Len(t, scorer.gotRows, 3)
	require.Equal(t, "1", scorer.gotRows[0].VisitAreaTypeCode)
	require.Equal(t, "101", scorer.gotRows[0].VisitAreaNameCode)
	require.Equal(t, "여", scorer.gotRows[0].Gender)
}

func TestRankTruncatesToTopN(t *testing.T) {
	candidates := []Candidate{
		{Name: "a"}, {Name: "b"}, {Name: "c"},
	}
	scorer := &fakeScorer{vectors: [][]float64{
		{0, 0, 0, 0, 0.75},
		{0, 0, 0, 0, 0.95},
		{0, 0, 0, 0, 0.85},
	}}

	got, err := Rank(context.Background(), scorer, testProfile(), candidates, 0.7, 2)
	require.NoError(t, err)

	require.Equal(t, []Recommendation{
		{Name: "b", Probability: 0.95},
		{Name: "c", Probability: 0.85},
	}, got)
}

func TestRankNoCandidates(t *testing.T) {
	got, err := Rank(context.Background(), &fakeScorer{}, testProfile(), nil, 0.7, 10)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRankScorerError(t *testing.T) {
	scorer := &fakeScorer{err: errors.New("model not loaded")}

	_, err := Rank(context.Background(), scorer, testProfile(), []Candidate{{Name: "a"}}, 0.7, 10)
	require.Error(t, err)
}

func TestRankShortProbabilityVector(t *testing.T) {
	scorer := &fakeScorer{vectors: [][]float64{{0.5, 0.5}}}

	_, err := Rank(context.Background(), scorer, testProfile(), []Candidate{{Name: "a"}}, 0.7, 10)
	require.Error(t, err)
	require.Contains(t, err.Error(), "classes")
}
