package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plan4land/tourindex/internal/logger"
)

func TestClientScore(t *testing.T) {
	var gotPath string
	var gotBody map[string][]map[string]any
	var decodeErr error

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		decodeErr = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"probabilities":[[0.1,0.1,0.1,0.1,0.6],[0.2,0.2,0.2,0.2,0.2]]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0, logger.NewNop())

	rows := []FeatureRow{
		{Profile: testProfile(), VisitAreaTypeCode: "1", VisitAreaNameCode: "101"},
		{Profile: testProfile(), VisitAreaTypeCode: "2", VisitAreaNameCode: "102"},
	}
	vectors, err := client.Score(context.Background(), rows)
	require.NoError(t, err)

	require.Equal(t, "/predict", gotPath)
	require.NoError(t, decodeErr)
	require.Len(t, gotBody["rows"], 2)
	require.Equal(t, "여", gotBody["rows"][0]["GENDER"])
	require.Equal(t, "1", gotBody["rows"][0]["VISIT_AREA_TYPE_CD"])

	require.Equal(t, [][]float64{{0.1, 0.1, 0.1, 0.1, 0.6}, {0.2, 0.2, 0.2, 0.2, 0.2}}, vectors)
}

func TestClientScoreCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"probabilities":[[0.1,0.1,0.1,0.1,0.6]]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0, logger.NewNop())

	rows := []FeatureRow{
		{Profile: testProfile()},
		{Profile: testProfile()},
	}
	_, err := client.Score(context.Background(), rows)
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 vectors for 2 rows")
}

func TestClientScoreServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0, logger.NewNop())

	_, err := client.Score(context.Background(), []FeatureRow{{Profile: testProfile()}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 500")
}
