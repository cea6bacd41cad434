package mappings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetTourSpotIndexBody(t *testing.T) {
	body := GetTourSpotIndexBody()

	// The full body has to serialize cleanly for the create-index request.
	_, err := json.Marshal(body)
	require.NoError(t, err)

	mappings, ok := body["mappings"].(map[string]any)
	require.True(t, ok)
	properties, ok := mappings["properties"].(map[string]any)
	require.True(t, ok)

	location, ok := properties["location"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "geo_point", location["type"])

	charType, ok := properties["char_type"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "integer", charType["type"])

	classified, ok := properties["classified_type_id"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "keyword", classified["type"])

	modified, ok := properties["modified_time"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "date", modified["type"])
	require.Equal(t, "date_hour_minute_second", modified["format"])

	title, ok := properties["title"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "nori_analyzer_simple", title["analyzer"])
}

func TestGetTourSpotIndexBodyAnalyzers(t *testing.T) {
	body := GetTourSpotIndexBody()

	settings := body["settings"].(map[string]any)
	analysis := settings["analysis"].(map[string]any)
	analyzers := analysis["analyzer"].(map[string]any)

	require.Contains(t, analyzers, "nori_analyzer_simple")
	require.Contains(t, analyzers, "nori_ngram_analyzer")
	require.Contains(t, analyzers, "english_ngram_analyzer")

	filters := analysis["filter"].(map[string]any)
	ngram := filters["ngram_filter"].(map[string]any)
	require.Equal(t, 2, ngram["min_gram"])
	require.Equal(t, 4, ngram["max_gram"])
}
