// Package recommend ranks candidate destinations using the external
// scorer service. The model itself is a consumed black box: one feature
// row in, one probability vector per rating class out.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/plan4land/tourindex/internal/logger"
)

const defaultScorerTimeout = 10 * time.Second

// Profile holds the traveler features shared by every scored row. Field
// names follow the scorer's feature contract.
type Profile struct {
	Gender           string `json:"GENDER"                yaml:"gender"`
	AgeGroup         string `json:"AGE_GRP"               yaml:"age_group"`
	TravelStyle1     string `json:"TRAVEL_STYL_1"         yaml:"travel_style_1"`
	TravelStyle2     string `json:"TRAVEL_STYL_2"         yaml:"travel_style_2"`
	TravelStyle3     string `json:"TRAVEL_STYL_3"         yaml:"travel_style_3"`
	TravelStyle4     string `json:"TRAVEL_STYL_4"         yaml:"travel_style_4"`
	TravelStyle5     string `json:"TRAVEL_STYL_5"         yaml:"travel_style_5"`
	TravelStyle6     string `json:"TRAVEL_STYL_6"         yaml:"travel_style_6"`
	TravelStyle7     string `json:"TRAVEL_STYL_7"         yaml:"travel_style_7"`
	TravelStyle8     string `json:"TRAVEL_STYL_8"         yaml:"travel_style_8"`
	TravelMotive     string `json:"TRAVEL_MOTIVE_1"       yaml:"travel_motive"`
	CompanionsNumber string `json:"TRAVEL_COMPANIONS_NUM" yaml:"companions_number"`
	MissionInterest  string `json:"TRAVEL_MISSION_INT"    yaml:"mission_interest"`
}

// Candidate is one destination eligible for recommendation.
type Candidate struct {
	Name         string `json:"name"           yaml:"name"`
	AreaTypeCode string `json:"area_type_code" yaml:"area_type_code"`
	NameCode     string `json:"name_code"      yaml:"name_code"`
}

// FeatureRow is one scorer input row: the traveler profile extended with
// the candidate's destination features.
type FeatureRow struct {
	Profile
	VisitAreaTypeCode string `json:"VISIT_AREA_TYPE_CD"`
	VisitAreaNameCode string `json:"VISIT_AREA_NM_CODE"`
}

// Scorer returns one probability vector per feature row.
type Scorer interface {
	Score(ctx context.Context, rows []FeatureRow) ([][]float64, error)
}

// Client is the HTTP client for the scorer service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.Logger
}

// NewClient creates a new scorer client.
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultScorerTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     log,
	}
}

// Score sends the feature rows to the scorer and returns its probability
// vectors, one per row, in input order.
func (c *Client) Score(ctx context.Context, rows []FeatureRow) ([][]float64, error) {
	payload, err := json.Marshal(map[string]any{"rows": rows})
	if err != nil {
		return nil, fmt.Errorf("marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("score request failed: %w", err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close score response body", logger.Error(closeErr))
		}
	}()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("scorer returned status %d: %s", res.StatusCode, string(body))
	}

	var scoreRes struct {
		Probabilities [][]float64 `json:"probabilities"`
	}
	if decodeErr := json.NewDecoder(res.Body).Decode(&scoreRes); decodeErr != nil {
		return nil, fmt.Errorf("decode score response: %w", decodeErr)
	}

	if len(scoreRes.Probabilities) != len(rows) {
		return nil, fmt.Errorf("scorer returned %d vectors for %d rows", len(scoreRes.Probabilities), len(rows))
	}

	return scoreRes.Probabilities, nil
}
