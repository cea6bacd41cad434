package tourapi

import (
	"encoding/json"

	"github.com/plan4land/tourindex/internal/domain"
)

// Page is one page of the catalog listing.
type Page struct {
	PageNo     int
	TotalCount int
	Items      []domain.RawRecord
}

// ListOptions narrows a listing request.
type ListOptions struct {
	// ModifiedDate restricts results to records whose provider-side
	// modification date equals this value (YYYYMMDD). Empty means no
	// time filter.
	ModifiedDate string
}

// envelope mirrors the provider's response wrapper. The items element is
// kept raw because the provider renders an empty page as "" and a
// single-item page as a bare object instead of an array.
type envelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items      json.RawMessage `json:"items"`
			NumOfRows  int             `json:"numOfRows"`
			PageNo     int             `json:"pageNo"`
			TotalCount int             `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}
