package transform

import (
	"github.com/plan4land/tourindex/internal/domain"
)

// Deny-list literals for records that must not reach the index.
const (
	// placeholderSigunguCode marks records filed under the provider's
	// catch-all district.
	placeholderSigunguCode = "99"
	// zeroLongitude marks records without a real coordinate.
	zeroLongitude = "0"
	// excludedContentTypeID is the travel-course content type, which is
	// not indexed.
	excludedContentTypeID = "15"
)

// Excluded reports whether a normalized record matches any deny-list
// condition. It is evaluated before classification so excluded records do
// not pay for enrichment.
func Excluded(rec domain.Record) bool {
	return rec.GetString(domain.FieldSigunguCode) == placeholderSigunguCode ||
		rec.GetString(domain.FieldMapX) == zeroLongitude ||
		rec.GetString(domain.FieldContentTypeID) == excludedContentTypeID
}
