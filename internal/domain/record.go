// Package domain defines the record model flowing through the catalog sync
// pipeline.
package domain

import (
	"encoding/json"
	"strconv"
)

// Canonical field names used internally, independent of the source API's
// naming.
const (
	FieldAreaCode         = "area_code"
	FieldSigunguCode      = "sigungu_code"
	FieldContentID        = "content_id"
	FieldContentTypeID    = "content_type_id"
	FieldTitle            = "title"
	FieldAddr1            = "addr1"
	FieldAddr2            = "addr2"
	FieldMapX             = "map_x"
	FieldMapY             = "map_y"
	FieldCreatedTime      = "created_time"
	FieldModifiedTime     = "modified_time"
	FieldTel              = "tel"
	FieldFirstImage       = "first_image"
	FieldFirstImage2      = "first_image2"
	FieldCat1             = "cat1"
	FieldCat2             = "cat2"
	FieldCat3             = "cat3"
	FieldCharType         = "char_type"
	FieldLocation         = "location"
	FieldClassifiedTypeID = "classified_type_id"
)

// CharType classifies the writing system of a title's first character.
type CharType int

// CharType values.
const (
	CharTypeHangul CharType = 0
	CharTypeLatin  CharType = 1
	CharTypeDigit  CharType = 2
	CharTypeOther  CharType = 3
)

// RawRecord is one item of a catalog source API page. The shape is
// provider-controlled: field names use the provider's casing, optional
// fields may be absent, and values may arrive as strings or numbers.
type RawRecord map[string]any

// Record is a catalog record keyed by canonical field names. After
// normalization it contains only allow-listed fields; enrichment adds the
// derived char_type, location, and classified_type_id fields. Fields a
// record does not have are absent, never null-filled.
type Record map[string]any

// GeoPoint is the geo_point document value built from a record's
// coordinates.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GetString returns the record's value for key rendered as a string.
// Numeric JSON values are formatted without a decimal point where possible,
// so a provider-side 0 compares equal to "0". Absent fields yield "".
func (r Record) GetString(key string) string {
	return stringValue(r[key])
}

// ContentID returns the record's unique external identifier, or "" if the
// record has none.
func (r Record) ContentID() string {
	return r.GetString(FieldContentID)
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
