package transform

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/plan4land/tourindex/internal/domain"
)

// ErrBadCoordinates is returned when a record's map_x/map_y values cannot
// be parsed as floats.
var ErrBadCoordinates = errors.New("unparseable coordinates")

// contentTypeTable maps provider content type ids to coarse category
// codes. Content types outside this table get no classified_type_id.
var contentTypeTable = map[string]string{
	"12": "100",
	"14": "100",
	"25": "100",
	"28": "100",
	"38": "100",
	"32": "200",
	"39": "300",
}

// Hangul syllables Unicode block.
const (
	hangulSyllableFirst = '가'
	hangulSyllableLast  = '힣'
)

// ClassifyTitle returns the writing-system category of the title's first
// character. Only the first rune is inspected; an empty title classifies
// as other.
func ClassifyTitle(title string) domain.CharType {
	if title == "" {
		return domain.CharTypeOther
	}
	r, _ := utf8.DecodeRuneInString(title)
	switch {
	case r >= hangulSyllableFirst && r <= hangulSyllableLast:
		return domain.CharTypeHangul
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		return domain.CharTypeLatin
	case r >= '0' && r <= '9':
		return domain.CharTypeDigit
	default:
		return domain.CharTypeOther
	}
}

// ClassifyContentType looks up the coarse category code for a provider
// content type id. The second return value reports whether the id is in
// the table.
func ClassifyContentType(contentTypeID string) (string, bool) {
	code, ok := contentTypeTable[contentTypeID]
	return code, ok
}

// Enrich adds the derived fields to a normalized record: char_type from
// the title, the location geo-point from its coordinates, and
// classified_type_id when the content type is mapped. An unmapped content
// type leaves the field absent rather than defaulted.
func Enrich(rec domain.Record) error {
	rec[domain.FieldCharType] = ClassifyTitle(rec.GetString(domain.FieldTitle))

	location, err := buildLocation(rec)
	if err != nil {
		return err
	}
	rec[domain.FieldLocation] = location

	if code, ok := ClassifyContentType(rec.GetString(domain.FieldContentTypeID)); ok {
		rec[domain.FieldClassifiedTypeID] = code
	}
	return nil
}

// buildLocation composes the geo-point: map_y carries the latitude and
// map_x the longitude in the provider's coordinate naming.
func buildLocation(rec domain.Record) (domain.GeoPoint, error) {
	lat, err := strconv.ParseFloat(rec.GetString(domain.FieldMapY), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: map_y %q", ErrBadCoordinates, rec.GetString(domain.FieldMapY))
	}
	lon, err := strconv.ParseFloat(rec.GetString(domain.FieldMapX), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: map_x %q", ErrBadCoordinates, rec.GetString(domain.FieldMapX))
	}
	return domain.GeoPoint{Lat: lat, Lon: lon}, nil
}
