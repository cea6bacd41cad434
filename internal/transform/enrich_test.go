package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plan4land/tourindex/internal/domain"
)

func TestClassifyTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  domain.CharType
	}{
		{"hangul", "경복궁", domain.CharTypeHangul},
		{"hangul first rune only", "서울 Tower 123", domain.CharTypeHangul},
		{"latin lower", "namsan park", domain.CharTypeLatin},
		{"latin upper", "N Seoul Tower", domain.CharTypeLatin},
		{"digit", "63빌딩", domain.CharTypeDigit},
		{"punctuation", "(구)서울역", domain.CharTypeOther},
		{"empty", "", domain.CharTypeOther},
		{"hangul block bounds low", "가나다", domain.CharTypeHangul},
		{"hangul block bounds high", "힣", domain.CharTypeHangul},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ClassifyTitle(tt.title))
		})
	}
}

func TestClassifyContentType(t *testing.T) {
	tests := []struct {
		contentTypeID string
		want          string
		mapped        bool
	}{
		{"12", "100", true},
		{"14", "100", true},
		{"25", "100", true},
		{"28", "100", true},
		{"38", "100", true},
		{"32", "200", true},
		{"39", "300", true},
		{"15", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentTypeID, func(t *testing.T) {
			code, ok := ClassifyContentType(tt.contentTypeID)
			require.Equal(t, tt.mapped, ok)
			require.Equal(t, tt.want, code)
		})
	}
}

func TestEnrich(t *testing.T) {
	rec := domain.Record{
		domain.FieldTitle:         "경복궁",
		domain.FieldMapX:          "126.9770",
		domain.FieldMapY:          "37.5796",
		domain.FieldContentTypeID: "12",
	}

	require.NoError(t, Enrich(rec))

	require.Equal(t, domain.CharTypeHangul, rec[domain.FieldCharType])
	require.Equal(t, domain.GeoPoint{Lat: 37.5796, Lon: 126.9770}, rec[domain.FieldLocation])
	require.Equal(t, "100", rec[domain.FieldClassifiedTypeID])
}

func TestEnrichUnmappedContentType(t *testing.T) {
	rec := domain.Record{
		domain.FieldTitle:         "Some Shop",
		domain.FieldMapX:          "127.0",
		domain.FieldMapY:          "37.0",
		domain.FieldContentTypeID: "99",
	}

	require.NoError(t, Enrich(rec))

	_, present := rec[domain.FieldClassifiedTypeID]
	require.False(t, present)
}

func TestEnrichBadCoordinates(t *testing.T) {
	tests := []struct {
		name string
		rec  domain.Record
	}{
		{"unparseable map_y", domain.Record{domain.FieldMapY: "north", domain.FieldMapX: "127.0"}},
		{"unparseable map_x", domain.Record{domain.FieldMapY: "37.0", domain.FieldMapX: "east"}},
		{"missing coordinates", domain.Record{domain.FieldTitle: "좌표없음"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Enrich(tt.rec)
			require.ErrorIs(t, err, ErrBadCoordinates)
		})
	}
}
