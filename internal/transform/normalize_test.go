package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plan4land/tourindex/internal/domain"
)

func TestNormalizeRenamesProviderFields(t *testing.T) {
	raw := domain.RawRecord{
		"contentid":     "126508",
		"contenttypeid": "12",
		"areacode":      "1",
		"sigungucode":   "24",
		"mapx":          "126.9816417",
		"mapy":          "37.5793545",
		"createdtime":   "20230615143000",
		"modifiedtime":  "20240101120000",
		"firstimage":    "http://example.com/a.jpg",
		"title":         "경복궁",
	}

	rec := Normalize(raw)

	require.Equal(t, "126508", rec.GetString(domain.FieldContentID))
	require.Equal(t, "12", rec.GetString(domain.FieldContentTypeID))
	require.Equal(t, "1", rec.GetString(domain.FieldAreaCode))
	require.Equal(t, "24", rec.GetString(domain.FieldSigunguCode))
	require.Equal(t, "126.9816417", rec.GetString(domain.FieldMapX))
	require.Equal(t, "37.5793545", rec.GetString(domain.FieldMapY))
	require.Equal(t, "http://example.com/a.jpg", rec.GetString(domain.FieldFirstImage))
	require.Equal(t, "경복궁", rec.GetString(domain.FieldTitle))
}

func TestNormalizeOutputKeysSubsetOfAllowSet(t *testing.T) {
	raw := domain.RawRecord{
		"contentid":   "1",
		"title":       "t",
		"zipcode":     "03045",
		"booktour":    "0",
		"mlevel":      "6",
		"cpyrhtDivCd": "Type3",
		"unknown_key": "x",
		"addr1":       "서울특별시 종로구",
	}

	rec := Normalize(raw)

	for key := range rec {
		_, allowed := allowedFields[key]
		require.True(t, allowed, "unexpected key %q in normalized record", key)
	}
}

func TestNormalizeDropsRenamedButDisallowedFields(t *testing.T) {
	raw := domain.RawRecord{
		"zipcode":     "03045",
		"booktour":    "0",
		"mlevel":      "6",
		"cpyrhtDivCd": "Type3",
	}

	rec := Normalize(raw)
	require.Empty(t, rec)
}

func TestNormalizeMissingFieldsAreAbsent(t *testing.T) {
	rec := Normalize(domain.RawRecord{"contentid": "1"})

	require.Len(t, rec, 1)
	_, hasTitle := rec[domain.FieldTitle]
	require.False(t, hasTitle, "missing fields must stay absent, not null-filled")
}
