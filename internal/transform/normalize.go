// Package transform implements the record transformation chain of the
// catalog sync pipeline: field normalization, exclusion filtering,
// classification, and date normalization.
package transform

import (
	"github.com/plan4land/tourindex/internal/domain"
)

// renameTable maps provider field names to canonical snake_case names.
// Keys absent from this table keep their original name.
var renameTable = map[string]string{
	"addr1":         "addr1",
	"addr2":         "addr2",
	"areacode":      "area_code",
	"booktour":      "book_tour",
	"cat1":          "cat1",
	"cat2":          "cat2",
	"cat3":          "cat3",
	"contentid":     "content_id",
	"contenttypeid": "content_type_id",
	"createdtime":   "created_time",
	"firstimage":    "first_image",
	"firstimage2":   "first_image2",
	"cpyrhtDivCd":   "cpyrht_div_cd",
	"mapx":          "map_x",
	"mapy":          "map_y",
	"mlevel":        "m_level",
	"modifiedtime":  "modified_time",
	"sigungucode":   "sigungu_code",
	"tel":           "tel",
	"title":         "title",
	"zipcode":       "zipcode",
}

// allowedFields is the set of canonical fields retained after
// normalization. Renamed fields outside this set (book_tour, m_level,
// zipcode, cpyrht_div_cd) are excluded by omission.
var allowedFields = map[string]struct{}{
	domain.FieldAddr1:         {},
	domain.FieldAddr2:         {},
	domain.FieldAreaCode:      {},
	domain.FieldCat1:          {},
	domain.FieldCat2:          {},
	domain.FieldCat3:          {},
	domain.FieldContentID:     {},
	domain.FieldContentTypeID: {},
	domain.FieldCreatedTime:   {},
	domain.FieldFirstImage:    {},
	domain.FieldFirstImage2:   {},
	domain.FieldMapX:          {},
	domain.FieldMapY:          {},
	domain.FieldModifiedTime:  {},
	domain.FieldSigunguCode:   {},
	domain.FieldTel:           {},
	domain.FieldTitle:         {},
}

// Normalize renames a raw record's provider fields to canonical names and
// keeps only allow-listed fields, copying values verbatim. Unknown fields
// are dropped silently; missing fields are never an error.
func Normalize(raw domain.RawRecord) domain.Record {
	rec := make(domain.Record, len(allowedFields))
	for key, value := range raw {
		name := key
		if renamed, ok := renameTable[key]; ok {
			name = renamed
		}
		if _, ok := allowedFields[name]; ok {
			rec[name] = value
		}
	}
	return rec
}
