// Package mappings defines the Elasticsearch index bodies owned by the
// service.
package mappings

// korean text field analyzed with nori plus an ngram subfield for partial
// matching.
func koreanTextField() map[string]any {
	return map[string]any{
		"type":     "text",
		"analyzer": "nori_analyzer_simple",
		"fields": map[string]any{
			"ngram": map[string]any{
				"type":     "text",
				"analyzer": "nori_ngram_analyzer",
			},
		},
	}
}

func keywordField() map[string]any {
	return map[string]any{"type": "keyword"}
}

func floatField() map[string]any {
	return map[string]any{"type": "float"}
}

// getTourSpotSettings returns the analysis settings for the tour spot
// index: a nori tokenizer with mixed decompounding, and ngram filters
// sized separately for korean and english text.
func getTourSpotSettings() map[string]any {
	return map[string]any{
		"index": map[string]any{
			"max_ngram_diff": 2,
		},
		"analysis": map[string]any{
			"tokenizer": map[string]any{
				"nori_user_dict_tokenizer": map[string]any{
					"type":                "nori_tokenizer",
					"decompound_mode":     "mixed",
					"discard_punctuation": "false",
				},
			},
			"filter": map[string]any{
				"ngram_filter": map[string]any{
					"type":     "ngram",
					"min_gram": 2,
					"max_gram": 4,
				},
				"english_ngram_filter": map[string]any{
					"type":     "ngram",
					"min_gram": 2,
					"max_gram": 3,
				},
			},
			"analyzer": map[string]any{
				"nori_analyzer_simple": map[string]any{
					"type":      "custom",
					"tokenizer": "nori_user_dict_tokenizer",
					"filter":    []string{"nori_readingform", "trim"},
				},
				"nori_ngram_analyzer": map[string]any{
					"type":      "custom",
					"tokenizer": "nori_user_dict_tokenizer",
					"filter":    []string{"nori_readingform", "ngram_filter", "trim"},
				},
				"english_ngram_analyzer": map[string]any{
					"type":      "custom",
					"tokenizer": "standard",
					"filter":    []string{"lowercase", "english_ngram_filter", "trim"},
				},
			},
		},
	}
}

// getTourSpotFields returns the tour spot field definitions.
func getTourSpotFields() map[string]any {
	return map[string]any{
		"title":              koreanTextField(),
		"addr1":              koreanTextField(),
		"addr2":              koreanTextField(),
		"area_code":          keywordField(),
		"sigungu_code":       keywordField(),
		"content_id":         keywordField(),
		"content_type_id":    keywordField(),
		"cat1":               keywordField(),
		"cat2":               keywordField(),
		"cat3":               keywordField(),
		"created_time":       map[string]any{"type": "date", "format": "date_hour_minute_second"},
		"modified_time":      map[string]any{"type": "date", "format": "date_hour_minute_second"},
		"first_image":        keywordField(),
		"first_image2":       keywordField(),
		"tel":                keywordField(),
		"map_x":              floatField(),
		"map_y":              floatField(),
		"review_count":       floatField(),
		"rating":             floatField(),
		"avg_rating":         map[string]any{"type": "double"},
		"bookmark_count":     floatField(),
		"location":           map[string]any{"type": "geo_point"},
		"char_type":          map[string]any{"type": "integer"},
		"classified_type_id": keywordField(),
	}
}

// GetTourSpotIndexBody returns the full index body (settings and mappings)
// for the tour spot index.
func GetTourSpotIndexBody() map[string]any {
	return map[string]any{
		"settings": getTourSpotSettings(),
		"mappings": map[string]any{
			"properties": getTourSpotFields(),
		},
	}
}
