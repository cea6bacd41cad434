package transform

import (
	"errors"
	"fmt"
	"time"

	"github.com/plan4land/tourindex/internal/domain"
)

// Timestamp layouts: the provider emits fixed-width 14-digit stamps, the
// index expects ISO-8601 local time without a zone suffix.
const (
	sourceTimeLayout = "20060102150405"
	indexTimeLayout  = "2006-01-02T15:04:05"
)

// ErrMalformedTimestamp is returned when a date field does not match the
// 14-digit pattern or denotes an impossible calendar date.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// dateFields are the record fields carrying provider timestamps.
var dateFields = []string{domain.FieldCreatedTime, domain.FieldModifiedTime}

// NormalizeDates reparses created_time and modified_time in place from the
// provider's format into the index's format. Absent or empty fields are
// skipped; a value that fails strict parsing yields ErrMalformedTimestamp.
func NormalizeDates(rec domain.Record) error {
	for _, field := range dateFields {
		value := rec.GetString(field)
		if value == "" {
			continue
		}
		ts, err := time.Parse(sourceTimeLayout, value)
		if err != nil {
			return fmt.Errorf("%w: %s %q", ErrMalformedTimestamp, field, value)
		}
		rec[field] = ts.Format(indexTimeLayout)
	}
	return nil
}
