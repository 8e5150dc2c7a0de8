package transforming

import (
	"strings"
	"time"

	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/pkg/utils"
)

func text(r domain.RawRecord, name string) string {
	return strings.TrimSpace(utils.ToString(r.Field(name)))
}

// count reads a non-negative integer metric; absent or malformed is zero.
func count(r domain.RawRecord, name string) int64 {
	return utils.ToInt(r.Field(name))
}

// amount reads currency values that may carry symbols or separators.
func amount(r domain.RawRecord, name string) float64 {
	value := r.Field(name)
	if s, ok := value.(string); ok {
		value = utils.StripNumeric(s)
	}
	return utils.ToFloat(value)
}

func day(r domain.RawRecord, name string) time.Time {
	t, ok := utils.ParseAnyDate(r.Field(name))
	if !ok {
		return time.Time{}
	}
	return utils.DateOnly(t)
}

// recordDate prefers the record's own day, falling back to a native field.
func recordDate(r domain.RawRecord, field string) time.Time {
	if t, ok := utils.ParseAnyDate(r.Date); ok {
		return utils.DateOnly(t)
	}
	return day(r, field)
}

// requireFields reports the required native fields absent from any record.
func requireFields(platform domain.Platform, records []domain.RawRecord, required ...string) error {
	var missing []string
	for _, name := range required {
		for _, record := range records {
			if !record.Has(name) {
				missing = append(missing, name)
				break
			}
		}
	}
	if len(missing) > 0 {
		return &domain.SchemaMismatchError{Platform: platform, Missing: missing}
	}
	return nil
}

func accountName(r domain.RawRecord) string {
	if r.AccountName != "" {
		return r.AccountName
	}
	return text(r, "account_name")
}
