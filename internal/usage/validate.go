package usage

import (
	"fmt"
	"math"
)

const (
	// MinRecords is the smallest record count worth analyzing.
	MinRecords = 100
	// MinDays is the shortest observed span worth analyzing.
	MinDays = 7
)

// ValidateUsageData checks that parsed data covers enough records and enough
// calendar days for a meaningful comparison. It is a pure predicate: the
// record-count check runs first, then the date-range check, and any failure
// is returned as a *ValidationError.
func ValidateUsageData(data *ParsedUsageData) error {
	if len(data.Records) < MinRecords {
		return &ValidationError{
			Kind:          ValidationInsufficientRecords,
			Message:       fmt.Sprintf("File contains only %d records. For accurate analysis, we recommend at least 1 month of data.", len(data.Records)),
			MessageHebrew: fmt.Sprintf("הקובץ מכיל רק %d רשומות. לניתוח מדויק, מומלץ להעלות לפחות חודש של נתונים.", len(data.Records)),
		}
	}

	days := int(math.Ceil(data.EndDate.Sub(data.StartDate.Time).Hours() / 24))
	if days < MinDays {
		return &ValidationError{
			Kind:          ValidationInsufficientDateRange,
			Message:       fmt.Sprintf("File contains only %d days of data. For accurate analysis, we recommend at least 1 month of data.", days),
			MessageHebrew: fmt.Sprintf("הקובץ מכיל רק %d ימים של נתונים. לניתוח מדויק, מומלץ להעלות לפחות חודש של נתונים.", days),
		}
	}

	return nil
}
