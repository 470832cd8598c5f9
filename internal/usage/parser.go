package usage

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	dateRe   = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	timeRe   = regexp.MustCompile(`^\d{2}:\d{2}$`)
	digitsRe = regexp.MustCompile(`^\d+$`)
)

// cleanCell strips surrounding quotes and whitespace from a CSV cell.
func cleanCell(s string) string {
	return strings.TrimSpace(strings.Trim(s, `"' 	`))
}

// parseRecordDate parses the IEC export's DD/MM/YYYY date format.
func parseRecordDate(s string) (Date, error) {
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return Date{}, err
	}
	return Date{t.UTC()}, nil
}

// parseKwh parses a usage value with either a dot or a comma decimal
// separator. Non-numeric cells count as zero usage.
func parseKwh(s string) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

func containsHebrew(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hebrew, r) {
			return true
		}
	}
	return false
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return cleanCell(row[i])
	}
	return ""
}

// ParseUsageCSV converts a raw IEC smart-meter CSV export into a
// ParsedUsageData. The file layout is semi-structured: an arbitrary block
// of metadata rows, one header row, then pure data rows. All failures are
// returned as *ParseError values; the parser never panics into the caller.
func ParseUsageCSV(text string) (data *ParsedUsageData, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = &ParseError{
				Kind:          ParseUnknownFailure,
				Message:       fmt.Sprintf("Error parsing file: %v", r),
				MessageHebrew: fmt.Sprintf("שגיאה בעיבוד הקובץ: %v", r),
			}
		}
	}()

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, readErr := reader.ReadAll()
	if readErr != nil {
		return nil, &ParseError{
			Kind:          ParseMalformedCsv,
			Message:       fmt.Sprintf("CSV parsing error: %v", readErr),
			MessageHebrew: fmt.Sprintf("שגיאה בקריאת הקובץ: %v", readErr),
		}
	}

	if len(rows) < 10 {
		return nil, &ParseError{
			Kind:          ParseMalformedCsv,
			Message:       "File too short - does not appear to be a valid IEC usage file",
			MessageHebrew: "הקובץ קצר מדי - לא נראה כקובץ צריכה תקין של חברת החשמל",
		}
	}

	// Scan the leading rows for customer and meter metadata. Their position
	// is not fixed, so every candidate row in the first ten is inspected.
	var customerName, address, meterCode, meterNumber, contractNumber string
	for i := 0; i < 10 && i < len(rows); i++ {
		row := rows[i]
		if len(row) < 2 {
			continue
		}
		first := cleanCell(row[0])
		second := cleanCell(row[1])

		// Literal header labels are captions, not values.
		if first == "שם לקוח" || strings.EqualFold(first, "customer name") {
			continue
		}
		if first == "קוד מונה" || strings.EqualFold(first, "meter code") {
			continue
		}
		// The data-section header can sit inside the metadata block; its
		// column captions are not a customer row.
		if strings.Contains(first, "תאריך") || strings.EqualFold(first, "date") {
			continue
		}

		if first != "" && containsHebrew(first) && second != "" {
			customerName = first
			address = second
		}

		if digitsRe.MatchString(first) && len(first) <= 6 {
			meterCode = first
			meterNumber = second
			contractNumber = cellAt(row, 2)
		}
	}

	// Locate the data section: a row whose first cell is the date column
	// header, or failing that the first row that already looks like data.
	dataStart := -1
	for i, row := range rows {
		first := strings.ToLower(cellAt(row, 0))
		if first == "תאריך" || first == "date" || strings.Contains(first, "תאריך") {
			dataStart = i + 1
			break
		}
	}
	if dataStart == -1 {
		for i, row := range rows {
			if dateRe.MatchString(cellAt(row, 0)) {
				dataStart = i
				break
			}
		}
	}
	if dataStart == -1 {
		return nil, &ParseError{
			Kind:          ParseNoDataSection,
			Message:       "Could not find usage data in file",
			MessageHebrew: "לא נמצאו נתוני צריכה בקובץ",
		}
	}

	var (
		records  []UsageRecord
		minDate  Date
		maxDate  Date
		haveDate bool
		totalKwh float64
	)

	for i := dataStart; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 3 {
			continue
		}

		dateStr := cleanCell(row[0])
		timeStr := cleanCell(row[1])
		kwhStr := cleanCell(row[2])

		if dateStr == "" || timeStr == "" {
			continue
		}
		if !dateRe.MatchString(dateStr) || !timeRe.MatchString(timeStr) {
			continue
		}

		date, err := parseRecordDate(dateStr)
		if err != nil {
			continue
		}
		kwh := parseKwh(kwhStr)

		records = append(records, UsageRecord{Date: date, Time: timeStr, KwhUsage: kwh})
		totalKwh += kwh

		if !haveDate || date.Before(minDate.Time) {
			minDate = date
		}
		if !haveDate || date.After(maxDate.Time) {
			maxDate = date
		}
		haveDate = true
	}

	if len(records) == 0 {
		return nil, &ParseError{
			Kind:          ParseNoValidRecords,
			Message:       "No valid usage records found in file",
			MessageHebrew: "לא נמצאו רשומות צריכה תקינות בקובץ",
		}
	}

	return &ParsedUsageData{
		CustomerName:   customerName,
		Address:        address,
		MeterCode:      meterCode,
		MeterNumber:    meterNumber,
		ContractNumber: contractNumber,
		Records:        records,
		StartDate:      minDate,
		EndDate:        maxDate,
		TotalKwh:       totalKwh,
	}, nil
}
