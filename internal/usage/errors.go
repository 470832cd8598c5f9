package usage

// ParseErrorKind classifies why a usage file could not be parsed.
type ParseErrorKind string

const (
	ParseMalformedCsv   ParseErrorKind = "malformed_csv"
	ParseNoDataSection  ParseErrorKind = "no_data_section"
	ParseNoValidRecords ParseErrorKind = "no_valid_records"
	ParseUnknownFailure ParseErrorKind = "unknown_parse_failure"
)

// ParseError carries a machine-readable kind plus user-facing messages in
// both English and Hebrew. Callers pick the language to display.
type ParseError struct {
	Kind          ParseErrorKind `json:"kind"`
	Message       string         `json:"message"`
	MessageHebrew string         `json:"messageHebrew"`
	Row           int            `json:"row,omitempty"`
}

func (e *ParseError) Error() string { return e.Message }

// ValidationErrorKind classifies why parsed data is insufficient for a
// meaningful comparison.
type ValidationErrorKind string

const (
	ValidationInsufficientRecords   ValidationErrorKind = "insufficient_records"
	ValidationInsufficientDateRange ValidationErrorKind = "insufficient_date_range"
)

// ValidationError mirrors ParseError for the data-sufficiency checks.
type ValidationError struct {
	Kind          ValidationErrorKind `json:"kind"`
	Message       string              `json:"message"`
	MessageHebrew string              `json:"messageHebrew"`
}

func (e *ValidationError) Error() string { return e.Message }
