package diag

// Severity ranks a diagnostic. The pipeline only ever emits errors: the
// parser is the sole diagnostic source and the type system never fails, so
// there is nothing below error level to report.
type Severity uint8

const (
	// SevError marks a finding that invalidates the analysis of its span.
	SevError Severity = iota
)

func (s Severity) String() string {
	if s == SevError {
		return "ERROR"
	}
	return "UNKNOWN"
}
