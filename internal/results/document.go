// Package results models the benchmark results document and its local
// storage: a timestamped JSON file plus a refreshed `-latest` symlink.
package results

import (
	"encoding/json"
	"time"

	"github.com/pdfbench/pdfbench/internal/platforminfo"
)

const (
	datestampLayoutConstant     = "2006-01-02-15-04"
	outcomeTimeoutValueConstant = "timeout"
)

// OutcomeKind classifies how a benchmark case concluded.
type OutcomeKind int

// Outcome classifications.
const (
	OutcomeKindSuccess OutcomeKind = iota
	OutcomeKindTimeout
	OutcomeKindExitCode
	OutcomeKindError
)

// Outcome captures the terminal state of one benchmark case. It serializes as
// the document's `e` field: 0 on success, the string "timeout" on timeout, a
// non-zero integer exit code, or an error description string.
type Outcome struct {
	Kind        OutcomeKind
	ExitCode    int
	Description string
}

// SuccessOutcome reports a case that completed with exit status zero.
func SuccessOutcome() Outcome {
	return Outcome{Kind: OutcomeKindSuccess}
}

// TimeoutOutcome reports a case terminated by its deadline.
func TimeoutOutcome() Outcome {
	return Outcome{Kind: OutcomeKindTimeout}
}

// ExitCodeOutcome reports a case whose process exited non-zero.
func ExitCodeOutcome(exitCode int) Outcome {
	return Outcome{Kind: OutcomeKindExitCode, ExitCode: exitCode}
}

// ErrorOutcome reports a case whose process could not run.
func ErrorOutcome(description string) Outcome {
	return Outcome{Kind: OutcomeKindError, Description: description}
}

// Succeeded reports whether the case completed cleanly.
func (outcome Outcome) Succeeded() bool {
	return outcome.Kind == OutcomeKindSuccess
}

// MarshalJSON encodes the outcome using the document's `e` conventions.
func (outcome Outcome) MarshalJSON() ([]byte, error) {
	switch outcome.Kind {
	case OutcomeKindSuccess:
		return json.Marshal(0)
	case OutcomeKindTimeout:
		return json.Marshal(outcomeTimeoutValueConstant)
	case OutcomeKindExitCode:
		return json.Marshal(outcome.ExitCode)
	default:
		return json.Marshal(outcome.Description)
	}
}

// UnmarshalJSON decodes the `e` conventions back into an Outcome.
func (outcome *Outcome) UnmarshalJSON(data []byte) error {
	var integerValue int
	if integerError := json.Unmarshal(data, &integerValue); integerError == nil {
		if integerValue == 0 {
			*outcome = SuccessOutcome()
		} else {
			*outcome = ExitCodeOutcome(integerValue)
		}
		return nil
	}

	var textValue string
	if textError := json.Unmarshal(data, &textValue); textError != nil {
		return textError
	}
	if textValue == outcomeTimeoutValueConstant {
		*outcome = TimeoutOutcome()
		return nil
	}
	*outcome = ErrorOutcome(textValue)
	return nil
}

// Measurement records one timed benchmark case. Fields are declared in
// sorted key order so encoded documents keep stable, sorted keys.
type Measurement struct {
	Outcome        Outcome `json:"e"`
	Path           string  `json:"path"`
	ElapsedSeconds float64 `json:"t"`
	TestName       string  `json:"testname"`
	ToolName       string  `json:"toolname"`
}

// Timestamp renders the run date both as epoch seconds and as the datestamp
// embedded in results file names.
type Timestamp struct {
	Seconds float64 `json:"seconds"`
	Text    string  `json:"string"`
}

// NewTimestamp builds a Timestamp from the supplied instant in UTC.
func NewTimestamp(instant time.Time) Timestamp {
	utcInstant := instant.UTC()
	return Timestamp{
		Seconds: float64(utcInstant.UnixNano()) / float64(time.Second),
		Text:    utcInstant.Format(datestampLayoutConstant),
	}
}

// Document is the complete benchmark results payload. Struct fields are
// declared in sorted key order, matching the sorted-key encoding the results
// repository consumers expect; map keys sort on their own during encoding.
type Document struct {
	Data         []Measurement         `json:"data"`
	Date         Timestamp             `json:"date"`
	Platform     platforminfo.Snapshot `json:"platform"`
	ToolVersions map[string]string     `json:"toolversions"`
}
