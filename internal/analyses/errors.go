package analyses

import "errors"

// MinInputLength is the floor both text inputs must meet before a run starts.
// The same check guards the LLM call itself.
const MinInputLength = 50

var (
	ErrResumeTooShort = errors.New("resume text is too short: provide at least 50 characters")
	ErrJobTooShort    = errors.New("job description is too short: provide at least 50 characters")

	// ErrParseAnalysis is surfaced when the model reply carried no decodable
	// analysis object. Unlike transport failures it is not masked.
	ErrParseAnalysis = errors.New("failed to parse analysis data")
)

// IsValidationError reports whether err is a caller-input problem.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrResumeTooShort) || errors.Is(err, ErrJobTooShort)
}
