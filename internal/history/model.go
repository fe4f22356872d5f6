package history

import "time"

// Record is the minimal trace of a completed analysis. Only the inputs and
// the headline percentage are kept; replaying an entry re-runs the analysis.
type Record struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"date"`
	MatchPercentage int       `json:"matchPercentage"`
	JobTitle        string    `json:"jobTitle,omitempty"`
	ResumeText      string    `json:"resumeText,omitempty"`
	JobDescription  string    `json:"jobDescription,omitempty"`
}
