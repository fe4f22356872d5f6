package analyses

// SkillMatch carries the headline comparison between resume and job.
type SkillMatch struct {
	Matched                []string `json:"matched"`
	Missing                []string `json:"missing"`
	OverallMatchPercentage int      `json:"overallMatchPercentage"`
}

// SkillGap compares current vs required proficiency for one skill.
type SkillGap struct {
	Skill    string `json:"skill"`
	Current  int    `json:"current"`
	Required int    `json:"required"`
}

// Recommendation is a learning resource suggestion.
type Recommendation struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	Provider string `json:"provider"`
	Duration string `json:"duration"`
	Priority string `json:"priority"`
	URL      string `json:"url"`
}

// PersonalityFit scores one trait against what the role expects.
type PersonalityFit struct {
	Trait          string `json:"trait"`
	MatchScore     int    `json:"matchScore"`
	JobRequirement string `json:"jobRequirement"`
}

// SalaryTrend is one row of compensation trend data.
type SalaryTrend struct {
	Role   string `json:"role"`
	Median int    `json:"median"`
	Growth string `json:"growth"`
	Demand string `json:"demand"`
}

// AnalysisResult is the comprehensive match report produced once per run.
type AnalysisResult struct {
	SkillMatch            SkillMatch       `json:"skillMatch"`
	SkillGapData          []SkillGap       `json:"skillGapData"`
	Recommendations       []Recommendation `json:"recommendations"`
	IndustryDemand        []string         `json:"industryDemand"`
	PersonalityFit        []PersonalityFit `json:"personalityFit"`
	CareerPathSuggestions []string         `json:"careerPathSuggestions"`
	Strengths             []string         `json:"strengths"`
	Weaknesses            []string         `json:"weaknesses"`
	CompetitiveAdvantage  string           `json:"competitiveAdvantage"`
	MatchScoreReasoning   string           `json:"matchScoreReasoning,omitempty"`
}

// Report is the full response for one orchestration run: the comprehensive
// result plus the secondary data sets.
type Report struct {
	RunID             string           `json:"runId"`
	Result            AnalysisResult   `json:"result"`
	LearningResources []Recommendation `json:"learningResources"`
	SalaryTrends      []SalaryTrend    `json:"salaryTrends"`
	Degraded          bool             `json:"degraded"`
	HistoryID         string           `json:"historyId,omitempty"`
}

// RunInput is what the orchestrator needs for one run.
type RunInput struct {
	ResumeText     string
	JobDescription string
	JobTitle       string
}

// RunOptions tunes a run. SkipSave replays stored inputs without appending
// another history record.
type RunOptions struct {
	SkipSave bool
}
