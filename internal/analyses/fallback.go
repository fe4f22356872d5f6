package analyses

// DefaultAnalysisResult is served when the comprehensive call fails in
// transport. Plausible placeholder content beats an empty report; the
// response is flagged degraded so clients can tell.
func DefaultAnalysisResult() AnalysisResult {
	return AnalysisResult{
		SkillMatch: SkillMatch{
			Matched:                []string{"Communication", "Problem Solving", "Teamwork"},
			Missing:                []string{"Cloud Architecture", "System Design"},
			OverallMatchPercentage: 65,
		},
		SkillGapData: []SkillGap{
			{Skill: "Technical Skills", Current: 60, Required: 80},
			{Skill: "Domain Knowledge", Current: 55, Required: 75},
			{Skill: "Leadership", Current: 50, Required: 65},
		},
		Recommendations: []Recommendation{
			{Title: "System Design Fundamentals", Type: "course", Provider: "Coursera", Duration: "6 weeks", Priority: "high", URL: "https://www.coursera.org"},
			{Title: "Cloud Practitioner Essentials", Type: "certification", Provider: "AWS", Duration: "8 weeks", Priority: "medium", URL: "https://aws.amazon.com/training"},
			{Title: "Effective Technical Communication", Type: "course", Provider: "Udemy", Duration: "3 weeks", Priority: "low", URL: "https://www.udemy.com"},
		},
		IndustryDemand: []string{
			"Steady demand for generalist engineers across most markets",
			"Cloud and platform skills continue to command a premium",
			"Hybrid roles increasingly expect cross-functional collaboration",
		},
		PersonalityFit: []PersonalityFit{
			{Trait: "Adaptability", MatchScore: 70, JobRequirement: "Comfort with changing priorities"},
			{Trait: "Collaboration", MatchScore: 75, JobRequirement: "Cross-team coordination"},
			{Trait: "Ownership", MatchScore: 68, JobRequirement: "End-to-end delivery responsibility"},
		},
		CareerPathSuggestions: []string{
			"Senior individual contributor in your current specialty",
			"Technical lead on a small product team",
			"Solutions or platform engineering roles",
		},
		Strengths: []string{
			"Solid core professional experience",
			"Transferable problem-solving skills",
			"Evidence of sustained delivery",
		},
		Weaknesses: []string{
			"Some role-specific technologies not evidenced",
			"Limited visibility into leadership scope",
		},
		CompetitiveAdvantage: "A balanced profile with transferable skills that adapt well across adjacent roles.",
		MatchScoreReasoning:  "Estimated from typical overlap between generalist profiles and mid-level role requirements; live analysis was unavailable.",
	}
}

// FallbackLearningResources is the fixed substitute for the learning
// recommendations call. Always three entries.
func FallbackLearningResources() []Recommendation {
	return []Recommendation{
		{Title: "Foundations of Project Management", Type: "course", Provider: "Google / Coursera", Duration: "6 months", Priority: "high", URL: "https://www.coursera.org/professional-certificates/google-project-management"},
		{Title: "AWS Certified Cloud Practitioner", Type: "certification", Provider: "Amazon Web Services", Duration: "3 months", Priority: "medium", URL: "https://aws.amazon.com/certification/certified-cloud-practitioner"},
		{Title: "Data Analysis with Python", Type: "course", Provider: "freeCodeCamp", Duration: "300 hours", Priority: "medium", URL: "https://www.freecodecamp.org/learn/data-analysis-with-python"},
	}
}

// FallbackSalaryTrends is the fixed substitute for the salary trends call.
// Always three entries.
func FallbackSalaryTrends() []SalaryTrend {
	return []SalaryTrend{
		{Role: "Junior Level", Median: 75000, Growth: "+5%", Demand: "medium"},
		{Role: "Mid Level", Median: 110000, Growth: "+8%", Demand: "high"},
		{Role: "Senior Level", Median: 150000, Growth: "+10%", Demand: "high"},
	}
}
