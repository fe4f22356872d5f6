package llm

import (
	"fmt"
	"strings"
)

// BuildAnalysisPrompt embeds the resume and job text in a comprehensive
// match-analysis instruction with a strict expected-JSON shape.
func BuildAnalysisPrompt(resumeText, jobText string) string {
	return fmt.Sprintf(`You are an expert career advisor and technical recruiter. Compare the resume below against the job description and produce a detailed compatibility analysis.

RESUME:
%s

JOB DESCRIPTION:
%s

Respond with ONLY a JSON object in exactly this shape, no other text:
{
  "skillMatch": {
    "matched": ["skills present in both the resume and the job description"],
    "missing": ["skills the job requires that the resume does not show"],
    "overallMatchPercentage": 75
  },
  "skillGapData": [
    {"skill": "skill name", "current": 60, "required": 85}
  ],
  "recommendations": [
    {"title": "course or resource name", "type": "course", "provider": "provider name", "duration": "6 weeks", "priority": "high", "url": "https://example.com"}
  ],
  "industryDemand": ["short statements about market demand for the candidate's skills"],
  "personalityFit": [
    {"trait": "trait name", "matchScore": 80, "jobRequirement": "what the role expects"}
  ],
  "careerPathSuggestions": ["possible next roles"],
  "strengths": ["candidate strengths relative to this role"],
  "weaknesses": ["candidate gaps relative to this role"],
  "competitiveAdvantage": "one sentence on what sets this candidate apart",
  "matchScoreReasoning": "one short paragraph explaining the overall percentage"
}

All percentages and scores must be integers between 0 and 100. Every array must be present, even if empty.`, resumeText, jobText)
}

// BuildRecommendationsPrompt asks for learning resources targeting the
// missing skills from a completed analysis.
func BuildRecommendationsPrompt(missingSkills []string) string {
	skills := "general professional skills"
	if len(missingSkills) > 0 {
		skills = strings.Join(missingSkills, ", ")
	}
	return fmt.Sprintf(`You are a career development advisor. Suggest learning resources for someone who needs to develop these skills: %s.

Respond with ONLY a JSON array in exactly this shape, no other text:
[
  {"title": "resource name", "type": "course", "provider": "provider name", "duration": "4 weeks", "priority": "high", "url": "https://example.com"}
]

Return between 3 and 6 entries. "type" is one of "course", "certification", "book", "practice". "priority" is one of "high", "medium", "low".`, skills)
}

// BuildSalaryTrendsPrompt asks for salary trend data for a job title.
func BuildSalaryTrendsPrompt(jobTitle string) string {
	title := jobTitle
	if strings.TrimSpace(title) == "" {
		title = "Software Engineer"
	}
	return fmt.Sprintf(`You are a compensation analyst. Provide current salary trend data for the role "%s".

Respond with ONLY a JSON array in exactly this shape, no other text:
[
  {"role": "role name", "median": 120000, "growth": "+8%%", "demand": "high"}
]

Return exactly 3 entries: the role itself, one junior variant, one senior variant. "median" is an annual USD figure. "demand" is one of "high", "medium", "low".`, title)
}
