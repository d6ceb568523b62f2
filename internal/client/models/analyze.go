package models

import (
	"math"
	"strings"
)

// Compliance status labels as emitted by the backend.
const (
	StatusPass = "Đạt"
	StatusFail = "Không đạt"
)

// PassThreshold is the overall score (percent) at or above which a document
// is considered compliant.
const PassThreshold = 60

// RawClauseResult is the per-clause wire shape of the analyze response.
type RawClauseResult struct {
	Title     string   `json:"title"`
	Score     float64  `json:"score"`
	Status    string   `json:"status"`
	Evidences []string `json:"evidences"`
}

// RawAnalyzeResponse is the wire shape of POST api/chatbot/analyze.
type RawAnalyzeResponse struct {
	AnalyzeResponseID int               `json:"analyzeResponseId"`
	Score             float64           `json:"score"`
	ClauseResults     []RawClauseResult `json:"clause_Results"`
}

// ClauseResult is the normalized per-clause view: evidence strings are
// joined into a single display string.
type ClauseResult struct {
	Title    string  `json:"title"`
	Score    float64 `json:"score"`
	Status   string  `json:"status"`
	Keywords string  `json:"keywords"`
}

// AnalyzeResult is the normalized compliance-analysis result.
type AnalyzeResult struct {
	AnalyzeResponseID int            `json:"analyzeResponseId"`
	Score             int            `json:"score"`
	Status            string         `json:"status"`
	ClauseResults     []ClauseResult `json:"clause_Results"`
}

// Normalize converts the raw backend response into the presentation shape:
// the overall score is rounded to the nearest integer, the overall status is
// derived from the 60% threshold, and per-clause evidences are joined with
// ", ".
func (r RawAnalyzeResponse) Normalize() AnalyzeResult {
	result := AnalyzeResult{
		AnalyzeResponseID: r.AnalyzeResponseID,
		Score:             int(math.Round(r.Score)),
	}
	if result.Score >= PassThreshold {
		result.Status = StatusPass
	} else {
		result.Status = StatusFail
	}

	result.ClauseResults = make([]ClauseResult, 0, len(r.ClauseResults))
	for _, c := range r.ClauseResults {
		result.ClauseResults = append(result.ClauseResults, ClauseResult{
			Title:    c.Title,
			Score:    c.Score,
			Status:   c.Status,
			Keywords: strings.Join(c.Evidences, ", "),
		})
	}
	return result
}
