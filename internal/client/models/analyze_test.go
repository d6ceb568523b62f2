package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize_RoundsJoinsAndThresholds(t *testing.T) {
	raw := RawAnalyzeResponse{
		AnalyzeResponseID: 42,
		Score:             72.4,
		ClauseResults: []RawClauseResult{
			{Title: "4.1", Score: 8, Status: StatusPass, Evidences: []string{"mã số"}},
		},
	}

	got := raw.Normalize()

	want := AnalyzeResult{
		AnalyzeResponseID: 42,
		Score:             72,
		Status:            StatusPass,
		ClauseResults: []ClauseResult{
			{Title: "4.1", Score: 8, Status: StatusPass, Keywords: "mã số"},
		},
	}
	require.Equal(t, want, got)
}

func TestNormalize_FailBelowThreshold(t *testing.T) {
	raw := RawAnalyzeResponse{Score: 59.4}
	require.Equal(t, StatusFail, raw.Normalize().Status)

	// 59.5 rounds up to 60 and passes.
	raw.Score = 59.5
	require.Equal(t, StatusPass, raw.Normalize().Status)
}

func TestNormalize_JoinsMultipleEvidences(t *testing.T) {
	raw := RawAnalyzeResponse{
		Score: 80,
		ClauseResults: []RawClauseResult{
			{Title: "5.1", Score: 4, Status: StatusFail, Evidences: []string{"lãnh đạo", "cam kết", "chính sách"}},
		},
	}
	got := raw.Normalize()
	require.Equal(t, "lãnh đạo, cam kết, chính sách", got.ClauseResults[0].Keywords)
}

func TestRawAnalyzeResponse_WireDecoding(t *testing.T) {
	payload := `{
		"analyzeResponseId": 7,
		"score": 61.2,
		"clause_Results": [
			{"title": "4.3", "score": 9, "status": "Đạt", "evidences": ["phạm vi", "QMS"]}
		]
	}`

	var raw RawAnalyzeResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	got := raw.Normalize()
	require.Equal(t, 7, got.AnalyzeResponseID)
	require.Equal(t, 61, got.Score)
	require.Equal(t, StatusPass, got.Status)
	require.Equal(t, "phạm vi, QMS", got.ClauseResults[0].Keywords)
}
