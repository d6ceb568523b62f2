package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hiai-demo-qms/qmshub/internal/client/models"
	"github.com/hiai-demo-qms/qmshub/internal/common"
)

func TestAnalyze_NoFileRejectsWithoutRequest(t *testing.T) {
	client := &fakeClient{}
	s := NewAnalyzerService(client, testLogger())

	result, err := s.Analyze(context.Background())
	require.ErrorIs(t, err, common.ErrValidation)
	require.Nil(t, result)
	require.Empty(t, client.Calls)
	require.Equal(t, AnalysisNoFile, s.State())
	require.Empty(t, s.LastError())
}

func TestAnalyze_SuccessNormalizesAndNotifies(t *testing.T) {
	client := &fakeClient{
		AnalyzeFn: func(ctx context.Context, fileName string, contents []byte) (*models.RawAnalyzeResponse, error) {
			require.Equal(t, "manual.pdf", fileName)
			return &models.RawAnalyzeResponse{
				AnalyzeResponseID: 42,
				Score:             72.4,
				ClauseResults: []models.RawClauseResult{
					{Title: "4.1", Score: 8, Status: models.StatusPass, Evidences: []string{"mã số"}},
				},
			}, nil
		},
	}
	s := NewAnalyzerService(client, testLogger())

	var notified int
	s.OnResult(func(id int) { notified = id })

	s.SelectFile("manual.pdf", []byte("%PDF"))
	require.Equal(t, AnalysisFileSelected, s.State())

	result, err := s.Analyze(context.Background())
	require.NoError(t, err)
	require.Equal(t, AnalysisResulted, s.State())
	require.Equal(t, 42, notified)

	require.Equal(t, 72, result.Score)
	require.Equal(t, models.StatusPass, result.Status)
	require.Equal(t, "mã số", result.ClauseResults[0].Keywords)
	require.Equal(t, result, s.Result())
}

func TestAnalyze_FailureAllowsRetry(t *testing.T) {
	failing := true
	client := &fakeClient{
		AnalyzeFn: func(ctx context.Context, fileName string, contents []byte) (*models.RawAnalyzeResponse, error) {
			if failing {
				return nil, errors.New("scoring engine unavailable")
			}
			return &models.RawAnalyzeResponse{AnalyzeResponseID: 7, Score: 80}, nil
		},
	}
	s := NewAnalyzerService(client, testLogger())
	s.SelectFile("doc.pdf", []byte("x"))

	_, err := s.Analyze(context.Background())
	require.Error(t, err)
	require.Equal(t, AnalysisFailed, s.State())
	require.Contains(t, s.LastError(), "scoring engine unavailable")
	require.Nil(t, s.Result())

	// retry-by-resubmit
	failing = false
	result, err := s.Analyze(context.Background())
	require.NoError(t, err)
	require.Equal(t, AnalysisResulted, s.State())
	require.Equal(t, 80, result.Score)
	require.Empty(t, s.LastError())
}

func TestSelectFile_DiscardsPreviousResult(t *testing.T) {
	client := &fakeClient{
		AnalyzeFn: func(ctx context.Context, fileName string, contents []byte) (*models.RawAnalyzeResponse, error) {
			return &models.RawAnalyzeResponse{AnalyzeResponseID: 1, Score: 90}, nil
		},
	}
	s := NewAnalyzerService(client, testLogger())

	s.SelectFile("a.pdf", []byte("a"))
	_, err := s.Analyze(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s.Result())

	s.SelectFile("b.pdf", []byte("b"))
	require.Nil(t, s.Result())
	require.Equal(t, AnalysisFileSelected, s.State())
}

func TestReset_AnalyzeAnother(t *testing.T) {
	client := &fakeClient{
		AnalyzeFn: func(ctx context.Context, fileName string, contents []byte) (*models.RawAnalyzeResponse, error) {
			return &models.RawAnalyzeResponse{AnalyzeResponseID: 1, Score: 55}, nil
		},
	}
	s := NewAnalyzerService(client, testLogger())

	s.SelectFile("a.pdf", []byte("a"))
	result, err := s.Analyze(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.StatusFail, result.Status)

	s.Reset()
	require.Nil(t, s.Result())
	require.Equal(t, AnalysisFileSelected, s.State())
}

func TestReset_WithoutFileReturnsToNoFile(t *testing.T) {
	s := NewAnalyzerService(&fakeClient{}, testLogger())
	s.Reset()
	require.Equal(t, AnalysisNoFile, s.State())
}
