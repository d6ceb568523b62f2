package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/hiai-demo-qms/qmshub/internal/client/api"
	"github.com/hiai-demo-qms/qmshub/internal/client/models"
	"github.com/hiai-demo-qms/qmshub/internal/common"
	"github.com/hiai-demo-qms/qmshub/internal/logging"
)

// AnalysisState is the named state of the compliance-analysis lifecycle.
type AnalysisState string

const (
	AnalysisNoFile       AnalysisState = "no_file"
	AnalysisFileSelected AnalysisState = "file_selected"
	AnalysisAnalyzing    AnalysisState = "analyzing"
	AnalysisResulted     AnalysisState = "resulted"
	AnalysisFailed       AnalysisState = "failed"
)

// AnalyzerService drives one compliance-analysis request per selected file.
// Only the latest result is ever materialized; there is no history.
type AnalyzerService struct {
	client api.Client
	log    logging.Logger

	// onResult receives the opaque analyzeResponseId after a successful
	// analysis so the upload flow can associate it with the new document
	// record. The id has no meaning inside the analyzer itself.
	onResult func(analyzeResponseID int)

	mu       sync.Mutex
	state    AnalysisState
	fileName string
	contents []byte
	result   *models.AnalyzeResult
	lastErr  string
}

func NewAnalyzerService(client api.Client, log logging.Logger) *AnalyzerService {
	return &AnalyzerService{client: client, log: log, state: AnalysisNoFile}
}

// OnResult registers the side-channel callback. Must be set before Analyze
// is first called.
func (s *AnalyzerService) OnResult(fn func(analyzeResponseID int)) {
	s.onResult = fn
}

// SelectFile stages a file for analysis, discarding any previous result.
// Selecting a new file before a result is produced simply restages.
func (s *AnalyzerService) SelectFile(name string, contents []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fileName = name
	s.contents = contents
	s.result = nil
	s.lastErr = ""
	s.state = AnalysisFileSelected
}

// Reset is the "analyze another document" action: the result is discarded
// and the machine returns to FileSelected while a file is still staged, or
// NoFile otherwise.
func (s *AnalyzerService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = nil
	s.lastErr = ""
	if len(s.contents) > 0 {
		s.state = AnalysisFileSelected
	} else {
		s.state = AnalysisNoFile
	}
}

// Analyze submits the staged file and normalizes the response. With no file
// staged it rejects locally: the machine state and LastError stay untouched
// and no request is issued, but the returned error keeps callers from
// mistaking the refusal for a result. A call while already Analyzing is a
// silent no-op returning (nil, nil). On failure the state moves to Failed
// and the caller may retry by calling Analyze again.
func (s *AnalyzerService) Analyze(ctx context.Context) (*models.AnalyzeResult, error) {
	s.mu.Lock()
	if len(s.contents) == 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: no file staged for analysis", common.ErrValidation)
	}
	if s.state == AnalysisAnalyzing {
		s.mu.Unlock()
		return nil, nil
	}
	name, contents := s.fileName, s.contents
	s.state = AnalysisAnalyzing
	s.mu.Unlock()

	raw, err := s.client.Analyze(ctx, name, contents)

	s.mu.Lock()
	if err != nil {
		s.state = AnalysisFailed
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.log.Warn(ctx, "analysis failed", "file", name, "error", err)
		return nil, err
	}

	normalized := raw.Normalize()
	s.result = &normalized
	s.state = AnalysisResulted
	s.lastErr = ""
	callback := s.onResult
	s.mu.Unlock()

	s.log.Info(ctx, "analysis complete", "file", name,
		"score", normalized.Score, "status", normalized.Status)

	if callback != nil {
		callback(normalized.AnalyzeResponseID)
	}
	return &normalized, nil
}

func (s *AnalyzerService) State() AnalysisState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the latest normalized result, or nil.
func (s *AnalyzerService) Result() *models.AnalyzeResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func (s *AnalyzerService) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
