package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"content-review-api/internal/llm"
	"content-review-api/internal/model"
	"content-review-api/pkg/apierror"
)

const defaultImageName = "Figma Analysis"

type StandardLister interface {
	ListActive(ctx context.Context) ([]model.ContentStandard, error)
}

type AnalysisRecorder interface {
	Insert(ctx context.Context, rec model.AnalysisRecord) error
}

type AnalysisService struct {
	standards StandardLister
	records   AnalysisRecorder
	generator llm.Generator
}

func NewAnalysisService(standards StandardLister, records AnalysisRecorder, generator llm.Generator) *AnalysisService {
	return &AnalysisService{standards: standards, records: records, generator: generator}
}

// Analyze grounds the reviewer prompt on the active standards, submits it to
// the generator and persists the parsed verdict. Malformed generator output
// is downgraded to a fixed low-confidence verdict, never an error; every
// other fault surfaces as a 500 with an "Analysis failed" prefix.
func (s *AnalysisService) Analyze(ctx context.Context, userID string, req model.AnalyzeRequest) (model.Analysis, error) {
	if req.Empty() {
		return model.Analysis{}, apierror.Validation("No text content provided")
	}

	standards, err := s.standards.ListActive(ctx)
	if err != nil {
		return model.Analysis{}, analysisFailed(err)
	}

	if len(standards) == 0 {
		return model.Analysis{}, apierror.Config("No content standards found")
	}

	prompt := buildPrompt(standards, req)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return model.Analysis{}, analysisFailed(err)
	}

	analysis, ok := parseAnalysis(raw)
	if !ok {
		slog.Warn("generator output had no parsable JSON object; using fallback verdict")
		analysis = fallbackAnalysis()
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		return model.Analysis{}, analysisFailed(err)
	}

	rec := model.AnalysisRecord{
		UserID:         userID,
		ImageName:      imageName(req.FrameName),
		Result:         payload,
		OverallScore:   formatScore(analysis.Score),
		StandardsCount: strconv.Itoa(len(standards)),
	}
	if err := s.records.Insert(ctx, rec); err != nil {
		return model.Analysis{}, analysisFailed(err)
	}

	return analysis, nil
}

// parseAnalysis extracts the first JSON-object-shaped substring, greedily
// from the first '{' to the last '}', and decodes it.
func parseAnalysis(raw string) (model.Analysis, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return model.Analysis{}, false
	}

	var analysis model.Analysis
	if err := json.Unmarshal([]byte(raw[start:end+1]), &analysis); err != nil {
		return model.Analysis{}, false
	}

	// Absent lists serialize as [] rather than null.
	if analysis.Compliant == nil {
		analysis.Compliant = []model.CompliantItem{}
	}
	if analysis.Violations == nil {
		analysis.Violations = []model.Violation{}
	}
	if analysis.Recommendations == nil {
		analysis.Recommendations = []string{}
	}

	return analysis, true
}

func fallbackAnalysis() model.Analysis {
	return model.Analysis{
		Score:           50,
		Summary:         "Analysis completed but response parsing failed",
		Compliant:       []model.CompliantItem{},
		Violations:      []model.Violation{},
		Recommendations: []string{"Please try again"},
	}
}

func imageName(frameName string) string {
	if frameName == "" {
		return defaultImageName
	}
	return frameName
}

// formatScore renders "85%" for the log row; a zero score is stored as NULL.
func formatScore(score int) *string {
	if score == 0 {
		return nil
	}
	s := fmt.Sprintf("%d%%", score)
	return &s
}

// analysisFailed wraps any unexpected fault with the client-facing prefix,
// keeping the underlying error text in the message.
func analysisFailed(err error) error {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		return err
	}
	return apierror.Internal("Analysis failed: "+err.Error(), "")
}
