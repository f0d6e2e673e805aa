package model

import "time"

// Analysis is the parsed reviewer verdict returned to the client and
// serialized into the analysis log.
type Analysis struct {
	Score           int             `json:"score"`
	Summary         string          `json:"summary"`
	Compliant       []CompliantItem `json:"compliant"`
	Violations      []Violation     `json:"violations"`
	Recommendations []string        `json:"recommendations"`
}

type CompliantItem struct {
	StandardID    string `json:"standardId"`
	StandardTitle string `json:"standardTitle"`
	Evidence      string `json:"evidence"`
}

type Violation struct {
	StandardID    string `json:"standardId"`
	StandardTitle string `json:"standardTitle"`
	Issue         string `json:"issue"`
	Text          string `json:"text"`
	Suggestion    string `json:"suggestion"`
}

// AnalysisRecord is the append-only log row written after each analysis.
// OverallScore and StandardsCount are stored as text ("85%", "12") to match
// the canonical schema.
type AnalysisRecord struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	ImageName      string    `json:"image_name"`
	Result         []byte    `json:"result"`
	OverallScore   *string   `json:"overall_score"`
	StandardsCount string    `json:"standards_count"`
	CreatedAt      time.Time `json:"created_at"`
}
