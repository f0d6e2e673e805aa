package model

// ContentStandard is one grounding rule for the reviewer prompt. Only rows
// with Status "active" are loaded for analysis.
type ContentStandard struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Domain            string `json:"domain"`
	TermDefinition    string `json:"term_definition"`
	Guidance          string `json:"guidance"`
	CorrectExamples   string `json:"correct_examples"`
	IncorrectExamples string `json:"incorrect_examples"`
	Status            string `json:"status"`
}

const StandardStatusActive = "active"
