package model

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TextNode is one named text layer lifted out of a design frame.
type TextNode struct {
	Name       string `json:"name"`
	Characters string `json:"characters"`
}

// AnalyzeRequest carries either a flat text blob or a list of named text
// nodes; at least one of the two must be non-empty.
type AnalyzeRequest struct {
	TextContent string     `json:"textContent"`
	FrameName   string     `json:"frameName"`
	TextNodes   []TextNode `json:"textNodes"`
}

func (r AnalyzeRequest) Empty() bool {
	return r.TextContent == "" && len(r.TextNodes) == 0
}
