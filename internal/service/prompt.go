package service

import (
	"fmt"
	"strings"

	"content-review-api/internal/model"
)

// buildPrompt composes the single-turn reviewer instruction: the rendered
// standards as grounding context, the frame name, the text under review and
// the expected JSON response shape.
func buildPrompt(standards []model.ContentStandard, req model.AnalyzeRequest) string {
	frameName := req.FrameName
	if frameName == "" {
		frameName = "Unknown"
	}

	return fmt.Sprintf(`You are a content standards reviewer. Analyze the following Figma design text against these content standards:

%s

---

**Figma Frame**: %s

**Text Content to Analyze**:
%s

---

Analyze each piece of text and provide:
1. An overall compliance score (0-100)
2. List of standards that are being followed well
3. List of violations with specific examples and suggested fixes
4. General recommendations

Respond in this JSON format:
{
  "score": <number 0-100>,
  "summary": "<brief summary>",
  "compliant": [
    {"standardId": "<id>", "standardTitle": "<title>", "evidence": "<what text follows this standard>"}
  ],
  "violations": [
    {"standardId": "<id>", "standardTitle": "<title>", "issue": "<what's wrong>", "text": "<problematic text>", "suggestion": "<how to fix>"}
  ],
  "recommendations": ["<general improvement suggestions>"]
}`, renderStandards(standards), frameName, renderText(req))
}

// renderStandards formats each standard as a compact block, joined with
// blank lines.
func renderStandards(standards []model.ContentStandard) string {
	blocks := make([]string, 0, len(standards))
	for _, s := range standards {
		blocks = append(blocks, fmt.Sprintf("**%s** (%s)\n- Domain: %s\n- Definition: %s\n- Guidance: %s\n- Correct: %s\n- Incorrect: %s",
			s.Title, s.ID, s.Domain,
			orNA(s.TermDefinition), orNA(s.Guidance),
			orNA(s.CorrectExamples), orNA(s.IncorrectExamples)))
	}
	return strings.Join(blocks, "\n\n")
}

// renderText prefers structured text nodes, one `[name]: "characters"` line
// each, over the flat text blob.
func renderText(req model.AnalyzeRequest) string {
	if len(req.TextNodes) == 0 {
		return req.TextContent
	}

	lines := make([]string, 0, len(req.TextNodes))
	for _, node := range req.TextNodes {
		lines = append(lines, fmt.Sprintf("[%s]: \"%s\"", node.Name, node.Characters))
	}
	return strings.Join(lines, "\n")
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
