package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"planfairy/internal/extract"
	"planfairy/internal/generate"
)

// maxSnippetLen caps each attachment snippet embedded in the user prompt.
const maxSnippetLen = extract.MaxFileTextLen

const systemPromptBase = `You are an instructional designer for K-12. Output MUST be a SINGLE HTML SNIPPET ONLY (no <html> or <body>), starting with <h1>.
Use only <h1-3>, <p>, <ul>, <ol>, and <table>. Use tables for structure. No Markdown.
- Keep language concise; don't invent standard codes.
- Include "Why this matters / transfer" where appropriate.
- Weekly plans: one horizontal chart with columns EXACTLY: Day, Date, Topic, Key Activities, Assessment/Exit, Materials, Notes, Attachments.
- Unit plans: include Essential Questions, Overview, Outcomes (Know/Do), Assignments/Assessments, Vocab (Tier 2 & Tier 3), ELL Supports, Learning Progression, Common Misconceptions, and a Pacing Guide (Week squares).`

// SystemPrompt builds the fixed instructional-designer prompt, appending any
// caller-supplied directives.
func SystemPrompt(customInstructions string) string {
	if strings.TrimSpace(customInstructions) == "" {
		return systemPromptBase
	}
	return systemPromptBase + "\n- Extra user directives:\n" + customInstructions
}

// UserPrompt serializes the form and attachment snippets for the model.
func UserPrompt(req generate.Request) (string, error) {
	formJSON, err := json.MarshalIndent(req.Form, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding form: %w", err)
	}

	return fmt.Sprintf(
		"Plan type: %s\nForm (JSON):\n%s\n\nfilesText (may be empty):\n%s\n\nReturn ONLY the HTML snippet.",
		strings.ToUpper(string(req.PlanType)),
		formJSON,
		fileSnippets(req.FilesText),
	), nil
}

// fileSnippets renders each non-empty attachment as a named snippet,
// truncated per file. With no usable text it yields "(no file text)".
func fileSnippets(files []generate.FileText) string {
	var parts []string
	for _, f := range files {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("\n[%s]\n%s", f.Name, extract.Truncate(f.Text, maxSnippetLen)))
	}
	if len(parts) == 0 {
		return "(no file text)"
	}
	return strings.Join(parts, "\n\n")
}
