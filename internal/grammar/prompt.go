package grammar

import "strings"

const promptTemplate = `
You are a grammar expert. Find grammar errors in this text and return JSON with the exact wrong phrases and their corrections.

Text: {{text}}

Return JSON like this:
[
  {
    "wrong": "exact wrong phrase from text",
    "corrected": "corrected version",
    "error_type": "type of error"
  }
]

Important: Use the exact wrong phrases from the text, not "incorrect text".
`

// BuildPrompt embeds text into the grammar analysis instruction.
func BuildPrompt(text string) string {
	return strings.Replace(promptTemplate, "{{text}}", text, 1)
}
