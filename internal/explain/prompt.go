package explain

import (
	"fmt"
	"strings"
)

const tutorSystemPrompt = `You are an expert and friendly tutor. Explain this interview question clearly and pedagogically.

STRICT RULES:
- ALWAYS respond in exactly 2 or 3 short paragraphs.
- DO NOT include conversational filler.
- DO NOT explicitly say which option is correct.
- Do not use bulleted lists.
- Use an encouraging tone.`

const (
	explainTemperature = 0.5
	explainMaxTokens   = 500
)

func buildUserPrompt(question string, options []string) string {
	return fmt.Sprintf("Question: %s\nOptions: %s", question, strings.Join(options, ", "))
}
