package career

import (
	"strings"
)

// NoResumePlaceholder stands in for the résumé section when no text is available.
const NoResumePlaceholder = "[No resume provided]"

const promptPreamble = `You are a Career and Salary Forecasting AI.

Analyze the following background and generate personalized career advice. If resume content is available, prioritize it.
`

const promptInstructions = `Generate the following:
1. 3–5 personalized career paths relevant to the user's profile.
2. Estimated salary ranges for each career (entry, mid, senior level).

Use bullet points and clear formatting.
`

// BuildPrompt assembles the advice request for a category, its answers and
// optional résumé text. Blank answers are dropped. A nil, empty or blank
// résumé renders NoResumePlaceholder. The output depends only on the inputs.
func BuildPrompt(category Category, answers AnswerSet, resume *string) string {
	var b strings.Builder

	b.WriteString(promptPreamble)
	b.WriteString("\n--- USER TYPE: ")
	b.WriteString(strings.ToUpper(category.Label()))
	b.WriteString(" ---\n\n")

	b.WriteString("Resume Content:\n")
	if resume != nil && strings.TrimSpace(*resume) != "" {
		b.WriteString(*resume)
		if !strings.HasSuffix(*resume, "\n") {
			b.WriteString("\n")
		}
	} else {
		b.WriteString(NoResumePlaceholder + "\n")
	}

	b.WriteString("\nManual Inputs:\n")
	for _, a := range answers.entries {
		value := strings.TrimSpace(strings.ReplaceAll(a.Value, "\r\n", "\n"))
		if value == "" {
			continue
		}
		b.WriteString("- ")
		b.WriteString(a.Label)
		b.WriteString(": ")
		// continuation lines are indented so each answer is a single bullet
		b.WriteString(strings.ReplaceAll(value, "\n", "\n  "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(promptInstructions)
	return b.String()
}
