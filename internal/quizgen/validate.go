package quizgen

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"quiz-forge/internal/domain"
)

const (
	minQuestionTextLen = 10
	minExplanationLen  = 10
)

// Violations lists every rule q breaks, in a fixed order. Generated questions
// must carry an explanation; hand-written ones may omit it.
func Violations(q domain.Question, requireExplanation bool) []string {
	var problems []string

	if utf8.RuneCountInString(strings.TrimSpace(q.Text)) < minQuestionTextLen {
		problems = append(problems, fmt.Sprintf("Question text must be at least %d characters long", minQuestionTextLen))
	}

	if len(q.Options) != domain.OptionsPerQuestion {
		problems = append(problems, fmt.Sprintf("Question must have exactly %d options", domain.OptionsPerQuestion))
	}
	seen := make(map[string]struct{}, len(q.Options))
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			problems = append(problems, fmt.Sprintf("Option %d cannot be empty", i+1))
		}
		seen[opt] = struct{}{}
	}
	if len(seen) != len(q.Options) {
		problems = append(problems, "All options must be unique")
	}

	if q.CorrectAnswer < 0 || q.CorrectAnswer >= domain.OptionsPerQuestion {
		problems = append(problems, "Correct answer must be a number between 0 and 3")
	}

	explanationLen := utf8.RuneCountInString(strings.TrimSpace(q.Explanation))
	if (requireExplanation || explanationLen > 0) && explanationLen < minExplanationLen {
		problems = append(problems, fmt.Sprintf("Explanation must be at least %d characters long", minExplanationLen))
	}

	return problems
}
