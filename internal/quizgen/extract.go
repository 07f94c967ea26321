package quizgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Stage names the part of a block that failed to parse.
type Stage string

const (
	StageQuestionText  Stage = "question text"
	StageOptions       Stage = "options"
	StageCorrectAnswer Stage = "correct answer"
	StageExplanation   Stage = "explanation"
	StageValidation    Stage = "validation"
)

// ValidationError is a block-local failure. It never aborts the batch.
type ValidationError struct {
	Block    int // 1-based position in the response
	Stage    Stage
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("block %d: %s: %s", e.Block, e.Stage, strings.Join(e.Problems, "; "))
}

// question text ends at an options header, an inline "A)" label, or the end of the line
const questionTextEnd = `(?:\s+(?i:options)[ \t]*:|\s+A[).]\s|\n|$)`

var (
	questionTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?s)(?i:question)(?:[ \t]+\d+)?[ \t]*:[ \t]*(.+?)` + questionTextEnd),
		regexp.MustCompile(`(?s)^\s*\d+\.[ \t]*(.+?)` + questionTextEnd),
		regexp.MustCompile(`(?s)^\s*(.+?)` + questionTextEnd),
	}

	optionsCombined = regexp.MustCompile(`(?s)(?:^|\s)A[).][ \t]*(.+?)\s+B[).][ \t]*(.+?)\s+C[).][ \t]*(.+?)\s+D[).][ \t]*(.+?)\s*(?:(?i:correct)(?:[ \t]+(?i:answer))?[ \t]*:|(?i:answer)[ \t]*:|(?i:explanation)[ \t]*:|$)`)

	optionLabels   = []string{"A", "B", "C", "D"}
	optionPerLabel = func() []*regexp.Regexp {
		out := make([]*regexp.Regexp, len(optionLabels))
		for i, label := range optionLabels {
			out[i] = regexp.MustCompile(`(?m)^[ \t]*` + label + `[).][ \t]*(.+?)[ \t]*$`)
		}
		return out
	}()

	correctAnswerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)correct[ \t]+answer[ \t]*:?[ \t]*\(?([0-3])\b`),
		regexp.MustCompile(`(?i)correct[ \t]+answer[ \t]*:?[ \t]*\(?([A-D])\b`),
		regexp.MustCompile(`(?i)\banswer[ \t]*:[ \t]*\(?([0-3])\b`),
		regexp.MustCompile(`(?i)\banswer[ \t]*:[ \t]*\(?([A-D])\b`),
	}

	explanationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)explanation[ \t]*:[ \t]*(.+?)(?:\n[ \t]*question(?:[ \t]+\d+)?[ \t]*:|$)`),
		regexp.MustCompile(`(?is)explanation[ \t]*(.+?)(?:\n[ \t]*question(?:[ \t]+\d+)?[ \t]*:|$)`),
	}
)

func extractQuestionText(block string) (string, bool) {
	for _, p := range questionTextPatterns {
		if m := p.FindStringSubmatch(block); m != nil {
			if text := Sanitize(m[1]); text != "" {
				return text, true
			}
		}
	}
	return "", false
}

func extractOptions(block string) ([]string, bool) {
	if m := optionsCombined.FindStringSubmatch(block); m != nil {
		if opts, ok := nonEmptyOptions(m[1:5]); ok {
			return opts, true
		}
	}

	raw := make([]string, 0, len(optionPerLabel))
	for _, p := range optionPerLabel {
		m := p.FindStringSubmatch(block)
		if m == nil {
			return nil, false
		}
		raw = append(raw, m[1])
	}
	return nonEmptyOptions(raw)
}

func nonEmptyOptions(raw []string) ([]string, bool) {
	if len(raw) != len(optionLabels) {
		return nil, false
	}
	opts := make([]string, len(raw))
	for i, r := range raw {
		opts[i] = Sanitize(r)
		if opts[i] == "" {
			return nil, false
		}
	}
	return opts, true
}

func extractCorrectAnswer(block string) (int, bool) {
	for _, p := range correctAnswerPatterns {
		m := p.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		token := strings.ToUpper(m[1])
		if n, err := strconv.Atoi(token); err == nil {
			return n, true
		}
		return int(token[0] - 'A'), true
	}
	return 0, false
}

func extractExplanation(block string) (string, bool) {
	for _, p := range explanationPatterns {
		if m := p.FindStringSubmatch(block); m != nil {
			if text := Sanitize(m[1]); text != "" {
				return text, true
			}
		}
	}
	return "", false
}
