package quizgen

import (
	"github.com/google/uuid"

	"quiz-forge/internal/domain"
)

// BlockResult is the outcome of parsing one block: a question or the reason it was rejected.
type BlockResult struct {
	Index    int
	Question *domain.Question
	Err      *ValidationError
}

// Batch is the aggregate outcome of one model response.
type Batch struct {
	Questions []domain.Question
	Errors    []*ValidationError
}

// Messages renders every rejection as a single line.
func (b Batch) Messages() []string {
	out := make([]string, len(b.Errors))
	for i, e := range b.Errors {
		out[i] = e.Error()
	}
	return out
}

// ParseBlock extracts and validates one question. index is 1-based.
func ParseBlock(index int, block string, complexity domain.Complexity) BlockResult {
	fail := func(stage Stage, problems ...string) BlockResult {
		return BlockResult{Index: index, Err: &ValidationError{Block: index, Stage: stage, Problems: problems}}
	}

	text, ok := extractQuestionText(block)
	if !ok {
		return fail(StageQuestionText, "Could not extract question text")
	}
	options, ok := extractOptions(block)
	if !ok {
		return fail(StageOptions, "Could not extract all 4 options")
	}
	correct, ok := extractCorrectAnswer(block)
	if !ok {
		return fail(StageCorrectAnswer, "Could not extract correct answer")
	}
	explanation, ok := extractExplanation(block)
	if !ok {
		return fail(StageExplanation, "Could not extract explanation")
	}

	q := domain.Question{
		ID:            uuid.NewString(),
		Text:          text,
		Options:       options,
		CorrectAnswer: correct,
		Explanation:   explanation,
		Complexity:    complexity,
	}
	if problems := Violations(q, true); len(problems) > 0 {
		return fail(StageValidation, problems...)
	}
	return BlockResult{Index: index, Question: &q}
}

// Parse splits raw model output into blocks and parses each one independently.
// At most limit questions are kept; limit <= 0 keeps all of them.
func Parse(raw string, complexity domain.Complexity, limit int) Batch {
	var batch Batch
	for i, block := range SplitBlocks(raw) {
		res := ParseBlock(i+1, block, complexity)
		if res.Err != nil {
			batch.Errors = append(batch.Errors, res.Err)
			continue
		}
		if limit > 0 && len(batch.Questions) >= limit {
			continue
		}
		batch.Questions = append(batch.Questions, *res.Question)
	}
	return batch
}
