package quizgen

import (
	"testing"

	"quiz-forge/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestViolations(t *testing.T) {
	valid := domain.Question{
		Text:          "Which protocol does HTTP/3 run on?",
		Options:       []string{"TCP", "QUIC", "SCTP", "DCCP"},
		CorrectAnswer: 1,
		Explanation:   "HTTP/3 is layered on top of QUIC.",
	}

	tests := []struct {
		name               string
		mutate             func(q *domain.Question)
		requireExplanation bool
		want               []string
	}{
		{name: "valid", mutate: func(q *domain.Question) {}, requireExplanation: true},
		{
			name:               "missing explanation allowed for hand-written questions",
			mutate:             func(q *domain.Question) { q.Explanation = "" },
			requireExplanation: false,
		},
		{
			name:               "missing explanation rejected for generated questions",
			mutate:             func(q *domain.Question) { q.Explanation = "" },
			requireExplanation: true,
			want:               []string{"Explanation must be at least 10 characters long"},
		},
		{
			name: "everything wrong",
			mutate: func(q *domain.Question) {
				q.Text = "short"
				q.Options = []string{"a", "", "a"}
				q.CorrectAnswer = 5
				q.Explanation = "tiny"
			},
			requireExplanation: true,
			want: []string{
				"Question text must be at least 10 characters long",
				"Question must have exactly 4 options",
				"Option 2 cannot be empty",
				"All options must be unique",
				"Correct answer must be a number between 0 and 3",
				"Explanation must be at least 10 characters long",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid
			q.Options = append([]string(nil), valid.Options...)
			tt.mutate(&q)
			assert.Equal(t, tt.want, Violations(q, tt.requireExplanation))
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(domain.ComplexityMedium, 5, "Go channels are typed conduits.")

	assert.Contains(t, prompt, "Generate 5 multiple-choice questions")
	assert.Contains(t, prompt, "MEDIUM complexity level")
	assert.Contains(t, prompt, "- Test understanding and application")
	assert.Contains(t, prompt, "Go channels are typed conduits.")
	assert.NotContains(t, prompt, "Focus on basic comprehension")
}
