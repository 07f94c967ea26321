package seedmodels

// SeedUser defines an account in the JSON seed file.
type SeedUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// SeedQuestion defines a hand-written question of a seed quiz.
type SeedQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// SeedQuiz defines a quiz, its questions and the students it is assigned to.
type SeedQuiz struct {
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Duration       int            `json:"duration"`
	QuestionsCount int            `json:"questions_count"`
	AllowRetakes   bool           `json:"allow_retakes"`
	AllowPause     bool           `json:"allow_pause"`
	MaxAttempts    int            `json:"max_attempts"`
	Author         string         `json:"author"` // admin email
	Publish        bool           `json:"publish"`
	AssignTo       []string       `json:"assign_to"` // student emails
	Questions      []SeedQuestion `json:"questions"`
}

// SeedFile is the root of the JSON seed file.
type SeedFile struct {
	Users   []SeedUser `json:"users"`
	Quizzes []SeedQuiz `json:"quizzes"`
}
