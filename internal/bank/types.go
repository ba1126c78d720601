package bank

// Category is a topical grouping key, e.g. "network" or "security".
// Values are checked against the bank's category table when the bank loads.
type Category string

// Difficulty is the author-assigned difficulty label of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns the difficulty labels in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Question is a single multiple-choice question.
// Questions are never mutated after loading; the exam builder works on copies.
type Question struct {
	ID          string     `yaml:"id" json:"id"`
	Category    Category   `yaml:"category" json:"category"`
	Difficulty  Difficulty `yaml:"difficulty" json:"difficulty"`
	Text        string     `yaml:"question" json:"question"`
	Choices     []string   `yaml:"choices" json:"choices"`
	AnswerIndex int        `yaml:"answer_index" json:"answer_index"`
	Explanation string     `yaml:"explanation,omitempty" json:"explanation,omitempty"`
}

// CorrectChoice returns the text of the correct option.
func (q Question) CorrectChoice() string {
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Choices) {
		return ""
	}
	return q.Choices[q.AnswerIndex]
}

// Clone returns a deep copy of q.
func (q Question) Clone() Question {
	c := q
	c.Choices = append([]string(nil), q.Choices...)
	return c
}

// CategoryInfo maps a category key to its display label.
type CategoryInfo struct {
	Key   Category `yaml:"key" json:"key"`
	Label string   `yaml:"label" json:"label"`
}

// Seed is a baseline correct/total tally used to initialize a fresh profile.
type Seed struct {
	Correct int `yaml:"correct" json:"correct"`
	Total   int `yaml:"total" json:"total"`
}
