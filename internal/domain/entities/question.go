package entities

// Question is a multiple-choice question with one correct answer and three
// distractors, addressed by (subject, position).
type Question struct {
	Subject       string
	Position      int
	Text          string
	CorrectAnswer string
	Distractors   []string
}

// Answers returns the full answer set, correct answer first. Callers shuffle
// before presenting.
func (q *Question) Answers() []string {
	answers := make([]string, 0, len(q.Distractors)+1)
	answers = append(answers, q.CorrectAnswer)
	answers = append(answers, q.Distractors...)
	return answers
}
