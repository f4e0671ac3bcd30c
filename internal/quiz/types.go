package quiz

// Question is a single quiz question as served by the question store.
// Multiple-choice questions carry Options plus the index of the correct
// option; free-form questions carry only the correct answer text.
// Everything is immutable after load except Learn, which is populated
// the first time a long-form explanation is generated.
type Question struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"question"`
	Correct     string   `json:"correct,omitempty"`
	Options     []string `json:"options,omitempty"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation"`
	Learn       string   `json:"learn,omitempty"`
}

// MultipleChoice reports whether the question has an option list.
func (q *Question) MultipleChoice() bool {
	return len(q.Options) > 0
}

// SubtopicGroup is the wire format of GET /api/questions: one subtopic
// with its parent topic name and its ordered question list.
type SubtopicGroup struct {
	Topic       string     `json:"topic"`
	Subtopic    string     `json:"subtopic"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// ExplainRequest identifies a question whose long-form explanation
// should be fetched from the explanation provider.
type ExplainRequest struct {
	ID        string   `json:"questionId"`
	Prompt    string   `json:"question"`
	Options   []string `json:"options"`
	SessionID string   `json:"sessionId,omitempty"`
}

// AnswerRecord captures the outcome of the most recent answer.
type AnswerRecord struct {
	Letter        string
	Correct       bool
	CorrectLetter string
}
