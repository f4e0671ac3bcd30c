package quiz

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// State is the engine's position in the quiz flow.
type State int

const (
	StateTopicSelection State = iota
	StateAskQuestions
	StateInQuiz
	StateShowResult
	StateComplete
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateTopicSelection:
		return "TOPIC_SELECTION"
	case StateAskQuestions:
		return "ASK_QUESTIONS"
	case StateInQuiz:
		return "IN_QUIZ"
	case StateShowResult:
		return "SHOW_RESULT"
	case StateComplete:
		return "COMPLETE"
	case StateHalted:
		return "HALTED"
	default:
		return "UNKNOWN"
	}
}

// Reply is the engine's reaction to one input line. Output is appended
// to the transcript. When Explain is non-nil the host must fetch the
// long-form explanation and feed the result to ResolveExplain; the
// engine accepts no quiz-advancing input until then.
type Reply struct {
	Output  string
	Explain *ExplainRequest
	Halted  bool
}

// Engine is the quiz state machine. It owns all mutable quiz state and
// performs no I/O; one input line is processed to completion at a time.
type Engine struct {
	tree      *Tree
	state     State
	sel       Selection
	pool      []*Question
	session   []*Question
	pos       int
	score     int
	last      *AnswerRecord
	sessionID string

	// shuffle permutes the session draw. Swappable in tests; the
	// default is a fresh unseeded draw on every run.
	shuffle func(n int, swap func(i, j int))
}

var (
	topicRe    = regexp.MustCompile(`^\d+$`)
	subtopicRe = regexp.MustCompile(`^\d+\.\d+$`)
)

// NewEngine creates an engine over the given topic tree with an empty
// selection, in TOPIC_SELECTION.
func NewEngine(tree *Tree) *Engine {
	return &Engine{
		tree:    tree,
		state:   StateTopicSelection,
		sel:     NewSelection(),
		shuffle: rand.Shuffle,
	}
}

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Score returns the number of correct answers so far in the session.
func (e *Engine) Score() int { return e.score }

// Position returns the current question index within the session.
func (e *Engine) Position() int { return e.pos }

// Session returns the drawn question sequence of the active session.
func (e *Engine) Session() []*Question { return e.session }

// SessionID returns the id of the active session, empty outside one.
func (e *Engine) SessionID() string { return e.sessionID }

// LastAnswer returns the record of the most recent answer, nil if none.
func (e *Engine) LastAnswer() *AnswerRecord { return e.last }

// Selected reports whether the subtopic at the coordinate is selected.
func (e *Engine) Selected(c Coord) bool { return e.sel.Has(c) }

// Start renders the initial topic menu.
func (e *Engine) Start() string {
	return e.renderTopicMenu()
}

// HandleLine processes one trimmed input line and returns the reply.
// Malformed input never fails; it re-prompts with state unchanged.
func (e *Engine) HandleLine(input string) Reply {
	if e.state == StateHalted {
		return Reply{Halted: true}
	}
	if input == "quit" {
		e.state = StateHalted
		return Reply{Output: "Goodbye!\n", Halted: true}
	}

	switch e.state {
	case StateTopicSelection:
		return e.handleTopicSelection(input)
	case StateAskQuestions:
		return e.handleQuestionCount(input)
	case StateInQuiz:
		return e.handleAnswer(input)
	case StateShowResult:
		return e.handleResultAction(input)
	case StateComplete:
		return e.handleRestart()
	default:
		return Reply{Output: "Unknown state\n> "}
	}
}

func (e *Engine) handleTopicSelection(input string) Reply {
	if input == "" {
		pool := e.sel.Pool(e.tree)
		if len(pool) == 0 {
			return Reply{Output: e.renderTopicMenu()}
		}
		e.pool = pool
		e.state = StateAskQuestions
		return Reply{Output: fmt.Sprintf("\nSelected %d questions total\nHow many questions do you want? ", len(pool))}
	}

	switch {
	case topicRe.MatchString(input):
		n, _ := strconv.Atoi(input)
		if n >= 1 && n <= len(e.tree.Topics) {
			e.sel.ToggleTopic(e.tree, n-1)
		}
	case subtopicRe.MatchString(input):
		parts := strings.SplitN(input, ".", 2)
		n, _ := strconv.Atoi(parts[0])
		m, _ := strconv.Atoi(parts[1])
		if n >= 1 && n <= len(e.tree.Topics) {
			if subs := e.tree.Topics[n-1].Subtopics; m >= 1 && m <= len(subs) {
				e.sel.Toggle(Coord{n - 1, m - 1})
			}
		}
	}
	return Reply{Output: e.renderTopicMenu()}
}

func (e *Engine) handleQuestionCount(input string) Reply {
	count, err := strconv.Atoi(input)
	if err != nil || count < 1 || count > len(e.pool) {
		return Reply{Output: fmt.Sprintf("Please enter a number between 1 and %d\nHow many questions? ", len(e.pool))}
	}

	drawn := make([]*Question, len(e.pool))
	copy(drawn, e.pool)
	e.shuffle(len(drawn), func(i, j int) { drawn[i], drawn[j] = drawn[j], drawn[i] })

	e.session = drawn[:count]
	e.pos = 0
	e.score = 0
	e.last = nil
	e.sessionID = uuid.New().String()
	e.state = StateInQuiz
	return Reply{Output: e.renderQuestion()}
}

func (e *Engine) handleAnswer(input string) Reply {
	q := e.session[e.pos]
	letters := optionLetters(len(q.Options))
	answer := strings.ToLower(input)

	idx := -1
	for i, l := range letters {
		if answer == l {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Reply{Output: fmt.Sprintf("Please enter %s\n%s", letterList(letters), answerPrompt(letters))}
	}

	correct := idx == q.Answer
	if correct {
		// Counted here, once, so the completion screen can read the
		// score directly.
		e.score++
	}
	e.last = &AnswerRecord{
		Letter:        answer,
		Correct:       correct,
		CorrectLetter: string(rune('a' + q.Answer)),
	}
	e.state = StateShowResult

	var b strings.Builder
	b.WriteString("\n")
	if correct {
		fmt.Fprintf(&b, "✓ Correct! %s\n", q.Explanation)
	} else {
		fmt.Fprintf(&b, "✗ Incorrect. The correct answer is %s. %s\n", e.last.CorrectLetter, q.Explanation)
	}
	b.WriteString("\nPress \"e\" for explanation or Enter to continue\n> ")
	return Reply{Output: b.String()}
}

func (e *Engine) handleResultAction(input string) Reply {
	q := e.session[e.pos]

	if strings.ToLower(input) == "e" {
		if q.Learn != "" {
			return Reply{Output: "\n" + q.Learn + "\n\nPress Enter to continue\n> "}
		}
		req := &ExplainRequest{ID: q.ID, Prompt: q.Prompt, Options: q.Options, SessionID: e.sessionID}
		return Reply{Output: "\nLoading explanation...\n", Explain: req}
	}

	if e.pos+1 >= len(e.session) {
		e.state = StateComplete
		return Reply{Output: e.renderComplete()}
	}

	e.pos++
	e.state = StateInQuiz
	return Reply{Output: "\n" + e.renderQuestion()}
}

func (e *Engine) handleRestart() Reply {
	e.sel = NewSelection()
	e.pool = nil
	e.session = nil
	e.pos = 0
	e.score = 0
	e.last = nil
	e.sessionID = ""
	e.state = StateTopicSelection
	return Reply{Output: e.renderTopicMenu()}
}

// ResolveExplain completes an in-flight explanation fetch. On success
// the text is cached on the question so pressing "e" again is local; on
// failure the quiz state is untouched and the user may retry.
func (e *Engine) ResolveExplain(req ExplainRequest, text string, err error) string {
	if err != nil {
		return fmt.Sprintf("\nError: %v\n\nPress Enter to continue\n> ", err)
	}
	for _, q := range e.session {
		if q.ID == req.ID {
			q.Learn = text
			break
		}
	}
	return "\n" + text + "\n\nPress Enter to continue\n> "
}

const rule = "=================================================="

func (e *Engine) renderTopicMenu() string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("Choose topics\n")
	b.WriteString(rule + "\n\n")

	for ti, topic := range e.tree.Topics {
		fmt.Fprintf(&b, "[%c] %d. %s\n", e.sel.Mark(e.tree, ti), ti+1, DisplayName(topic.Name))
		for si, sub := range topic.Subtopics {
			mark := byte(' ')
			if e.sel.Has(Coord{ti, si}) {
				mark = 'X'
			}
			fmt.Fprintf(&b, "    [%c] %d.%d %s\n", mark, ti+1, si+1, DisplayName(sub.Name))
		}
		b.WriteString("\n")
	}

	b.WriteString("Enter selection (e.g. '1' for topic, '1.2' for subtopic).\n")
	b.WriteString("Press Enter to confirm, or 'quit': ")
	return b.String()
}

func (e *Engine) renderQuestion() string {
	q := e.session[e.pos]
	letters := optionLetters(len(q.Options))

	var b strings.Builder
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Question %d/%d\n\n", e.pos+1, len(e.session))
	fmt.Fprintf(&b, "** %s **\n\n", q.Prompt)
	b.WriteString(rule + "\n")
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%s. %s\n", letters[i], opt)
	}
	b.WriteString("\n")
	b.WriteString(answerPrompt(letters))
	return b.String()
}

func (e *Engine) renderComplete() string {
	total := len(e.session)
	pct := float64(e.score) / float64(total) * 100

	var b strings.Builder
	b.WriteString("\n" + rule + "\n")
	b.WriteString("Quiz Complete!\n")
	b.WriteString(rule + "\n\n")
	fmt.Fprintf(&b, "Your score: %d/%d\n", e.score, total)
	fmt.Fprintf(&b, "Percentage: %.1f%%\n\n", pct)
	b.WriteString("Press Enter to start over\n> ")
	return b.String()
}

func optionLetters(n int) []string {
	letters := make([]string, n)
	for i := range letters {
		letters[i] = string(rune('a' + i))
	}
	return letters
}

func answerPrompt(letters []string) string {
	return fmt.Sprintf("Your answer (%s): ", strings.Join(letters, "/"))
}

func letterList(letters []string) string {
	if len(letters) == 1 {
		return letters[0]
	}
	return strings.Join(letters[:len(letters)-1], ", ") + ", or " + letters[len(letters)-1]
}
