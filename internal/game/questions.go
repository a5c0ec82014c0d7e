package game

// exhaustedText is what Current reports once the deck has run out.
const exhaustedText = "No more questions"

// Question is the payload broadcast for the current prompt. Number is
// one-based and capped at Total once the deck is exhausted.
type Question struct {
	Text   string
	Number int
	Total  int
}

// QuestionDeck walks an immutable, ordered list of discussion prompts.
// Invariant: 0 <= cursor <= len(prompts); cursor == len signals exhaustion.
// Not safe for concurrent use; the room session serializes access.
type QuestionDeck struct {
	prompts []string
	cursor  int
}

func NewQuestionDeck(prompts []string) *QuestionDeck {
	ps := make([]string, len(prompts))
	copy(ps, prompts)
	return &QuestionDeck{prompts: ps}
}

func (d *QuestionDeck) Reset() {
	d.cursor = 0
}

func (d *QuestionDeck) Current() Question {
	if d.cursor >= len(d.prompts) {
		return Question{Text: exhaustedText, Number: len(d.prompts), Total: len(d.prompts)}
	}
	return Question{Text: d.prompts[d.cursor], Number: d.cursor + 1, Total: len(d.prompts)}
}

// Advance moves the cursor forward and reports whether it still indexes a
// real question. A false return tells the caller to move to voting instead
// of emitting another question.
func (d *QuestionDeck) Advance() bool {
	if d.cursor < len(d.prompts) {
		d.cursor++
	}
	return d.cursor < len(d.prompts)
}

func (d *QuestionDeck) Exhausted() bool {
	return d.cursor >= len(d.prompts)
}

func (d *QuestionDeck) Total() int {
	return len(d.prompts)
}
