package examclient

// Navigator tracks the current position within a session's question
// list. The list keeps server order: regular questions first, then
// review questions. Movement clamps at both ends so the user can never
// navigate out of bounds.
type Navigator struct {
	questions []Question
	index     int
}

// NewNavigator creates a navigator positioned at the first question.
func NewNavigator(questions []Question) *Navigator {
	return &Navigator{questions: questions}
}

// Current returns the displayed question, nil when the list is empty.
func (n *Navigator) Current() *Question {
	if len(n.questions) == 0 {
		return nil
	}
	return &n.questions[n.index]
}

// Index returns the current zero-based position.
func (n *Navigator) Index() int { return n.index }

// Len returns the question count.
func (n *Navigator) Len() int { return len(n.questions) }

// Next advances one question and reports whether the index moved.
func (n *Navigator) Next() bool {
	if n.index >= len(n.questions)-1 {
		return false
	}
	n.index++
	return true
}

// Prev moves back one question and reports whether the index moved.
func (n *Navigator) Prev() bool {
	if n.index <= 0 {
		return false
	}
	n.index--
	return true
}
