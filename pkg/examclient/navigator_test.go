package examclient

import "testing"

func questionList(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{ID: int64(i + 1), SeqNo: i + 1}
	}
	return qs
}

func TestNavigatorClampsAtBounds(t *testing.T) {
	nav := NewNavigator(questionList(3))

	if nav.Prev() {
		t.Error("Prev at index 0 moved")
	}
	if nav.Index() != 0 {
		t.Errorf("index = %d, want 0", nav.Index())
	}

	if !nav.Next() || !nav.Next() {
		t.Fatal("Next within bounds did not move")
	}
	if nav.Next() {
		t.Error("Next at last index moved")
	}
	if nav.Index() != 2 {
		t.Errorf("index = %d, want 2", nav.Index())
	}

	if !nav.Prev() {
		t.Error("Prev within bounds did not move")
	}
	if got := nav.Current(); got == nil || got.ID != 2 {
		t.Errorf("current = %+v, want question 2", got)
	}
}

func TestNavigatorEmptyList(t *testing.T) {
	nav := NewNavigator(nil)
	if nav.Current() != nil {
		t.Error("Current on empty list is not nil")
	}
	if nav.Next() || nav.Prev() {
		t.Error("movement on empty list")
	}
}
