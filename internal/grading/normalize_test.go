package grading

import "testing"

func TestCorrectContractions(t *testing.T) {
	cases := []struct {
		name   string
		user   string
		answer string
	}{
		{"im", "I'm", "I am"},
		{"im reversed", "I am", "I'm"},
		{"hes", "He's tall", "He is tall"},
		{"dont", "don't", "do not"},
		{"dont sentence", "I don't know", "I do not know"},
		{"wont", "won't", "will not"},
		{"wont sentence", "I won't go", "I will not go"},
		{"cant", "can't", "cannot"},
		{"cant sentence", "I can't swim", "I cannot swim"},
		{"ive", "I've been there", "I have been there"},
		{"lets", "let's go", "let us go"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !Correct(tc.user, tc.answer, "") {
				t.Errorf("Correct(%q, %q) = false, want true", tc.user, tc.answer)
			}
			if !Correct(tc.answer, tc.user, "") {
				t.Errorf("Correct(%q, %q) = false, want true", tc.answer, tc.user)
			}
		})
	}
}

func TestCorrectHyphensAndSpacing(t *testing.T) {
	cases := []struct {
		user   string
		answer string
	}{
		{"ice-cream", "ice cream"},
		{"ice cream", "icecream"},
		{"ice-cream", "icecream"},
		{"e-mail", "email"},
		{"bus stop", "busstop"},
		{"New York", "newyork"},
		{"HELLO", "hello"},
		{"Hello World", "hello world"},
	}

	for _, tc := range cases {
		if !Correct(tc.user, tc.answer, "") {
			t.Errorf("Correct(%q, %q) = false, want true", tc.user, tc.answer)
		}
	}
}

func TestCorrectStrictSpelling(t *testing.T) {
	cases := []struct {
		user   string
		answer string
	}{
		{"aple", "apple"},
		{"recieve", "receive"},
		{"banana", "apple"},
		{"", "apple"},
		{"   ", "apple"},
	}

	for _, tc := range cases {
		if Correct(tc.user, tc.answer, "") {
			t.Errorf("Correct(%q, %q) = true, want false", tc.user, tc.answer)
		}
	}
}

func TestCorrectAltAnswers(t *testing.T) {
	if !Correct("subway", "underground", "subway|metro") {
		t.Error("alt answer not accepted")
	}
	if !Correct("Metro", "underground", "subway|metro") {
		t.Error("second alt answer not accepted")
	}
	if Correct("train", "underground", "subway|metro") {
		t.Error("non-matching answer accepted")
	}
	if Correct("", "underground", "subway|metro") {
		t.Error("blank answer accepted")
	}
}

func TestNormalizeCurlyApostrophe(t *testing.T) {
	if Normalize("I’m") != Normalize("I am") {
		t.Error("curly apostrophe not treated as straight")
	}
}
