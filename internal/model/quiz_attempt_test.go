package model

import "testing"

func TestQuizAttemptPassed(t *testing.T) {
	cases := []struct {
		name         string
		score        uint
		passingScore uint
		want         bool
	}{
		{"zero score with zero threshold", 0, 0, false},
		{"zero score with default threshold", 0, DefaultPassingScore, false},
		{"exactly at threshold", 4, 4, true},
		{"below threshold", 3, 4, false},
		{"positive score with zero threshold", 1, 0, true},
	}

	for _, tc := range cases {
		attempt := QuizAttempt{Score: tc.score}
		if got := attempt.Passed(tc.passingScore); got != tc.want {
			t.Fatalf("%s: Passed(%d) with score %d = %v, want %v", tc.name, tc.passingScore, tc.score, got, tc.want)
		}
	}
}

func TestQuestionCorrectChoice(t *testing.T) {
	q := Question{Choices: []Choice{{ID: 1, Text: "a"}, {ID: 2, Text: "b", IsCorrect: true}}}
	if c := q.CorrectChoice(); c == nil || c.ID != 2 {
		t.Fatalf("expected choice 2 to be correct, got %+v", c)
	}
	if c := q.FindChoice(3); c != nil {
		t.Fatalf("expected no choice 3, got %+v", c)
	}

	empty := Question{Choices: []Choice{{ID: 1}}}
	if c := empty.CorrectChoice(); c != nil {
		t.Fatalf("expected nil correct choice, got %+v", c)
	}
}
