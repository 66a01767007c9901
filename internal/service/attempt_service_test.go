package service

import (
	"context"
	"errors"
	"testing"

	"quiz_backend/internal/model"
	"quiz_backend/internal/util"
)

func TestSubmitAllCorrectScoresQuestionCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice@example.com")
	quiz := env.newQuiz(t, user, 5, 4)

	result, err := env.attempt.Submit(ctx, quiz.ID, user.ID, correctAnswers(quiz))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 5 {
		t.Fatalf("expected score 5, got %d", result.Score)
	}
	for _, a := range result.Answers {
		if a.Status != AnswerCorrect || !a.IsCorrect {
			t.Fatalf("expected correct item, got %+v", a)
		}
	}

	res, err := env.attempt.LatestResult(ctx, quiz.ID, user.ID)
	if err != nil {
		t.Fatalf("latest result: %v", err)
	}
	if res.Score != 5 || !res.IsPassed {
		t.Fatalf("expected passing score 5, got %+v", res)
	}
}

func TestSubmitEmptyNeverPasses(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice@example.com")
	quiz := env.newQuiz(t, user, 2, 0)

	stored, err := env.quizzes.FindByID(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("find quiz: %v", err)
	}
	if stored.PassingScore != 0 {
		t.Fatalf("expected stored passing_score 0, got %d", stored.PassingScore)
	}

	result, err := env.attempt.Submit(ctx, quiz.ID, user.ID, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 0 || len(result.Answers) != 0 {
		t.Fatalf("expected empty zero-score result, got %+v", result)
	}

	res, err := env.attempt.LatestResult(ctx, quiz.ID, user.ID)
	if err != nil {
		t.Fatalf("latest result: %v", err)
	}
	if res.IsPassed {
		t.Fatal("zero score must not pass even with passing_score 0")
	}
}

func TestLatestResultWithoutAttempt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice@example.com")
	quiz := env.newQuiz(t, user, 1, 1)

	if _, err := env.attempt.LatestResult(ctx, quiz.ID, user.ID); !errors.Is(err, util.ErrAttemptNotFound) {
		t.Fatalf("expected ErrAttemptNotFound, got %v", err)
	}
	if _, err := env.attempt.LatestResult(ctx, quiz.ID+100, user.ID); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestSubmitSkipsUnknownAndForeignQuestions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice@example.com")
	quiz := env.newQuiz(t, user, 2, 1)
	other := env.newQuiz(t, user, 1, 1)

	answers := correctAnswers(quiz)
	answers = append(answers,
		AnswerInput{QuestionID: 99999, ChoiceID: 1},
		correctAnswers(other)[0],
	)

	result, err := env.attempt.Submit(ctx, quiz.ID, user.ID, answers)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 2 || result.Skipped != 2 {
		t.Fatalf("expected score 2 with 2 skipped, got %+v", result)
	}
	for _, a := range result.Answers[2:] {
		if a.Status != AnswerSkipped || a.Reason != SkipQuestionNotFound {
			t.Fatalf("expected skipped item, got %+v", a)
		}
	}

	if linked := env.countLinkedAnswers(t, result.AttemptID); linked != 2 {
		t.Fatalf("skipped items must not be persisted, got %d answers", linked)
	}
}

func TestSubmitChoiceFromOtherQuestionIsIncorrect(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice@example.com")
	quiz := env.newQuiz(t, user, 2, 1)

	first, second := quiz.Questions[0], quiz.Questions[1]
	answers := []AnswerInput{
		{QuestionID: first.ID, ChoiceID: second.CorrectChoice().ID},
		{QuestionID: second.ID, ChoiceID: second.Choices[1].ID},
	}

	result, err := env.attempt.Submit(ctx, quiz.ID, user.ID, answers)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 0 {
		t.Fatalf("expected score 0, got %d", result.Score)
	}
	for _, a := range result.Answers {
		if a.Status != AnswerIncorrect {
			t.Fatalf("expected incorrect, got %+v", a)
		}
	}

	attempt, err := env.attempts.FindLatestWithAnswers(ctx, quiz.ID, user.ID)
	if err != nil {
		t.Fatalf("find latest: %v", err)
	}
	if attempt.Answers[0].ChoiceID != nil {
		t.Fatal("choice outside the question should be stored as null")
	}
	if attempt.Answers[1].ChoiceID == nil || attempt.Answers[1].Answer != "wrong" {
		t.Fatalf("unexpected stored answer: %+v", attempt.Answers[1])
	}
}

func TestRepeatedSubmissionsCreateNewAttempts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice@example.com")
	quiz := env.newQuiz(t, user, 1, 1)

	var lastID uint
	for i := 1; i <= 3; i++ {
		result, err := env.attempt.Submit(ctx, quiz.ID, user.ID, correctAnswers(quiz))
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if result.AttemptID <= lastID {
			t.Fatalf("expected a new attempt id, got %d after %d", result.AttemptID, lastID)
		}
		lastID = result.AttemptID

		if count := env.countAttempts(t, user.ID, quiz.ID); count != int64(i) {
			t.Fatalf("expected %d attempts, got %d", i, count)
		}
	}

	history, err := env.attempt.History(ctx, user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 || history[0].ID != lastID || !history[0].IsPassed {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestSubmitUnknownQuiz(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.attempt.Submit(context.Background(), 42, 1, nil); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestSubmitRejectsTooManyAnswers(t *testing.T) {
	env := newTestEnv(t)
	answers := make([]AnswerInput, model.MaxQuestionsPerQuiz+1)
	if _, err := env.attempt.Submit(context.Background(), 1, 1, answers); !errors.Is(err, util.ErrTooManyAnswers) {
		t.Fatalf("expected ErrTooManyAnswers, got %v", err)
	}
}

func TestSubmitScoresRepeatedQuestionOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice@example.com")
	quiz := env.newQuiz(t, user, 1, 1)

	right := correctAnswers(quiz)[0]
	answers := []AnswerInput{right, right, right, right, right}
	result, err := env.attempt.Submit(ctx, quiz.ID, user.ID, answers)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 1 || result.Skipped != 4 {
		t.Fatalf("expected score 1 with 4 skipped, got %+v", result)
	}
	if result.Answers[0].Status != AnswerCorrect {
		t.Fatalf("first answer must be scored, got %+v", result.Answers[0])
	}
	for _, a := range result.Answers[1:] {
		if a.Status != AnswerSkipped || a.Reason != SkipDuplicateQuestion {
			t.Fatalf("expected duplicate to be skipped, got %+v", a)
		}
	}
	if linked := env.countLinkedAnswers(t, result.AttemptID); linked != 1 {
		t.Fatalf("expected 1 stored answer, got %d", linked)
	}
}
