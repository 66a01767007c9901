package repository

import (
	"context"
	"testing"

	"quiz_backend/internal/model"
)

func TestAnalyticsOnEmptyStore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAnalyticsRepository(db)

	avg, err := repo.AverageScore(ctx)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if avg != nil {
		t.Fatalf("expected nil average, got %v", *avg)
	}

	most, err := repo.MostAnsweredQuestion(ctx)
	if err != nil {
		t.Fatalf("most answered: %v", err)
	}
	least, err := repo.LeastAnsweredQuestion(ctx)
	if err != nil {
		t.Fatalf("least answered: %v", err)
	}
	if most != nil || least != nil {
		t.Fatalf("expected nil question statistics, got %+v %+v", most, least)
	}

	scores, err := repo.ScoresByQuiz(ctx)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("expected no performance rows, got %d", len(scores))
	}
}

func TestAnalyticsAggregates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAnalyticsRepository(db)
	attempts := NewAttemptRepository(db)

	alice := mustUser(t, db, "alice@example.com")
	bob := mustUser(t, db, "bob@example.com")
	category := mustCategory(t, db, "Science")
	quizA := mustQuiz(t, db, "A", alice, category, 3)
	quizB := mustQuiz(t, db, "B", alice, category, 1)

	answer := func(user *model.User, q model.Question) model.UserAnswer {
		choiceID := q.Choices[0].ID
		return model.UserAnswer{UserID: user.ID, QuestionID: q.ID, ChoiceID: &choiceID, IsCorrect: true}
	}

	// quizA 的第 2、3 题各作答两次，第 1 题未作答；quizB 的题目作答一次
	q1, q2 := quizA.Questions[1], quizA.Questions[2]
	record := func(user *model.User, quiz *model.Quiz, score uint, answers ...model.UserAnswer) {
		t.Helper()
		if err := attempts.Record(ctx, &model.QuizAttempt{UserID: user.ID, QuizID: quiz.ID}, answers, score); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	record(alice, quizA, 2, answer(alice, q1), answer(alice, q2))
	record(bob, quizA, 4, answer(bob, q2), answer(bob, q1))
	record(bob, quizB, 1, answer(bob, quizB.Questions[0]))

	total, _ := repo.CountQuizzes(ctx)
	takers, _ := repo.CountQuizTakers(ctx)
	if total != 2 || takers != 2 {
		t.Fatalf("expected 2 quizzes and 2 takers, got %d and %d", total, takers)
	}

	avg, err := repo.AverageScore(ctx)
	if err != nil || avg == nil {
		t.Fatalf("average: %v %v", avg, err)
	}
	if *avg < 2.33 || *avg > 2.34 {
		t.Fatalf("expected average 7/3, got %v", *avg)
	}

	scores, err := repo.ScoresByQuiz(ctx)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 performance rows, got %d", len(scores))
	}
	a := scores[0]
	if a.Quiz != quizA.ID || a.AverageScore != 3 || a.HighestScore != 4 || a.LowestScore != 2 {
		t.Fatalf("unexpected quizA metrics: %+v", a)
	}

	// q1 与 q2 次数相同，取 id 较小者
	most, _ := repo.MostAnsweredQuestion(ctx)
	if most == nil || most.Question != q1.ID || most.AnswerCount != 2 {
		t.Fatalf("unexpected most answered: %+v", most)
	}
	least, _ := repo.LeastAnsweredQuestion(ctx)
	if least == nil || least.Question != quizB.Questions[0].ID || least.AnswerCount != 1 {
		t.Fatalf("unexpected least answered: %+v", least)
	}
}
