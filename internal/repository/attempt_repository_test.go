package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

func TestRecordPersistsAttemptWithAnswers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAttemptRepository(db)

	creator := mustUser(t, db, "creator@example.com")
	category := mustCategory(t, db, "Science")
	quiz := mustQuiz(t, db, "Physics", creator, category, 2)

	var answers []model.UserAnswer
	for _, q := range quiz.Questions {
		choiceID := q.Choices[0].ID
		answers = append(answers, model.UserAnswer{UserID: creator.ID, QuestionID: q.ID, ChoiceID: &choiceID, IsCorrect: true})
	}

	attempt := &model.QuizAttempt{UserID: creator.ID, QuizID: quiz.ID}
	if err := repo.Record(ctx, attempt, answers, 2); err != nil {
		t.Fatalf("record: %v", err)
	}
	if attempt.ID == 0 || attempt.Score != 2 {
		t.Fatalf("unexpected attempt: %+v", attempt)
	}

	if linked := countLinkedAnswers(t, db, attempt.ID); linked != 2 {
		t.Fatalf("expected 2 linked answers, got %d", linked)
	}

	latest, err := repo.FindLatestWithAnswers(ctx, quiz.ID, creator.ID)
	if err != nil {
		t.Fatalf("find latest: %v", err)
	}
	if latest.Score != 2 || len(latest.Answers) != 2 {
		t.Fatalf("unexpected latest attempt: score=%d answers=%d", latest.Score, len(latest.Answers))
	}
}

func TestFindLatestPrefersNewestThenHighestID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAttemptRepository(db)

	user := mustUser(t, db, "user@example.com")
	category := mustCategory(t, db, "Science")
	quiz := mustQuiz(t, db, "Physics", user, category, 1)

	if _, err := repo.FindLatest(ctx, quiz.ID, user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found before any attempt, got %v", err)
	}

	stamp := time.Now().Add(-time.Hour).Truncate(time.Second)
	older := &model.QuizAttempt{UserID: user.ID, QuizID: quiz.ID, Score: 5, Timestamp: stamp.Add(-time.Minute)}
	first := &model.QuizAttempt{UserID: user.ID, QuizID: quiz.ID, Score: 1, Timestamp: stamp}
	second := &model.QuizAttempt{UserID: user.ID, QuizID: quiz.ID, Score: 3, Timestamp: stamp}
	for _, a := range []*model.QuizAttempt{older, first, second} {
		if err := db.Create(a).Error; err != nil {
			t.Fatalf("create attempt: %v", err)
		}
	}

	latest, err := repo.FindLatest(ctx, quiz.ID, user.ID)
	if err != nil {
		t.Fatalf("find latest: %v", err)
	}
	if latest.ID != second.ID {
		t.Fatalf("expected attempt %d, got %d", second.ID, latest.ID)
	}
	if latest.Quiz == nil || latest.Quiz.PassingScore != model.DefaultPassingScore {
		t.Fatalf("quiz not preloaded: %+v", latest.Quiz)
	}

	if count := countAttempts(t, db, user.ID, quiz.ID); count != 3 {
		t.Fatalf("expected 3 attempts, got %d", count)
	}

	history, err := repo.ListByUser(ctx, user.ID, 0)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(history) != 3 || history[0].ID != second.ID || history[2].ID != older.ID {
		t.Fatalf("unexpected history order: %+v", history)
	}
}
