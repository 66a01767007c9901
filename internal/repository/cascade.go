package repository

import (
	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

// 级联删除辅助函数，全部在调用方事务内执行，不依赖数据库外键的 ON DELETE 支持

const attemptAnswersTable = "quiz_attempt_answers"

func deleteAttempts(tx *gorm.DB, attemptIDs []uint) error {
	if len(attemptIDs) == 0 {
		return nil
	}
	if err := tx.Exec("DELETE FROM "+attemptAnswersTable+" WHERE quiz_attempt_id IN ?", attemptIDs).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", attemptIDs).Delete(&model.QuizAttempt{}).Error
}

func deleteAnswers(tx *gorm.DB, answerIDs []uint) error {
	if len(answerIDs) == 0 {
		return nil
	}
	if err := tx.Exec("DELETE FROM "+attemptAnswersTable+" WHERE user_answer_id IN ?", answerIDs).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", answerIDs).Delete(&model.UserAnswer{}).Error
}

func deleteQuizzes(tx *gorm.DB, quizIDs []uint) error {
	if len(quizIDs) == 0 {
		return nil
	}

	var attemptIDs []uint
	if err := tx.Model(&model.QuizAttempt{}).Where("quiz_id IN ?", quizIDs).Pluck("id", &attemptIDs).Error; err != nil {
		return err
	}
	if err := deleteAttempts(tx, attemptIDs); err != nil {
		return err
	}

	var questionIDs []uint
	if err := tx.Model(&model.Question{}).Where("quiz_id IN ?", quizIDs).Pluck("id", &questionIDs).Error; err != nil {
		return err
	}
	if len(questionIDs) > 0 {
		var answerIDs []uint
		if err := tx.Model(&model.UserAnswer{}).Where("question_id IN ?", questionIDs).Pluck("id", &answerIDs).Error; err != nil {
			return err
		}
		if err := deleteAnswers(tx, answerIDs); err != nil {
			return err
		}
		if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", questionIDs).Delete(&model.Question{}).Error; err != nil {
			return err
		}
	}

	return tx.Where("id IN ?", quizIDs).Delete(&model.Quiz{}).Error
}
