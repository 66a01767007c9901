package service

import (
	"context"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/pkg/tracing"

	"golang.org/x/sync/errgroup"
)

type AnalyticsService struct {
	AnalyticsRepo *repository.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo *repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{AnalyticsRepo: analyticsRepo}
}

// Overview 汇总全站测验数据，各项聚合查询互不依赖，并发执行
func (s *AnalyticsService) Overview(ctx context.Context) (analytics *model.QuizAnalytics, err error) {
	ctx, span := tracing.StartSpan(ctx, "AnalyticsService.Overview")
	defer func() { tracing.EndSpan(span, err) }()

	var (
		totalQuizzes int64
		totalTakers  int64
		avgScore     *float64
		performance  []model.QuizPerformance
		most, least  *model.QuestionAnswerCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totalQuizzes, err = s.AnalyticsRepo.CountQuizzes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		totalTakers, err = s.AnalyticsRepo.CountQuizTakers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		avgScore, err = s.AnalyticsRepo.AverageScore(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		performance, err = s.AnalyticsRepo.ScoresByQuiz(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		most, err = s.AnalyticsRepo.MostAnsweredQuestion(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		least, err = s.AnalyticsRepo.LeastAnsweredQuestion(gctx)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	return &model.QuizAnalytics{
		QuizOverview: model.QuizOverview{
			TotalQuizzes:     totalQuizzes,
			TotalQuizTakers:  totalTakers,
			AverageQuizScore: avgScore,
		},
		PerformanceMetrics: performance,
		QuestionStatistics: model.QuestionStatistics{
			MostAnsweredQuestion:  most,
			LeastAnsweredQuestion: least,
		},
	}, nil
}
