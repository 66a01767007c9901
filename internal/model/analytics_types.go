package model

// QuizOverview 全局测验概览
type QuizOverview struct {
	TotalQuizzes     int64    `json:"total_quizzes"`
	TotalQuizTakers  int64    `json:"total_quiz_takers"`
	AverageQuizScore *float64 `json:"average_quiz_score"`
}

// QuizPerformance 单个测验的得分统计
type QuizPerformance struct {
	Quiz         uint    `json:"quiz"`
	AverageScore float64 `json:"average_score"`
	HighestScore uint    `json:"highest_score"`
	LowestScore  uint    `json:"lowest_score"`
}

// QuestionAnswerCount 题目被作答次数
type QuestionAnswerCount struct {
	Question    uint  `json:"question"`
	AnswerCount int64 `json:"answer_count"`
}

// QuestionStatistics 作答最多/最少的题目，无作答记录时为 null
type QuestionStatistics struct {
	MostAnsweredQuestion  *QuestionAnswerCount `json:"most_answered_question"`
	LeastAnsweredQuestion *QuestionAnswerCount `json:"least_answered_question"`
}

// QuizAnalytics 分析接口响应
type QuizAnalytics struct {
	QuizOverview       QuizOverview       `json:"quiz_overview"`
	PerformanceMetrics []QuizPerformance  `json:"performance_metrics"`
	QuestionStatistics QuestionStatistics `json:"question_statistics"`
}
