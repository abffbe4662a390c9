package gamification

import (
	"testing"

	"github.com/qu-learn/qulearn-backend/models"
)

func sampleQuestions() []models.Question {
	return []models.Question{
		{ID: "q1", Type: "single-choice", Answers: []string{"superposition"}},
		{ID: "q2", Type: "multi-select", Answers: []string{"A", "B", "C"}},
	}
}

func TestCalculateQuizScoreAllCorrect(t *testing.T) {
	result := CalculateQuizScore(sampleQuestions(), []models.SubmittedAnswer{
		{QuestionID: "q1", Answers: []string{"superposition"}},
		{QuestionID: "q2", Answers: []string{"C", "A", "B"}}, // order must not matter
	})

	if result.Score != 100 {
		t.Errorf("expected score 100, got %d", result.Score)
	}
	if !result.IsPassed {
		t.Errorf("expected pass at 100")
	}
}

func TestCalculateQuizScoreHalfCorrect(t *testing.T) {
	result := CalculateQuizScore(sampleQuestions(), []models.SubmittedAnswer{
		{QuestionID: "q1", Answers: []string{"superposition"}},
		{QuestionID: "q2", Answers: []string{"A", "B"}}, // subset of the key, no partial credit
	})

	if result.Score != 50 {
		t.Errorf("expected score 50, got %d", result.Score)
	}
	if result.IsPassed {
		t.Errorf("50 must not pass at a 60 threshold")
	}
}

func TestCalculateQuizScoreMissingSubmission(t *testing.T) {
	result := CalculateQuizScore(sampleQuestions(), []models.SubmittedAnswer{
		{QuestionID: "q2", Answers: []string{"A", "B", "C"}},
	})

	if result.Score != 50 {
		t.Errorf("missing submission should score as zero credit; expected 50, got %d", result.Score)
	}
}

func TestCalculateQuizScoreSupersetIncorrect(t *testing.T) {
	result := CalculateQuizScore(sampleQuestions()[1:], []models.SubmittedAnswer{
		{QuestionID: "q2", Answers: []string{"A", "B", "C", "D"}},
	})

	if result.Score != 0 {
		t.Errorf("superset of the key must be incorrect; expected 0, got %d", result.Score)
	}
}

func TestCalculateQuizScoreNoQuestions(t *testing.T) {
	result := CalculateQuizScore(nil, nil)
	if result.Score != 0 || result.IsPassed {
		t.Errorf("quiz with no questions must score 0 and fail, got %d passed=%v", result.Score, result.IsPassed)
	}
}

func TestCalculateQuizScoreEchoesAnswerKeys(t *testing.T) {
	result := CalculateQuizScore(sampleQuestions(), nil)

	if len(result.CorrectAnswers) != 2 {
		t.Fatalf("expected 2 answer keys, got %d", len(result.CorrectAnswers))
	}
	if result.CorrectAnswers[0].QuestionID != "q1" || result.CorrectAnswers[1].QuestionID != "q2" {
		t.Errorf("answer keys out of order: %+v", result.CorrectAnswers)
	}
	if len(result.CorrectAnswers[1].CorrectAnswers) != 3 {
		t.Errorf("expected full key echoed for q2, got %v", result.CorrectAnswers[1].CorrectAnswers)
	}
}

func TestPointsForQuiz(t *testing.T) {
	settings := &models.GamificationSettings{PointsPerQuiz: 20}

	tests := []struct {
		score int
		want  int
	}{
		{0, 0},
		{50, 10},
		{75, 15},
		{100, 20},
	}
	for _, tt := range tests {
		if got := PointsForQuiz(settings, tt.score); got != tt.want {
			t.Errorf("score %d: expected %d points, got %d", tt.score, tt.want, got)
		}
	}

	if got := PointsForQuiz(nil, 100); got != 0 {
		t.Errorf("nil settings must award nothing, got %d", got)
	}
}
