package gamification

import (
	"math"

	"github.com/qu-learn/qulearn-backend/models"
)

// PassingScore is the minimum percentage counted as a pass.
const PassingScore = 60

// QuestionAnswerKey echoes the correct answers for one question so the
// client can render a post-submission review.
type QuestionAnswerKey struct {
	QuestionID     string   `json:"questionId"`
	CorrectAnswers []string `json:"correctAnswers"`
}

// QuizResult is the outcome of scoring one submission.
type QuizResult struct {
	Score          int                 `json:"score"`
	IsPassed       bool                `json:"isPassed"`
	CorrectAnswers []QuestionAnswerKey `json:"correctAnswers"`
}

// CalculateQuizScore grades a submission against the question answer
// keys. A question counts as correct only when the submitted answer set
// equals the key exactly, so multi-select questions get no partial
// credit. A question with no matching submission entry scores zero.
func CalculateQuizScore(questions []models.Question, submitted []models.SubmittedAnswer) QuizResult {
	byQuestion := make(map[string][]string, len(submitted))
	for _, s := range submitted {
		if s.QuestionID == "" {
			continue
		}
		byQuestion[s.QuestionID] = s.Answers
	}

	result := QuizResult{CorrectAnswers: make([]QuestionAnswerKey, 0, len(questions))}
	correct := 0
	for _, q := range questions {
		if answerSetsEqual(q.Answers, byQuestion[q.ID]) {
			correct++
		}
		result.CorrectAnswers = append(result.CorrectAnswers, QuestionAnswerKey{
			QuestionID:     q.ID,
			CorrectAnswers: q.Answers,
		})
	}

	if len(questions) > 0 {
		result.Score = int(math.Round(100 * float64(correct) / float64(len(questions))))
	}
	result.IsPassed = result.Score >= PassingScore
	return result
}

// answerSetsEqual compares two answer lists as sets: same size, same
// elements, order-independent. Duplicates collapse.
func answerSetsEqual(key, submitted []string) bool {
	keySet := make(map[string]struct{}, len(key))
	for _, a := range key {
		keySet[a] = struct{}{}
	}
	subSet := make(map[string]struct{}, len(submitted))
	for _, a := range submitted {
		subSet[a] = struct{}{}
	}
	if len(keySet) != len(subSet) {
		return false
	}
	for a := range keySet {
		if _, ok := subSet[a]; !ok {
			return false
		}
	}
	return true
}
