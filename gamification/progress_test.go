package gamification

import (
	"testing"
	"time"

	"github.com/qu-learn/qulearn-backend/models"
)

func twoModuleCourse() *models.Course {
	return &models.Course{
		Title: "Quantum Foundations",
		Modules: []models.Module{
			{ID: "m1", Lessons: []models.Lesson{{ID: "l1"}, {ID: "l2"}}},
			{ID: "m2", Lessons: []models.Lesson{{ID: "l3"}}},
		},
	}
}

func TestCalculateCourseProgress(t *testing.T) {
	course := twoModuleCourse()

	tests := []struct {
		name      string
		completed []string
		want      int
	}{
		{"none", nil, 0},
		{"one of three", []string{"l1"}, 33},
		{"two of three", []string{"l1", "l3"}, 67},
		{"all", []string{"l1", "l2", "l3"}, 100},
		{"unknown lesson ignored", []string{"l1", "ghost"}, 33},
	}

	for _, tt := range tests {
		ids := make(map[string]struct{})
		for _, id := range tt.completed {
			ids[id] = struct{}{}
		}
		if got := CalculateCourseProgress(course, ids); got != tt.want {
			t.Errorf("%s: expected %d%%, got %d%%", tt.name, tt.want, got)
		}
	}
}

func TestCalculateCourseProgressEmptyCourse(t *testing.T) {
	course := &models.Course{Title: "Empty"}
	if got := CalculateCourseProgress(course, map[string]struct{}{"l1": {}}); got != 0 {
		t.Errorf("expected 0%% for a course with no lessons, got %d%%", got)
	}
}

func TestCompletedLessonIDs(t *testing.T) {
	now := time.Now()
	enrollment := &models.Enrollment{
		Completions: []models.ModuleCompletion{
			{ModuleID: "m1", Lessons: []models.LessonCompletion{
				{LessonID: "l1", CompletedAt: now},
				{LessonID: "l2", CompletedAt: now},
			}},
			{ModuleID: "m2", Lessons: []models.LessonCompletion{
				{LessonID: "l3", CompletedAt: now},
			}},
		},
	}

	ids := CompletedLessonIDs(enrollment)
	if len(ids) != 3 {
		t.Fatalf("expected 3 completed lessons, got %d", len(ids))
	}
	for _, id := range []string{"l1", "l2", "l3"} {
		if _, ok := ids[id]; !ok {
			t.Errorf("expected %s in completed set", id)
		}
	}
}

func TestTotalLessons(t *testing.T) {
	if got := TotalLessons(twoModuleCourse()); got != 3 {
		t.Errorf("expected 3 lessons, got %d", got)
	}
}
