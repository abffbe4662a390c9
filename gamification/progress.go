package gamification

import (
	"math"

	"github.com/qu-learn/qulearn-backend/models"
)

// TotalLessons counts every lesson across all modules of a course.
func TotalLessons(course *models.Course) int {
	total := 0
	for _, m := range course.Modules {
		total += len(m.Lessons)
	}
	return total
}

// CompletedLessonIDs flattens an enrollment's completion records into a
// set of lesson ids. The module/lesson structure with timestamps is the
// source of truth; this is the derived view used for progress math.
func CompletedLessonIDs(enrollment *models.Enrollment) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, mc := range enrollment.Completions {
		for _, lc := range mc.Lessons {
			ids[lc.LessonID] = struct{}{}
		}
	}
	return ids
}

// CalculateCourseProgress returns the completion percentage for a course
// given the set of completed lesson ids, rounded and clamped to [0, 100].
// A course with no lessons is always at 0.
func CalculateCourseProgress(course *models.Course, completedIDs map[string]struct{}) int {
	total := TotalLessons(course)
	if total == 0 {
		return 0
	}

	completed := 0
	for _, m := range course.Modules {
		for _, l := range m.Lessons {
			if _, ok := completedIDs[l.ID]; ok {
				completed++
			}
		}
	}

	pct := int(math.Round(100 * float64(completed) / float64(total)))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
