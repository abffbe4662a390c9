package gamification

import (
	"sort"
	"time"

	"github.com/qu-learn/qulearn-backend/models"
)

// calendarDay truncates a timestamp to its UTC calendar day.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
}

// UpdateLearningStreak applies the incremental streak rule to a user for
// an activity happening at now: same day leaves the streak untouched,
// the next day extends it, anything else resets it to 1. Must be called
// once per qualifying activity event, before the user is persisted.
func UpdateLearningStreak(user *models.User, now time.Time) {
	today := calendarDay(now)

	if user.LastActiveDate == nil {
		user.LearningStreak = 1
		user.LastActiveDate = &now
		return
	}

	lastDay := calendarDay(*user.LastActiveDate)
	daysDiff := int(today.Sub(lastDay).Hours() / 24)

	switch {
	case daysDiff == 0:
		// Same-day activity never double-counts.
	case daysDiff == 1:
		user.LearningStreak++
		user.LastActiveDate = &now
	default:
		// Gap, or clock skew put now before lastActiveDate.
		user.LearningStreak = 1
		user.LastActiveDate = &now
	}
}

// ActivityDays collects every distinct calendar day on which the user
// completed at least one lesson, across all enrollments. It reads both
// the per-day activity history and the timestamps on the lesson
// completion records, since backdated completions may exist in one but
// not the other.
func ActivityDays(user *models.User) []time.Time {
	seen := make(map[time.Time]struct{})
	for i := range user.Enrollments {
		e := &user.Enrollments[i]
		for _, day := range e.ActivityHistory {
			if day.LessonsCompleted > 0 {
				seen[calendarDay(day.Date)] = struct{}{}
			}
		}
		for _, mc := range e.Completions {
			for _, lc := range mc.Lessons {
				if !lc.CompletedAt.IsZero() {
					seen[calendarDay(lc.CompletedAt)] = struct{}{}
				}
			}
		}
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// ComputeStreaks derives the longest-ever streak and the current
// (today-anchored) streak from a set of activity days. The current
// streak walks backward starting at today; if today itself has no
// activity it is 0.
func ComputeStreaks(days []time.Time, today time.Time) (longest, current int) {
	if len(days) == 0 {
		return 0, 0
	}

	set := make(map[time.Time]struct{}, len(days))
	sorted := make([]time.Time, 0, len(days))
	for _, d := range days {
		day := calendarDay(d)
		if _, ok := set[day]; ok {
			continue
		}
		set[day] = struct{}{}
		sorted = append(sorted, day)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Sub(sorted[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	for day := calendarDay(today); ; day = day.AddDate(0, 0, -1) {
		if _, ok := set[day]; !ok {
			break
		}
		current++
	}
	return longest, current
}
