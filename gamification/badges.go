package gamification

import (
	"time"

	"github.com/qu-learn/qulearn-backend/models"
)

// BadgeCounters are the cumulative totals badge criteria are judged
// against.
type BadgeCounters struct {
	CoursesCompleted int
	QuizzesAnswered  int
	SimulationsRun   int
}

// UserBadgeCounters derives the badge counters from a user document.
func UserBadgeCounters(user *models.User) BadgeCounters {
	counters := BadgeCounters{
		QuizzesAnswered: user.QuizzesAnswered,
		SimulationsRun:  user.SimulationsRun,
	}
	for _, e := range user.Enrollments {
		if e.CompletedAt != nil {
			counters.CoursesCompleted++
		}
	}
	return counters
}

// EvaluateBadges checks every badge in the catalog against the counters
// and returns the achievements the user newly earned. Badges the user
// already owns are skipped, and a badge name is granted at most once
// even if the catalog lists it on several courses. Unrecognized or
// missing criteria never grant.
func EvaluateBadges(catalog []models.Badge, counters BadgeCounters, owned map[string]bool, now time.Time) []models.Achievement {
	var earned []models.Achievement
	granted := make(map[string]bool, len(owned))
	for name := range owned {
		granted[name] = true
	}

	for _, badge := range catalog {
		if badge.Name == "" || granted[badge.Name] {
			continue
		}

		var counter int
		switch badge.Criteria.Type {
		case models.CriteriaCoursesCompleted:
			counter = counters.CoursesCompleted
		case models.CriteriaQuizzesAnswered:
			counter = counters.QuizzesAnswered
		case models.CriteriaSimulationsRun:
			counter = counters.SimulationsRun
		default:
			continue
		}

		if counter >= badge.Criteria.Threshold {
			earned = append(earned, models.Achievement{BadgeName: badge.Name, AchievedAt: now})
			granted[badge.Name] = true
		}
	}
	return earned
}

// OwnedBadges builds the lookup of badge names already granted to the
// user.
func OwnedBadges(user *models.User) map[string]bool {
	owned := make(map[string]bool, len(user.Achievements))
	for _, a := range user.Achievements {
		owned[a.BadgeName] = true
	}
	return owned
}
