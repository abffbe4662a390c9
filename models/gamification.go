package models

import "time"

// GamificationEvent represents a gamification event to broadcast via WebSocket
type GamificationEvent struct {
	Type      string    `json:"type"` // "badge_awarded", "points_awarded", "streak_updated", "course_completed"
	UserID    string    `json:"userId"`
	BadgeName string    `json:"badgeName,omitempty"`
	Points    int       `json:"points,omitempty"`
	NewPoints int       `json:"newPoints,omitempty"`
	Streak    int       `json:"streak,omitempty"`
	CourseID  string    `json:"courseId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
