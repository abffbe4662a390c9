package gamification

// Default badge icons, keyed by badge name. Purely presentational; used
// when a course-defined badge carries no icon URL of its own.
var defaultBadgeIcons = map[string]string{
	"First Steps":       "https://cdn.qulearn.dev/badges/first-steps.svg",
	"Quiz Whiz":         "https://cdn.qulearn.dev/badges/quiz-whiz.svg",
	"Quiz Master":       "https://cdn.qulearn.dev/badges/quiz-master.svg",
	"Circuit Builder":   "https://cdn.qulearn.dev/badges/circuit-builder.svg",
	"Network Navigator": "https://cdn.qulearn.dev/badges/network-navigator.svg",
	"Course Conqueror":  "https://cdn.qulearn.dev/badges/course-conqueror.svg",
	"Quantum Explorer":  "https://cdn.qulearn.dev/badges/quantum-explorer.svg",
}

const fallbackBadgeIcon = "https://cdn.qulearn.dev/badges/default.svg"

// DefaultBadgeIcon returns the icon URL for a badge name, falling back
// to a generic icon for names not in the table.
func DefaultBadgeIcon(name string) string {
	if url, ok := defaultBadgeIcons[name]; ok {
		return url
	}
	return fallbackBadgeIcon
}
