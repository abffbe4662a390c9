package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/qu-learn/qulearn-backend/models"
)

// fakeUserStore keeps users in memory and counts saves.
type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
	saves int
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users[id], nil
}

func (s *fakeUserStore) FindTopStudents(_ context.Context, limit int) ([]models.User, error) {
	var students []models.User
	for _, u := range s.users {
		if u.Role == models.RoleStudent {
			students = append(students, *u)
		}
	}
	// Insertion sort by points descending; the fake has few users.
	for i := 1; i < len(students); i++ {
		for j := i; j > 0 && students[j].Points > students[j-1].Points; j-- {
			students[j], students[j-1] = students[j-1], students[j]
		}
	}
	if len(students) > limit {
		students = students[:limit]
	}
	return students, nil
}

func (s *fakeUserStore) Save(_ context.Context, user *models.User) error {
	s.users[user.ID] = user
	s.saves++
	return nil
}

// fakeCourseStore serves a fixed course list.
type fakeCourseStore struct {
	courses []*models.Course
}

func (s *fakeCourseStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Course, error) {
	for _, c := range s.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (s *fakeCourseStore) FindWithBadges(_ context.Context) ([]models.Course, error) {
	var out []models.Course
	for _, c := range s.courses {
		if c.GamificationSettings != nil && len(c.GamificationSettings.Badges) > 0 {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeCourseStore) FindBySimulation(_ context.Context, simulationType, simulationID string) (*models.Course, error) {
	for _, c := range s.courses {
		for _, m := range c.Modules {
			for _, l := range m.Lessons {
				switch simulationType {
				case models.SimulationTypeCircuit:
					if l.CircuitID == simulationID {
						return c, nil
					}
				case models.SimulationTypeNetwork:
					if l.NetworkID == simulationID {
						return c, nil
					}
				}
			}
		}
	}
	return nil, nil
}

func testCourse() *models.Course {
	return &models.Course{
		ID:    primitive.NewObjectID(),
		Title: "Intro to Quantum Circuits",
		Modules: []models.Module{
			{ID: "m1", Lessons: []models.Lesson{
				{
					ID:        "l1",
					CircuitID: "sim-bell-pair",
					Quiz: &models.Quiz{
						Title: "Basics",
						Questions: []models.Question{
							{ID: "q1", Answers: []string{"qubit"}},
							{ID: "q2", Answers: []string{"H", "CNOT"}},
						},
					},
				},
			}},
		},
		GamificationSettings: &models.GamificationSettings{
			PointsPerQuiz:       20,
			PointsPerSimulation: 15,
			Badges: []models.Badge{
				{Name: "Quiz Whiz", Criteria: models.BadgeCriteria{Type: models.CriteriaQuizzesAnswered, Threshold: 1}},
				{Name: "Course Conqueror", Criteria: models.BadgeCriteria{Type: models.CriteriaCoursesCompleted, Threshold: 1}},
			},
		},
	}
}

func testStudent(course *models.Course) *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "niluka@example.com",
		FullName: "Niluka Perera",
		Role:     models.RoleStudent,
		Enrollments: []models.Enrollment{
			{CourseID: course.ID, EnrolledAt: time.Now()},
		},
	}
}

func newTestService(users *fakeUserStore, courses *fakeCourseStore) *GamificationService {
	svc := NewGamificationService(users, courses)
	svc.now = func() time.Time { return time.Date(2026, time.April, 2, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestSubmitQuizPartialScore(t *testing.T) {
	course := testCourse()
	user := testStudent(course)
	users := newFakeUserStore(user)
	svc := newTestService(users, &fakeCourseStore{courses: []*models.Course{course}})

	result, err := svc.SubmitQuiz(context.Background(), user, course, "m1", "l1", []models.SubmittedAnswer{
		{QuestionID: "q1", Answers: []string{"qubit"}},
		{QuestionID: "q2", Answers: []string{"H"}},
	})
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}

	if result.Score != 50 || result.IsPassed {
		t.Errorf("expected score 50 / failed, got %d passed=%v", result.Score, result.IsPassed)
	}
	if result.PointsAwarded != 10 {
		t.Errorf("expected 10 points (round(20*50/100)), got %d", result.PointsAwarded)
	}
	if user.Points != 10 {
		t.Errorf("expected user points 10, got %d", user.Points)
	}
	if user.QuizzesAnswered != 1 {
		t.Errorf("expected quizzesAnswered 1, got %d", user.QuizzesAnswered)
	}
	if result.LessonCompleted {
		t.Errorf("failed quiz must not complete the lesson")
	}
	if user.Enrollments[0].ProgressPercentage != 0 {
		t.Errorf("expected progress 0, got %d", user.Enrollments[0].ProgressPercentage)
	}
	if len(user.Enrollments[0].QuizAttempts) != 1 {
		t.Errorf("expected 1 recorded attempt, got %d", len(user.Enrollments[0].QuizAttempts))
	}
	if users.saves != 1 {
		t.Errorf("expected exactly one save, got %d", users.saves)
	}
}

func TestSubmitQuizPerfectScoreCompletesCourse(t *testing.T) {
	course := testCourse()
	user := testStudent(course)
	users := newFakeUserStore(user)
	svc := newTestService(users, &fakeCourseStore{courses: []*models.Course{course}})

	result, err := svc.SubmitQuiz(context.Background(), user, course, "m1", "l1", []models.SubmittedAnswer{
		{QuestionID: "q1", Answers: []string{"qubit"}},
		{QuestionID: "q2", Answers: []string{"CNOT", "H"}},
	})
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}

	if result.Score != 100 || !result.IsPassed {
		t.Errorf("expected score 100 / passed, got %d passed=%v", result.Score, result.IsPassed)
	}
	if result.PointsAwarded != 20 {
		t.Errorf("expected 20 points, got %d", result.PointsAwarded)
	}
	if !result.LessonCompleted {
		t.Errorf("passed quiz must complete the lesson")
	}
	if !result.CourseCompleted {
		t.Errorf("only lesson of the course: completion must finish the course")
	}

	e := user.Enrollments[0]
	if e.ProgressPercentage != 100 {
		t.Errorf("expected progress 100, got %d", e.ProgressPercentage)
	}
	if e.CompletedAt == nil {
		t.Errorf("expected completedAt to be latched")
	}
	if user.LearningStreak != 1 {
		t.Errorf("first activity should start streak at 1, got %d", user.LearningStreak)
	}

	// Quiz Whiz (1 quiz) and Course Conqueror (1 course) both unlock here.
	owned := make(map[string]bool)
	for _, a := range user.Achievements {
		if owned[a.BadgeName] {
			t.Errorf("badge %s granted twice", a.BadgeName)
		}
		owned[a.BadgeName] = true
	}
	if !owned["Quiz Whiz"] || !owned["Course Conqueror"] {
		t.Errorf("expected Quiz Whiz and Course Conqueror, got %v", user.Achievements)
	}
}

func TestSubmitQuizNoGamificationSettings(t *testing.T) {
	course := testCourse()
	course.GamificationSettings = nil
	user := testStudent(course)
	users := newFakeUserStore(user)
	svc := newTestService(users, &fakeCourseStore{courses: []*models.Course{course}})

	result, err := svc.SubmitQuiz(context.Background(), user, course, "m1", "l1", []models.SubmittedAnswer{
		{QuestionID: "q1", Answers: []string{"qubit"}},
		{QuestionID: "q2", Answers: []string{"H", "CNOT"}},
	})
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}

	if result.PointsAwarded != 0 || user.Points != 0 {
		t.Errorf("no gamification settings must award nothing, got %d", user.Points)
	}
	if !result.LessonCompleted {
		t.Errorf("lesson completion is independent of gamification settings")
	}
	if user.QuizzesAnswered != 1 {
		t.Errorf("attempt counter still increments, got %d", user.QuizzesAnswered)
	}
}

func TestMarkLessonCompletedIdempotent(t *testing.T) {
	course := testCourse()
	user := testStudent(course)
	svc := newTestService(newFakeUserStore(user), &fakeCourseStore{courses: []*models.Course{course}})

	first := svc.MarkLessonCompleted(user, course, "m1", "l1")
	if !first.NewlyCompleted {
		t.Fatalf("first completion should register")
	}

	second := svc.MarkLessonCompleted(user, course, "m1", "l1")
	if second.NewlyCompleted {
		t.Errorf("re-completion must be a no-op")
	}

	e := user.Enrollments[0]
	if len(e.Completions) != 1 || len(e.Completions[0].Lessons) != 1 {
		t.Errorf("duplicate completion recorded: %+v", e.Completions)
	}
	if len(e.ActivityHistory) != 1 || e.ActivityHistory[0].LessonsCompleted != 1 {
		t.Errorf("activity history double-counted: %+v", e.ActivityHistory)
	}
	if first.ProgressPercentage != second.ProgressPercentage {
		t.Errorf("progress changed on re-completion: %d vs %d", first.ProgressPercentage, second.ProgressPercentage)
	}
}

func TestMarkLessonCompletedLatchSurvivesRecompute(t *testing.T) {
	course := testCourse()
	user := testStudent(course)
	svc := newTestService(newFakeUserStore(user), &fakeCourseStore{courses: []*models.Course{course}})

	svc.MarkLessonCompleted(user, course, "m1", "l1")
	completedAt := user.Enrollments[0].CompletedAt
	if completedAt == nil {
		t.Fatalf("expected completedAt set")
	}

	// Course grows a lesson afterward; progress drops below 100 but the
	// completion timestamp stays.
	course.Modules[0].Lessons = append(course.Modules[0].Lessons, models.Lesson{ID: "l2"})
	svc.MarkLessonCompleted(user, course, "m1", "l2")

	if user.Enrollments[0].CompletedAt == nil || !user.Enrollments[0].CompletedAt.Equal(*completedAt) {
		t.Errorf("completedAt must never be unset or moved once latched")
	}
}

func TestTrackSimulationRunExactlyOnce(t *testing.T) {
	course := testCourse()
	user := testStudent(course)
	users := newFakeUserStore(user)
	svc := newTestService(users, &fakeCourseStore{courses: []*models.Course{course}})

	points, _, err := svc.TrackSimulationRun(context.Background(), user.ID, "sim-bell-pair", models.SimulationTypeCircuit)
	if err != nil {
		t.Fatalf("TrackSimulationRun failed: %v", err)
	}
	if points != 15 {
		t.Errorf("expected 15 points on first run, got %d", points)
	}
	if user.SimulationsRun != 1 {
		t.Errorf("expected simulationsRun 1, got %d", user.SimulationsRun)
	}

	points, _, err = svc.TrackSimulationRun(context.Background(), user.ID, "sim-bell-pair", models.SimulationTypeCircuit)
	if err != nil {
		t.Fatalf("second TrackSimulationRun failed: %v", err)
	}
	if points != 0 {
		t.Errorf("second run of the same simulation must award nothing, got %d", points)
	}
	if user.Points != 15 || user.SimulationsRun != 1 {
		t.Errorf("counters changed on repeat run: points=%d runs=%d", user.Points, user.SimulationsRun)
	}
}

func TestTrackSimulationRunNoOps(t *testing.T) {
	course := testCourse()
	instructor := testStudent(course)
	instructor.Role = models.RoleInstructor
	users := newFakeUserStore(instructor)
	svc := newTestService(users, &fakeCourseStore{courses: []*models.Course{course}})

	if points, _, _ := svc.TrackSimulationRun(context.Background(), instructor.ID, "sim-bell-pair", models.SimulationTypeCircuit); points != 0 {
		t.Errorf("non-students must not be awarded, got %d", points)
	}

	student := testStudent(course)
	users = newFakeUserStore(student)
	svc = newTestService(users, &fakeCourseStore{courses: []*models.Course{course}})
	if points, _, _ := svc.TrackSimulationRun(context.Background(), student.ID, "sim-unknown", models.SimulationTypeCircuit); points != 0 {
		t.Errorf("simulation without an owning course must no-op, got %d", points)
	}
	if users.saves != 0 {
		t.Errorf("no-op paths must not write, got %d saves", users.saves)
	}
}

func TestCheckAndAwardBadgesIsStable(t *testing.T) {
	course := testCourse()
	user := testStudent(course)
	user.QuizzesAnswered = 3
	svc := newTestService(newFakeUserStore(user), &fakeCourseStore{courses: []*models.Course{course}})

	first, err := svc.CheckAndAwardBadges(context.Background(), user)
	if err != nil {
		t.Fatalf("CheckAndAwardBadges failed: %v", err)
	}
	if len(first) != 1 || first[0].BadgeName != "Quiz Whiz" {
		t.Fatalf("expected Quiz Whiz on first pass, got %v", first)
	}

	second, err := svc.CheckAndAwardBadges(context.Background(), user)
	if err != nil {
		t.Fatalf("second CheckAndAwardBadges failed: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("unchanged counters must grant nothing on a second pass, got %v", second)
	}
	if len(user.Achievements) != 1 {
		t.Errorf("achievements list grew on re-evaluation: %v", user.Achievements)
	}
}

func TestGetLeaderboardOrdering(t *testing.T) {
	mk := func(name string, points int, role string) *models.User {
		return &models.User{ID: primitive.NewObjectID(), FullName: name, Points: points, Role: role}
	}
	users := newFakeUserStore(
		mk("Amal", 30, models.RoleStudent),
		mk("Bimal", 10, models.RoleStudent),
		mk("Chamari", 50, models.RoleStudent),
		mk("Prof. Silva", 999, models.RoleInstructor),
	)
	svc := newTestService(users, &fakeCourseStore{})

	entries, err := svc.GetLeaderboard(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 student entries, got %d", len(entries))
	}
	wantPoints := []int{50, 30, 10}
	for i, want := range wantPoints {
		if entries[i].Points != want {
			t.Errorf("rank %d: expected %d points, got %d", i+1, want, entries[i].Points)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("expected rank %d, got %d", i+1, entries[i].Rank)
		}
	}
}

func TestGetDashboardData(t *testing.T) {
	course := testCourse()
	user := testStudent(course)
	user.Points = 45
	user.LearningStreak = 2
	user.QuizzesAnswered = 4
	user.Achievements = []models.Achievement{{BadgeName: "Quiz Whiz", AchievedAt: time.Now()}}
	user.Enrollments[0].ProgressPercentage = 100
	done := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)
	user.Enrollments[0].CompletedAt = &done
	user.Enrollments[0].ActivityHistory = []models.ActivityDay{
		{Date: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), LessonsCompleted: 1},
		{Date: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC), LessonsCompleted: 2},
	}

	svc := newTestService(newFakeUserStore(user), &fakeCourseStore{courses: []*models.Course{course}})

	data, err := svc.GetDashboardData(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetDashboardData failed: %v", err)
	}

	if data.Points != 45 || data.LearningStreak != 2 || data.QuizzesAnswered != 4 {
		t.Errorf("unexpected dashboard counters: %+v", data)
	}
	if data.CurrentStreak != 2 || data.LongestStreak != 2 {
		t.Errorf("expected current/longest streak 2/2, got %d/%d", data.CurrentStreak, data.LongestStreak)
	}
	if len(data.Enrollments) != 1 || data.Enrollments[0].CourseTitle != course.Title || !data.Enrollments[0].Completed {
		t.Errorf("unexpected enrollment summary: %+v", data.Enrollments)
	}
	if len(data.Achievements) != 1 || data.Achievements[0].IconURL == "" {
		t.Errorf("expected decorated achievement, got %+v", data.Achievements)
	}
}
