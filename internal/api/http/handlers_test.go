package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	api "github.com/codehabit/codehabit-lms/internal/api/http"
	"github.com/codehabit/codehabit-lms/internal/auth"
	"github.com/codehabit/codehabit-lms/internal/catalog"
	"github.com/codehabit/codehabit-lms/internal/db"
	"github.com/codehabit/codehabit-lms/internal/runner"
)

// newTestServer wires the routes the way the gateway does, over a throwaway
// SQLite database.
func newTestServer(t *testing.T) (*httptest.Server, *auth.AuthService, catalog.Store) {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbh.Close() })

	store := catalog.NewSQLStore(dbh, "sqlite")
	authSvc := auth.NewAuthService("test-secret")
	run := runner.New()

	r := chi.NewRouter()
	r.Route("/api", func(ar chi.Router) {
		ar.Post("/auth/login", auth.LoginHandler(authSvc, store))

		ar.Get("/courses", api.ListCoursesHandler(store))
		ar.Get("/courses/{courseID}", api.GetCourseHandler(store))
		ar.Get("/courses/{courseID}/chapters", api.ListChaptersHandler(store))
		ar.Get("/chapters/{chapterID}/lessons", api.ListLessonsHandler(store))
		ar.Get("/lessons/{lessonID}", api.GetLessonHandler(store))
		ar.Get("/lessons/{lessonID}/quizzes", api.ListQuizzesHandler(store))

		ar.Group(func(pr chi.Router) {
			pr.Use(auth.JWTMiddleware(authSvc))
			pr.Get("/auth/user", api.CurrentUserHandler(store))
			pr.Post("/courses", api.CreateCourseHandler(store))
			pr.Get("/progress", api.ListProgressHandler(store))
			pr.Post("/progress", api.UpdateProgressHandler(store))
			pr.Post("/lesson-progress", api.UpdateLessonProgressHandler(store))
			pr.Post("/quiz-attempts", api.SubmitQuizAttemptHandler(store))
			pr.Get("/certificates", api.ListCertificatesHandler(store))
			pr.Post("/execute-python", api.ExecutePythonHandler(run))
			pr.Post("/seed-python-course", api.SeedPythonCourseHandler(store))
			pr.Get("/activity", api.ListActivityHandler(store))
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, authSvc, store
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

func login(t *testing.T, srv *httptest.Server, email string) (string, catalog.User) {
	t.Helper()
	res := doJSON(t, "POST", srv.URL+"/api/auth/login", "", map[string]string{
		"email": email, "password": "hunter22", "first_name": "Test",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	out := decode[struct {
		AccessToken string       `json:"access_token"`
		User        catalog.User `json:"user"`
	}](t, res)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken, out.User
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	srv, _, _ := newTestServer(t)

	res := doJSON(t, "GET", srv.URL+"/api/auth/user", "", nil)
	res.Body.Close()
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res = doJSON(t, "GET", srv.URL+"/api/auth/user", "not-a-token", nil)
	res.Body.Close()
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestLoginAndCurrentUser(t *testing.T) {
	srv, _, _ := newTestServer(t)

	token, u := login(t, srv, "kara@example.com")
	require.Equal(t, "kara@example.com", u.Email)
	require.Equal(t, 1, u.Level)

	res := doJSON(t, "GET", srv.URL+"/api/auth/user", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	got := decode[catalog.User](t, res)
	require.Equal(t, u.ID, got.ID)

	// Wrong password on a known email is rejected.
	res = doJSON(t, "POST", srv.URL+"/api/auth/login", "", map[string]string{
		"email": "kara@example.com", "password": "wrong",
	})
	res.Body.Close()
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestCreateCourseValidation(t *testing.T) {
	srv, _, _ := newTestServer(t)
	token, _ := login(t, srv, "kara@example.com")

	res := doJSON(t, "POST", srv.URL+"/api/courses", token, map[string]any{
		"track": "programming", "difficulty": "beginner",
	})
	res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = doJSON(t, "POST", srv.URL+"/api/courses", token, map[string]any{
		"title": "Go Basics", "track": "bogus", "difficulty": "beginner",
	})
	res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = doJSON(t, "POST", srv.URL+"/api/courses", token, map[string]any{
		"title": "Go Basics", "track": "programming", "difficulty": "beginner",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	created := decode[catalog.Course](t, res)
	require.NotEmpty(t, created.ID)
}

func TestSeedAndProgressFlow(t *testing.T) {
	srv, _, _ := newTestServer(t)
	token, _ := login(t, srv, "kara@example.com")

	res := doJSON(t, "POST", srv.URL+"/api/seed-python-course", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	seeded := decode[struct {
		CourseID string `json:"course_id"`
	}](t, res)
	require.NotEmpty(t, seeded.CourseID)

	res = doJSON(t, "GET", srv.URL+"/api/courses/"+seeded.CourseID+"/chapters", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	chapters := decode[[]catalog.Chapter](t, res)
	require.Len(t, chapters, 1)

	res = doJSON(t, "GET", srv.URL+"/api/chapters/"+chapters[0].ID+"/lessons", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	lessons := decode[[]catalog.Lesson](t, res)
	require.Len(t, lessons, 3)

	// Complete the first lesson; XP shows up on the profile.
	res = doJSON(t, "POST", srv.URL+"/api/lesson-progress", token, map[string]any{
		"lesson_id": lessons[0].ID, "completed": true, "attempts": 1,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	lp := decode[catalog.LessonProgress](t, res)
	require.True(t, lp.Completed)
	require.NotZero(t, lp.CompletedAt)

	res = doJSON(t, "GET", srv.URL+"/api/auth/user", token, nil)
	me := decode[catalog.User](t, res)
	require.Equal(t, lessons[0].XPReward, me.XP)

	// Chapter progress upsert.
	res = doJSON(t, "POST", srv.URL+"/api/progress", token, map[string]any{
		"course_id": seeded.CourseID, "chapter_id": chapters[0].ID, "completed": true,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, "GET", srv.URL+"/api/progress?course_id="+seeded.CourseID, token, nil)
	progress := decode[[]catalog.ChapterProgress](t, res)
	require.Len(t, progress, 1)
	require.True(t, progress[0].Completed)

	// Both completions landed in the activity feed.
	res = doJSON(t, "GET", srv.URL+"/api/activity", token, nil)
	events := decode[[]catalog.ActivityEvent](t, res)
	require.Len(t, events, 2)
}

func TestQuizEndpointsHideAnswer(t *testing.T) {
	srv, _, store := newTestServer(t)
	token, _ := login(t, srv, "kara@example.com")

	course, err := catalog.SeedPythonCourse(context.Background(), store)
	require.NoError(t, err)
	chapters, err := store.ListChapters(context.Background(), course.ID)
	require.NoError(t, err)
	lessons, err := store.ListLessons(context.Background(), chapters[0].ID)
	require.NoError(t, err)

	var quizLessonID string
	for _, l := range lessons {
		if l.Type == catalog.LessonQuiz {
			quizLessonID = l.ID
		}
	}
	require.NotEmpty(t, quizLessonID)

	res := doJSON(t, "GET", srv.URL+"/api/lessons/"+quizLessonID+"/quizzes", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	raw := decode[[]map[string]any](t, res)
	require.Len(t, raw, 1)
	_, leaked := raw[0]["correct_answer"]
	require.False(t, leaked, "correct answer must not be serialized")

	quizID := raw[0]["id"].(string)

	// Answer index 0 is a valid submission.
	res = doJSON(t, "POST", srv.URL+"/api/quiz-attempts", token, map[string]any{
		"quiz_id": quizID, "selected_answer": 0,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	attempt := decode[catalog.QuizAttempt](t, res)
	require.False(t, attempt.IsCorrect)

	res = doJSON(t, "POST", srv.URL+"/api/quiz-attempts", token, map[string]any{
		"quiz_id": quizID, "selected_answer": 1,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	attempt = decode[catalog.QuizAttempt](t, res)
	require.True(t, attempt.IsCorrect)
}

func TestExecutePython(t *testing.T) {
	srv, _, _ := newTestServer(t)
	token, _ := login(t, srv, "kara@example.com")

	res := doJSON(t, "POST", srv.URL+"/api/execute-python", token, map[string]string{
		"code": `print("hello")`, "lesson_type": "theory",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	out := decode[runner.Result](t, res)
	require.True(t, out.Success)
	require.Equal(t, "hello", out.Output)

	// Missing code is a validation error.
	res = doJSON(t, "POST", srv.URL+"/api/execute-python", token, map[string]string{
		"lesson_type": "loops",
	})
	res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestNotFoundMapping(t *testing.T) {
	srv, _, _ := newTestServer(t)

	res := doJSON(t, "GET", srv.URL+"/api/courses/does-not-exist", "", nil)
	defer res.Body.Close()
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Contains(t, body["message"], "not found")
}
