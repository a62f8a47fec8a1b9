package catalog

import (
	"context"
	"errors"
)

// Sentinel errors surfaced by Store implementations. Handlers map these to
// HTTP status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrBadReference = errors.New("referenced entity does not exist")
)

// Store is the storage facade: one method per entity per access pattern.
// Every read returns rows in a deterministic order.
type Store interface {
	// Users
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpsertUser(ctx context.Context, u User) (User, error)

	// Courses (ordered by title)
	ListCourses(ctx context.Context, track string) ([]Course, error)
	GetCourse(ctx context.Context, id string) (Course, error)
	CreateCourse(ctx context.Context, c Course) (Course, error)

	// Chapters (ordered by order_index within a course)
	ListChapters(ctx context.Context, courseID string) ([]Chapter, error)
	GetChapter(ctx context.Context, id string) (Chapter, error)
	CreateChapter(ctx context.Context, ch Chapter) (Chapter, error)

	// Lessons (ordered by order_index within a chapter)
	ListLessons(ctx context.Context, chapterID string) ([]Lesson, error)
	GetLesson(ctx context.Context, id string) (Lesson, error)
	CreateLesson(ctx context.Context, l Lesson) (Lesson, error)

	// Chapter-level progress (newest first). Upsert keyed on (user, chapter).
	ListChapterProgress(ctx context.Context, userID, courseID string) ([]ChapterProgress, error)
	UpsertChapterProgress(ctx context.Context, p ChapterProgress) (ChapterProgress, error)

	// Lesson-level progress (newest first). Upsert keyed on (user, lesson).
	// The first transition to completed credits the lesson's XP reward to the
	// user inside the same transaction.
	ListLessonProgress(ctx context.Context, userID, lessonID string) ([]LessonProgress, error)
	UpsertLessonProgress(ctx context.Context, p LessonProgress) (LessonProgress, error)

	// Quizzes (lesson-scoped)
	ListQuizzes(ctx context.Context, lessonID string) ([]Quiz, error)
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	CreateQuiz(ctx context.Context, q Quiz) (Quiz, error)

	// Quiz attempts: graded synchronously against the stored answer index;
	// a row is persisted on both outcomes. Listed newest first.
	SubmitQuizAttempt(ctx context.Context, userID, quizID string, selected int) (QuizAttempt, error)
	ListQuizAttempts(ctx context.Context, userID, quizID string) ([]QuizAttempt, error)

	// Certificates (newest first). No uniqueness per (user, course).
	IssueCertificate(ctx context.Context, userID, courseID string) (Certificate, error)
	ListCertificates(ctx context.Context, userID string) ([]Certificate, error)

	// Activity feed (newest first)
	ListActivity(ctx context.Context, userID string, limit int) ([]ActivityEvent, error)
}
