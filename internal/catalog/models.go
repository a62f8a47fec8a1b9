package catalog

import (
	"encoding/json"
	"fmt"
)

// Lesson types. The type tag selects both the content payload shape and the
// grading behavior applied by the client.
const (
	LessonTheory       = "theory"
	LessonCodeExercise = "code_exercise"
	LessonQuiz         = "quiz"
)

// Course tracks.
const (
	TrackProgramming  = "programming"
	TrackDevOps       = "devops"
	TrackArchitecture = "architecture"
)

type User struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	XP              int    `json:"xp"`
	Level           int    `json:"level"`
	StreakDays      int    `json:"streak_days"`
	LastActiveAt    int64  `json:"last_active_at,omitempty"`
	CreatedAt       int64  `json:"created_at,omitempty"`
	UpdatedAt       int64  `json:"updated_at,omitempty"`

	PasswordHash string `json:"-"`
}

type Course struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Track         string `json:"track"`
	Language      string `json:"language,omitempty"`
	Difficulty    string `json:"difficulty"` // beginner, intermediate, advanced
	TotalChapters int    `json:"total_chapters"`
	CreatedAt     int64  `json:"created_at,omitempty"`
}

type Chapter struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	Title       string `json:"title"`
	Content     string `json:"content,omitempty"`
	CodeExample string `json:"code_example,omitempty"`
	Exercise    string `json:"exercise,omitempty"`
	OrderIndex  int    `json:"order_index"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

type Lesson struct {
	ID         string          `json:"id"`
	ChapterID  string          `json:"chapter_id"`
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	Content    json.RawMessage `json:"content"`
	OrderIndex int             `json:"order_index"`
	XPReward   int             `json:"xp_reward"`
	CreatedAt  int64           `json:"created_at,omitempty"`
}

// Content payloads, one per lesson type.

type TheoryContent struct {
	Text      string   `json:"text"`
	KeyPoints []string `json:"key_points,omitempty"`
}

type CodeExerciseContent struct {
	Instructions   string   `json:"instructions"`
	StarterCode    string   `json:"starter_code,omitempty"`
	Solution       string   `json:"solution,omitempty"`
	ExpectedOutput string   `json:"expected_output,omitempty"`
	ExerciseTopic  string   `json:"exercise_topic,omitempty"` // routes grading in the code runner
	Hints          []string `json:"hints,omitempty"`
}

type QuizContent struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// DecodeContent parses the lesson's content blob into the payload struct
// matching its type tag.
func (l Lesson) DecodeContent() (any, error) {
	switch l.Type {
	case LessonTheory:
		var c TheoryContent
		if err := json.Unmarshal(l.Content, &c); err != nil {
			return nil, err
		}
		return c, nil
	case LessonCodeExercise:
		var c CodeExerciseContent
		if err := json.Unmarshal(l.Content, &c); err != nil {
			return nil, err
		}
		return c, nil
	case LessonQuiz:
		var c QuizContent
		if err := json.Unmarshal(l.Content, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown lesson type: %s", l.Type)
	}
}

// ChapterProgress is the per-(user, chapter) progress row. One row per pair.
type ChapterProgress struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	CourseID    string `json:"course_id"`
	ChapterID   string `json:"chapter_id"`
	Completed   bool   `json:"completed"`
	CompletedAt int64  `json:"completed_at,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

// LessonProgress is the per-(user, lesson) progress row. One row per pair.
type LessonProgress struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	LessonID        string `json:"lesson_id"`
	Completed       bool   `json:"completed"`
	Attempts        int    `json:"attempts"`
	LastAttemptCode string `json:"last_attempt_code,omitempty"`
	CompletedAt     int64  `json:"completed_at,omitempty"`
	CreatedAt       int64  `json:"created_at,omitempty"`
}

type Quiz struct {
	ID            string   `json:"id"`
	LessonID      string   `json:"lesson_id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"-"` // never serialized to clients
	Explanation   string   `json:"explanation,omitempty"`
	CreatedAt     int64    `json:"created_at,omitempty"`
}

type QuizAttempt struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	QuizID         string `json:"quiz_id"`
	SelectedAnswer int    `json:"selected_answer"`
	IsCorrect      bool   `json:"is_correct"`
	AttemptedAt    int64  `json:"attempted_at"`
}

type Certificate struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	CourseID string `json:"course_id"`
	IssuedAt int64  `json:"issued_at"`
}

// ActivityEvent is one entry in a user's activity feed.
type ActivityEvent struct {
	Seq       int64           `json:"seq"`
	UserID    string          `json:"user_id"`
	Type      string          `json:"type"` // LessonCompleted, QuizAttempted, CertificateIssued
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt int64           `json:"created_at"`
}

const (
	EventLessonCompleted   = "LessonCompleted"
	EventChapterCompleted  = "ChapterCompleted"
	EventQuizAttempted     = "QuizAttempted"
	EventCertificateIssued = "CertificateIssued"
)
