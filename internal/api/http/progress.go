package http

import (
	nethttp "net/http"

	"github.com/codehabit/codehabit-lms/internal/auth"
	"github.com/codehabit/codehabit-lms/internal/catalog"
)

// GET /api/progress?course_id=...
func ListProgressHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		userID := auth.SubjectFromContext(r.Context())
		progress, err := store.ListChapterProgress(r.Context(), userID, r.URL.Query().Get("course_id"))
		if err != nil {
			storeErr(w, err, "fetch progress")
			return
		}
		respond(w, nethttp.StatusOK, progress)
	}
}

// POST /api/progress
func UpdateProgressHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		userID := auth.SubjectFromContext(r.Context())
		var req struct {
			CourseID  string `json:"course_id" validate:"required"`
			ChapterID string `json:"chapter_id" validate:"required"`
			Completed bool   `json:"completed"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		p, err := store.UpsertChapterProgress(r.Context(), catalog.ChapterProgress{
			UserID:    userID,
			CourseID:  req.CourseID,
			ChapterID: req.ChapterID,
			Completed: req.Completed,
		})
		if err != nil {
			storeErr(w, err, "update progress")
			return
		}
		respond(w, nethttp.StatusOK, p)
	}
}

// GET /api/lesson-progress?lesson_id=...
func ListLessonProgressHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		userID := auth.SubjectFromContext(r.Context())
		progress, err := store.ListLessonProgress(r.Context(), userID, r.URL.Query().Get("lesson_id"))
		if err != nil {
			storeErr(w, err, "fetch lesson progress")
			return
		}
		respond(w, nethttp.StatusOK, progress)
	}
}

// POST /api/lesson-progress
func UpdateLessonProgressHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		userID := auth.SubjectFromContext(r.Context())
		var req struct {
			LessonID        string `json:"lesson_id" validate:"required"`
			Completed       bool   `json:"completed"`
			Attempts        int    `json:"attempts" validate:"gte=0"`
			LastAttemptCode string `json:"last_attempt_code"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		p, err := store.UpsertLessonProgress(r.Context(), catalog.LessonProgress{
			UserID:          userID,
			LessonID:        req.LessonID,
			Completed:       req.Completed,
			Attempts:        req.Attempts,
			LastAttemptCode: req.LastAttemptCode,
		})
		if err != nil {
			storeErr(w, err, "update lesson progress")
			return
		}
		respond(w, nethttp.StatusOK, p)
	}
}
