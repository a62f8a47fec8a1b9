package http

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codehabit/codehabit-lms/internal/catalog"
)

// Handlers only — routes remain in main.go

// GET /api/courses?track=programming
func ListCoursesHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		courses, err := store.ListCourses(r.Context(), r.URL.Query().Get("track"))
		if err != nil {
			storeErr(w, err, "fetch courses")
			return
		}
		respond(w, nethttp.StatusOK, courses)
	}
}

// GET /api/courses/{courseID}
func GetCourseHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		c, err := store.GetCourse(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			storeErr(w, err, "fetch course")
			return
		}
		respond(w, nethttp.StatusOK, c)
	}
}

// POST /api/courses
func CreateCourseHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			Title         string `json:"title" validate:"required"`
			Description   string `json:"description"`
			Track         string `json:"track" validate:"required,oneof=programming devops architecture"`
			Language      string `json:"language"`
			Difficulty    string `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
			TotalChapters int    `json:"total_chapters" validate:"gte=0"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		c, err := store.CreateCourse(r.Context(), catalog.Course{
			Title:         req.Title,
			Description:   req.Description,
			Track:         req.Track,
			Language:      req.Language,
			Difficulty:    req.Difficulty,
			TotalChapters: req.TotalChapters,
		})
		if err != nil {
			storeErr(w, err, "create course")
			return
		}
		respond(w, nethttp.StatusCreated, c)
	}
}
