package http

import (
	nethttp "net/http"

	"github.com/codehabit/codehabit-lms/internal/catalog"
)

// POST /api/seed-python-course
func SeedPythonCourseHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		course, err := catalog.SeedPythonCourse(r.Context(), store)
		if err != nil {
			storeErr(w, err, "seed course")
			return
		}
		respond(w, nethttp.StatusOK, map[string]any{
			"message":   "Python course seeded successfully",
			"course_id": course.ID,
		})
	}
}
