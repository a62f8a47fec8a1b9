package http

import (
	nethttp "net/http"

	"github.com/codehabit/codehabit-lms/internal/runner"
)

// POST /api/execute-python
//
// Runs a code-exercise submission through the simulated interpreter. The
// lesson_type tag picks the rule table; unknown tags get the generic
// print-echo behavior.
func ExecutePythonHandler(run runner.Runner) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			Code       string `json:"code" validate:"required"`
			LessonType string `json:"lesson_type"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		respond(w, nethttp.StatusOK, run.Run(req.Code, req.LessonType))
	}
}
