package http

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codehabit/codehabit-lms/internal/auth"
	"github.com/codehabit/codehabit-lms/internal/catalog"
)

// GET /api/lessons/{lessonID}/quizzes
func ListQuizzesHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		quizzes, err := store.ListQuizzes(r.Context(), chi.URLParam(r, "lessonID"))
		if err != nil {
			storeErr(w, err, "fetch quizzes")
			return
		}
		respond(w, nethttp.StatusOK, quizzes)
	}
}

// POST /api/quiz-attempts
func SubmitQuizAttemptHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		userID := auth.SubjectFromContext(r.Context())
		var req struct {
			QuizID         string `json:"quiz_id" validate:"required"`
			SelectedAnswer *int   `json:"selected_answer" validate:"required"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		a, err := store.SubmitQuizAttempt(r.Context(), userID, req.QuizID, *req.SelectedAnswer)
		if err != nil {
			storeErr(w, err, "submit quiz attempt")
			return
		}
		respond(w, nethttp.StatusCreated, a)
	}
}

// GET /api/quiz-attempts?quiz_id=...
func ListQuizAttemptsHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		userID := auth.SubjectFromContext(r.Context())
		attempts, err := store.ListQuizAttempts(r.Context(), userID, r.URL.Query().Get("quiz_id"))
		if err != nil {
			storeErr(w, err, "fetch quiz attempts")
			return
		}
		respond(w, nethttp.StatusOK, attempts)
	}
}
