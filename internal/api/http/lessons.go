package http

import (
	"encoding/json"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codehabit/codehabit-lms/internal/catalog"
)

// GET /api/chapters/{chapterID}/lessons
func ListLessonsHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		lessons, err := store.ListLessons(r.Context(), chi.URLParam(r, "chapterID"))
		if err != nil {
			storeErr(w, err, "fetch lessons")
			return
		}
		respond(w, nethttp.StatusOK, lessons)
	}
}

// GET /api/lessons/{lessonID}
func GetLessonHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		l, err := store.GetLesson(r.Context(), chi.URLParam(r, "lessonID"))
		if err != nil {
			storeErr(w, err, "fetch lesson")
			return
		}
		respond(w, nethttp.StatusOK, l)
	}
}

// POST /api/chapters/{chapterID}/lessons
func CreateLessonHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			Title      string          `json:"title" validate:"required"`
			Type       string          `json:"type" validate:"required,oneof=theory code_exercise quiz"`
			Content    json.RawMessage `json:"content" validate:"required"`
			OrderIndex int             `json:"order_index" validate:"gte=0"`
			XPReward   int             `json:"xp_reward" validate:"gte=0"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		l := catalog.Lesson{
			ChapterID:  chi.URLParam(r, "chapterID"),
			Title:      req.Title,
			Type:       req.Type,
			Content:    req.Content,
			OrderIndex: req.OrderIndex,
			XPReward:   req.XPReward,
		}
		// the content blob must parse as the payload for the declared type
		if _, err := l.DecodeContent(); err != nil {
			respondErr(w, nethttp.StatusBadRequest, "content does not match lesson type")
			return
		}
		created, err := store.CreateLesson(r.Context(), l)
		if err != nil {
			storeErr(w, err, "create lesson")
			return
		}
		respond(w, nethttp.StatusCreated, created)
	}
}
