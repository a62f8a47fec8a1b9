package http

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codehabit/codehabit-lms/internal/catalog"
)

// GET /api/courses/{courseID}/chapters
func ListChaptersHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		chapters, err := store.ListChapters(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			storeErr(w, err, "fetch chapters")
			return
		}
		respond(w, nethttp.StatusOK, chapters)
	}
}

// GET /api/chapters/{chapterID}
func GetChapterHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		ch, err := store.GetChapter(r.Context(), chi.URLParam(r, "chapterID"))
		if err != nil {
			storeErr(w, err, "fetch chapter")
			return
		}
		respond(w, nethttp.StatusOK, ch)
	}
}

// POST /api/courses/{courseID}/chapters
func CreateChapterHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			Title       string `json:"title" validate:"required"`
			Content     string `json:"content"`
			CodeExample string `json:"code_example"`
			Exercise    string `json:"exercise"`
			OrderIndex  int    `json:"order_index" validate:"gte=0"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		ch, err := store.CreateChapter(r.Context(), catalog.Chapter{
			CourseID:    chi.URLParam(r, "courseID"),
			Title:       req.Title,
			Content:     req.Content,
			CodeExample: req.CodeExample,
			Exercise:    req.Exercise,
			OrderIndex:  req.OrderIndex,
		})
		if err != nil {
			storeErr(w, err, "create chapter")
			return
		}
		respond(w, nethttp.StatusCreated, ch)
	}
}
