package http

import (
	nethttp "net/http"
	"strconv"

	"github.com/codehabit/codehabit-lms/internal/auth"
	"github.com/codehabit/codehabit-lms/internal/catalog"
)

// GET /api/activity?limit=50
func ListActivityHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		userID := auth.SubjectFromContext(r.Context())
		limit := 50
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = v
		}
		events, err := store.ListActivity(r.Context(), userID, limit)
		if err != nil {
			storeErr(w, err, "fetch activity")
			return
		}
		respond(w, nethttp.StatusOK, events)
	}
}
