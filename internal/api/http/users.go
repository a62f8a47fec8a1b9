package http

import (
	nethttp "net/http"

	"github.com/codehabit/codehabit-lms/internal/auth"
	"github.com/codehabit/codehabit-lms/internal/catalog"
)

// GET /api/auth/user
func CurrentUserHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		userID := auth.SubjectFromContext(r.Context())
		u, err := store.GetUser(r.Context(), userID)
		if err != nil {
			storeErr(w, err, "fetch user")
			return
		}
		respond(w, nethttp.StatusOK, u)
	}
}
