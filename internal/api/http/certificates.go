package http

import (
	nethttp "net/http"

	"github.com/codehabit/codehabit-lms/internal/auth"
	"github.com/codehabit/codehabit-lms/internal/catalog"
)

// GET /api/certificates
func ListCertificatesHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		userID := auth.SubjectFromContext(r.Context())
		certs, err := store.ListCertificates(r.Context(), userID)
		if err != nil {
			storeErr(w, err, "fetch certificates")
			return
		}
		respond(w, nethttp.StatusOK, certs)
	}
}

// POST /api/certificates
func IssueCertificateHandler(store catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		userID := auth.SubjectFromContext(r.Context())
		var req struct {
			CourseID string `json:"course_id" validate:"required"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		c, err := store.IssueCertificate(r.Context(), userID, req.CourseID)
		if err != nil {
			storeErr(w, err, "issue certificate")
			return
		}
		respond(w, nethttp.StatusCreated, c)
	}
}
