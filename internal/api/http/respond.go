package http

import (
	"encoding/json"
	"errors"
	"log"
	nethttp "net/http"

	"github.com/codehabit/codehabit-lms/internal/catalog"
)

func respond(w nethttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondErr(w nethttp.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"message": msg})
}

// storeErr maps store failures onto the two error kinds the API exposes:
// client errors (missing/mis-referenced entities, 4xx) and a generic logged
// 500 for everything else. Nothing is retried.
func storeErr(w nethttp.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		respondErr(w, nethttp.StatusNotFound, what+" not found")
	case errors.Is(err, catalog.ErrBadReference):
		respondErr(w, nethttp.StatusBadRequest, "referenced entity does not exist")
	default:
		log.Printf("%s: %v", what, err)
		respondErr(w, nethttp.StatusInternalServerError, "failed to "+what)
	}
}
