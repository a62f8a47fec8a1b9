package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/codehabit/codehabit-lms/internal/catalog"
)

// POST /api/auth/login  { "email": "...", "password": "...", "first_name": "...", "last_name": "..." }
//
// First login upserts the user row; later logins verify the password. Either
// way a bearer token for the user id comes back.
func LoginHandler(a *AuthService, store catalog.Store) http.HandlerFunc {
	type out struct {
		AccessToken string       `json:"access_token"`
		User        catalog.User `json:"user"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email     string `json:"email"`
			Password  string `json:"password"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Email == "" || req.Password == "" {
			http.Error(w, "email and password required", http.StatusBadRequest)
			return
		}

		u, err := store.GetUserByEmail(r.Context(), req.Email)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			hash, herr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if herr != nil {
				http.Error(w, "hash password", http.StatusInternalServerError)
				return
			}
			u, err = store.UpsertUser(r.Context(), catalog.User{
				Email:        req.Email,
				PasswordHash: string(hash),
				FirstName:    req.FirstName,
				LastName:     req.LastName,
			})
			if err != nil {
				http.Error(w, "create user", http.StatusInternalServerError)
				return
			}
		case err != nil:
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		default:
			if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
		}

		tok, err := a.IssueJWT(u.ID)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(out{AccessToken: tok, User: u})
	}
}
