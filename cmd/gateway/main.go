package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/codehabit/codehabit-lms/internal/api/http"
	"github.com/codehabit/codehabit-lms/internal/auth"
	"github.com/codehabit/codehabit-lms/internal/catalog"
	"github.com/codehabit/codehabit-lms/internal/config"
	"github.com/codehabit/codehabit-lms/internal/db"
	"github.com/codehabit/codehabit-lms/internal/runner"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := catalog.NewSQLStore(dbh, cfg.DBDriver)

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	// --- Code runner (simulated) ---
	run := runner.New()

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Post("/auth/login", auth.LoginHandler(authSvc, store))

		// Public catalog
		ar.Get("/courses", api.ListCoursesHandler(store))
		ar.Get("/courses/{courseID}", api.GetCourseHandler(store))
		ar.Get("/courses/{courseID}/chapters", api.ListChaptersHandler(store))
		ar.Get("/chapters/{chapterID}", api.GetChapterHandler(store))
		ar.Get("/chapters/{chapterID}/lessons", api.ListLessonsHandler(store))
		ar.Get("/lessons/{lessonID}", api.GetLessonHandler(store))
		ar.Get("/lessons/{lessonID}/quizzes", api.ListQuizzesHandler(store))

		// Protected (JWT → subject in context)
		ar.Group(func(pr chi.Router) {
			pr.Use(auth.JWTMiddleware(authSvc))

			pr.Get("/auth/user", api.CurrentUserHandler(store))

			pr.Post("/courses", api.CreateCourseHandler(store))
			pr.Post("/courses/{courseID}/chapters", api.CreateChapterHandler(store))
			pr.Post("/chapters/{chapterID}/lessons", api.CreateLessonHandler(store))

			pr.Get("/progress", api.ListProgressHandler(store))
			pr.Post("/progress", api.UpdateProgressHandler(store))
			pr.Get("/lesson-progress", api.ListLessonProgressHandler(store))
			pr.Post("/lesson-progress", api.UpdateLessonProgressHandler(store))

			pr.Post("/quiz-attempts", api.SubmitQuizAttemptHandler(store))
			pr.Get("/quiz-attempts", api.ListQuizAttemptsHandler(store))

			pr.Get("/certificates", api.ListCertificatesHandler(store))
			pr.Post("/certificates", api.IssueCertificateHandler(store))

			pr.Get("/activity", api.ListActivityHandler(store))

			pr.Post("/execute-python", api.ExecutePythonHandler(run))

			if cfg.EnableSeed {
				pr.Post("/seed-python-course", api.SeedPythonCourseHandler(store))
			}
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
