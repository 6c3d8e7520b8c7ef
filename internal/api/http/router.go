package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/examforge/examforge/internal/attempt"
	"github.com/examforge/examforge/internal/auth"
	"github.com/examforge/examforge/internal/catalog"
	"github.com/examforge/examforge/internal/certificate"
	"github.com/examforge/examforge/internal/importer"
)

type Deps struct {
	DB          *sql.DB
	Catalog     catalog.Store
	Engine      *attempt.Engine
	Issuer      *certificate.Issuer
	Importer    *importer.Importer
	Auth        *auth.Service
	CORSOrigins []string
}

// NewRouter wires the full REST surface. Public: exam listing,
// certificate verification, register, login. Everything else sits
// behind the JWT middleware.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/register", RegisterHandler(d.DB))
	r.Post("/auth/login", LoginHandler(d.DB, d.Auth))

	r.Get("/exams", ListExamsHandler(d.Catalog))
	r.Get("/certificates/{attemptID}", PublicCertificateHandler(d.Issuer))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))

		pr.Get("/me", MeHandler(d.DB))

		pr.Post("/exams/{examID}/start", StartAttemptHandler(d.Engine))
		pr.Post("/exams/attempts/{attemptID}/end", EndAttemptHandler(d.Engine))

		pr.Get("/certificates", MyCertificatesHandler(d.Issuer))

		pr.Post("/exams/import", ImportExamsHandler(d.Importer))
		pr.Delete("/exams/{examID}", DeleteExamHandler(d.Catalog))
	})

	return r
}
