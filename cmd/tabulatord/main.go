package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/surveyforge/tabulator/internal/api/http"
	"github.com/surveyforge/tabulator/internal/auth"
	"github.com/surveyforge/tabulator/internal/config"
	"github.com/surveyforge/tabulator/internal/db"
	"github.com/surveyforge/tabulator/internal/rbac"
	"github.com/surveyforge/tabulator/internal/report"
	"github.com/surveyforge/tabulator/internal/storage"
	"github.com/surveyforge/tabulator/internal/survey"

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
	store := survey.NewSQLStore(dbh, cfg.DBDriver)
	events := survey.NewEventRepo(dbh)

	blobs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	asm := &report.Assembler{
		CodeMappingEnabled: cfg.EnableCodeMapping,
		Logf:               log.Printf,
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc, auth.Credentials{
			AdminUser:     cfg.AdminUser,
			AdminPassHash: cfg.AdminPassHash,
		}))
	}

	// Protected API (JWT -> role in context -> RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("survey:create")).
			Post("/surveys", api.UploadSurveyHandler(store, events))
		pr.With(rbac.Require("survey:view")).
			Get("/surveys/{surveyID}", api.GetSurveyHandler(store))

		pr.With(rbac.Require("dataset:create")).
			Post("/surveys/{surveyID}/datasets", api.UploadDatasetHandler(store, blobs, events))
		pr.With(rbac.Require("dataset:view")).
			Get("/surveys/{surveyID}/datasets", api.ListDatasetsHandler(store))

		pr.With(rbac.Require("report:view")).
			Get("/surveys/{surveyID}/datasets/{datasetID}/report", api.ReportHandler(store, asm))
	})

	log.Printf("tabulatord listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}
