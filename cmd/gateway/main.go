package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	api "github.com/examforge/examforge/internal/api/http"
	"github.com/examforge/examforge/internal/attempt"
	"github.com/examforge/examforge/internal/auth"
	"github.com/examforge/examforge/internal/catalog"
	"github.com/examforge/examforge/internal/certificate"
	"github.com/examforge/examforge/internal/config"
	"github.com/examforge/examforge/internal/db"
	"github.com/examforge/examforge/internal/importer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("db open failed")
	}

	cat := catalog.NewSQLStore(dbh)
	attempts := attempt.NewSQLStore(dbh)
	engine := attempt.NewEngine(cat, attempts, attempt.NewRandSampler())
	issuer := certificate.NewIssuer(certificate.NewSQLStore(dbh))
	authSvc := auth.NewService(cfg.AuthSecret, cfg.TokenTTL)

	handler := api.NewRouter(api.Deps{
		DB:          dbh,
		Catalog:     cat,
		Engine:      engine,
		Issuer:      issuer,
		Importer:    importer.New(cat),
		Auth:        authSvc,
		CORSOrigins: cfg.CORSOrigins,
	})

	log.WithFields(logrus.Fields{"addr": cfg.HTTPAddr, "driver": cfg.DBDriver}).Info("gateway listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
