// importexams loads exams into the catalog from a JSON file:
//
//	importexams path/to/exams.json
//
// The file holds an array of
// {title, duration_minutes, number_of_questions, passing_score,
// questions:[{text, options:[{text, is_correct}]}]}.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/examforge/examforge/internal/catalog"
	"github.com/examforge/examforge/internal/config"
	"github.com/examforge/examforge/internal/db"
	"github.com/examforge/examforge/internal/importer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	log := logrus.New()
	if len(os.Args) != 2 {
		log.Fatal("usage: importexams <exams.json>")
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.WithError(err).Fatal("open input")
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("db open failed")
	}
	defer dbh.Close()

	n, err := importer.New(catalog.NewSQLStore(dbh)).Run(ctx, f)
	if err != nil {
		log.WithError(err).Fatal("import failed")
	}
	log.WithField("exams", n).Info("exams imported")
}
