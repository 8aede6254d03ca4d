// Command kindred-import loads persons, relationships and lookup tables from
// a YAML seed file into PostgreSQL in a single transaction.
//
// Usage:
//
//	SEED_PATH=family.yaml DATABASE_URL=postgres://... kindred-import
package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/db"
	"github.com/kindredgraph/kindred/internal/db/migrations"
	"github.com/kindredgraph/kindred/internal/dbpool"
)

// config holds environment-driven import settings.
type config struct {
	SeedPath    string
	DatabaseURL string
	DryRun      bool
}

// report holds the final import summary.
type report struct {
	Source                string
	Target                string
	LookupsInserted       int
	PersonsRead           int
	PersonsVerified       int
	RelationshipsRead     int
	RelationshipsInserted int
	Dangling              int
	Skipped               []skippedRelationship
	Duration              time.Duration
	DryRun                bool
	Err                   error
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := loadConfig()
	if cfg.DatabaseURL == "" && !cfg.DryRun {
		log.Fatal("DATABASE_URL is required")
	}

	start := time.Now()
	r, err := runImport(context.Background(), log, cfg)
	r.Duration = time.Since(start)
	r.Err = err

	printReport(os.Stdout, &r)

	if err != nil {
		log.WithError(err).Fatal("import failed")
	}
}

func loadConfig() config {
	return config{
		SeedPath:    envOr("SEED_PATH", "seed.yaml"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DryRun:      os.Getenv("DRY_RUN") == "true" || os.Getenv("DRY_RUN") == "1",
	}
}

func runImport(ctx context.Context, log *logrus.Logger, cfg config) (report, error) {
	r := report{
		Source: cfg.SeedPath,
		Target: sanitizeURL(cfg.DatabaseURL),
		DryRun: cfg.DryRun,
	}

	f, err := os.Open(cfg.SeedPath)
	if err != nil {
		return r, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	seed, err := parseSeed(f)
	if err != nil {
		return r, err
	}

	p, err := buildPlan(seed)
	if err != nil {
		return r, err
	}

	r.PersonsRead = len(seed.Persons)
	r.RelationshipsRead = len(seed.Relationships)
	r.Skipped = p.skipped
	r.Dangling = p.dangling

	log.WithFields(logrus.Fields{
		"persons":       r.PersonsRead,
		"relationships": len(p.relationships),
		"skipped":       len(p.skipped),
	}).Info("seed validated")

	if cfg.DryRun {
		log.Info("dry run, skipping PostgreSQL writes")
		return r, nil
	}

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL, 2)
	if err != nil {
		return r, err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return r, err
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return r, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if r.LookupsInserted, err = insertLookups(ctx, tx, seed); err != nil {
		return r, err
	}

	if err := insertPersons(ctx, tx, seed.Persons); err != nil {
		return r, fmt.Errorf("insert persons: %w", err)
	}

	if r.RelationshipsInserted, err = insertRelationships(ctx, tx, p.relationships); err != nil {
		return r, fmt.Errorf("insert relationships: %w", err)
	}

	ids := make([]string, len(seed.Persons))
	for i, sp := range seed.Persons {
		ids[i] = sp.ID
	}

	if r.PersonsVerified, err = countPersons(ctx, tx, ids); err != nil {
		return r, fmt.Errorf("verify persons: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return r, fmt.Errorf("commit: %w", err)
	}

	log.Info("transaction committed")

	return r, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// sanitizeURL drops credentials from a database URL for display.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || raw == "" {
		return ""
	}
	u.User = nil
	return u.String()
}
