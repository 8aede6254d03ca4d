package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/db"
	"github.com/kindredgraph/kindred/internal/db/migrations"
	"github.com/kindredgraph/kindred/internal/dbpool"
	"github.com/kindredgraph/kindred/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL, 4)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

// fixture namespaces person ids per test and removes its rows afterwards.
type fixture struct {
	t      *testing.T
	env    *testEnv
	prefix string
}

func newFixture(t *testing.T) (*fixture, store.Base) {
	t.Helper()

	env := getTestEnv(t)
	f := &fixture{t: t, env: env, prefix: uuid.NewString()[:8] + "-"}

	t.Cleanup(func() {
		ctx := context.Background()
		like := f.prefix + "%"
		env.pool.Exec(ctx, "DELETE FROM relationships WHERE from_person_id LIKE $1 OR to_person_id LIKE $1", like) //nolint:errcheck // best-effort cleanup
		env.pool.Exec(ctx, "DELETE FROM persons WHERE id LIKE $1", like)                                         //nolint:errcheck // best-effort cleanup
	})

	return f, store.Base{Pool: env.pool, Log: env.log}
}

func (f *fixture) id(name string) string { return f.prefix + name }

func (f *fixture) person(name string, genderID int) string {
	f.t.Helper()

	id := f.id(name)

	_, err := f.env.pool.Exec(context.Background(),
		"INSERT INTO persons (id, first_name, gender_id) VALUES ($1, $2, $3)", id, name, genderID)
	if err != nil {
		f.t.Fatalf("inserting person %s: %v", name, err)
	}

	return id
}

func (f *fixture) relate(from, to, relType string) {
	f.t.Helper()

	_, err := f.env.pool.Exec(context.Background(),
		"INSERT INTO relationships (from_person_id, to_person_id, relationship_type) VALUES ($1, $2, $3)",
		from, to, relType)
	if err != nil {
		f.t.Fatalf("inserting relationship %s->%s: %v", from, to, err)
	}
}
