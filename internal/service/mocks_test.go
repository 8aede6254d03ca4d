package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/kinship"
	"github.com/kindredgraph/kindred/internal/models"
)

// mockStore records calls and returns configured responses.
type mockStore struct {
	mu    sync.Mutex
	calls []string

	neighborhood func(ctx context.Context, rootID string, hops int) (*kinship.Snapshot, error)
	getPerson    func(ctx context.Context, personID string) (*kinship.Person, error)
}

func (m *mockStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockStore) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0

	for _, c := range m.calls {
		if c == name {
			n++
		}
	}

	return n
}

func (m *mockStore) Neighborhood(ctx context.Context, rootID string, hops int) (*kinship.Snapshot, error) {
	m.record("Neighborhood")
	return m.neighborhood(ctx, rootID, hops)
}

func (m *mockStore) GetPerson(ctx context.Context, personID string) (*kinship.Person, error) {
	m.record("GetPerson")
	return m.getPerson(ctx, personID)
}

// mockLoader serves one snapshot for every root.
type mockLoader struct {
	snap     *kinship.Snapshot
	loadErr  error
	lastHops int
}

func (m *mockLoader) Load(_ context.Context, rootID string, hops int) (*kinship.Snapshot, error) {
	m.lastHops = hops

	if m.loadErr != nil {
		return nil, m.loadErr
	}

	if _, ok := m.snap.Person(rootID); !ok {
		return nil, fmt.Errorf("%w: %s", kinship.ErrPersonNotFound, rootID)
	}

	return m.snap, nil
}

func (m *mockLoader) Person(_ context.Context, personID string) (*kinship.Person, error) {
	p, ok := m.snap.Person(personID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", kinship.ErrPersonNotFound, personID)
	}

	return &p, nil
}

// mockLookup names sub-categories from a fixed table.
type mockLookup struct {
	names map[int]string
	err   error
}

func (m *mockLookup) SubCategories(_ context.Context, ids []int) ([]models.SubCategory, error) {
	if m.err != nil {
		return nil, m.err
	}

	var out []models.SubCategory

	for _, id := range ids {
		if name, ok := m.names[id]; ok {
			out = append(out, models.SubCategory{ID: id, Name: name})
		}
	}

	return out, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return log
}

func intp(v int) *int { return &v }

func mustSnapshot(t *testing.T, persons []kinship.Person, edges []kinship.Edge) *kinship.Snapshot {
	t.Helper()

	s, err := kinship.NewSnapshot(persons, edges)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}

	return s
}

// familySnapshot is three generations around "root":
// gm is the mother of m and a; f and m are married with children root and
// sis; root and w are married with son c; a is the mother of x.
func familySnapshot(t *testing.T) *kinship.Snapshot {
	t.Helper()

	return mustSnapshot(t,
		[]kinship.Person{
			{ID: "root", GenderID: 1, SubCategoryID: intp(10)},
			{ID: "f", GenderID: 1, SubCategoryID: intp(11)},
			{ID: "m", GenderID: 2, SubCategoryID: intp(20)},
			{ID: "sis", GenderID: 2, SubCategoryID: intp(10)},
			{ID: "gm", GenderID: 2, SubCategoryID: intp(30)},
			{ID: "a", GenderID: 2, SubCategoryID: intp(30)},
			{ID: "x", GenderID: 2, SubCategoryID: intp(50)},
			{ID: "w", GenderID: 2, SubCategoryID: intp(40)},
			{ID: "c", GenderID: 1},
		},
		[]kinship.Edge{
			{FromPersonID: "root", ToPersonID: "f", Type: kinship.Father},
			{FromPersonID: "root", ToPersonID: "m", Type: kinship.Mother},
			{FromPersonID: "sis", ToPersonID: "f", Type: kinship.Father},
			{FromPersonID: "sis", ToPersonID: "m", Type: kinship.Mother},
			{FromPersonID: "f", ToPersonID: "m", Type: kinship.Wife},
			{FromPersonID: "m", ToPersonID: "gm", Type: kinship.Mother},
			{FromPersonID: "a", ToPersonID: "gm", Type: kinship.Mother},
			{FromPersonID: "x", ToPersonID: "a", Type: kinship.Mother},
			{FromPersonID: "root", ToPersonID: "w", Type: kinship.Wife},
			{FromPersonID: "c", ToPersonID: "root", Type: kinship.Father},
			{FromPersonID: "c", ToPersonID: "w", Type: kinship.Mother},
		},
	)
}

func ids(persons []kinship.Person) []string {
	out := make([]string, len(persons))
	for i, p := range persons {
		out[i] = p.ID
	}

	return out
}
