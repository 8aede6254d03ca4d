package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kindredgraph/kindred/internal/kinship"
	"github.com/kindredgraph/kindred/internal/store"
)

func TestNeighborhood(t *testing.T) {
	f, base := newFixture(t)
	rs := store.NewRelationshipStore(base)
	ctx := context.Background()

	// root -> father, father -> grandfather, mother -> root (stored as Son).
	root := f.person("root", 1)
	father := f.person("father", 1)
	mother := f.person("mother", 2)
	grandfather := f.person("grandfather", 1)

	f.relate(root, father, "Father")
	f.relate(mother, root, "Son")
	f.relate(father, grandfather, "Father")

	snap, err := rs.Neighborhood(ctx, root, 1)
	if err != nil {
		t.Fatalf("Neighborhood: %v", err)
	}

	if _, ok := snap.Person(grandfather); ok {
		t.Error("grandfather should be outside a 1-hop neighborhood")
	}

	rels := snap.Relations(root)
	if len(rels) != 2 {
		t.Fatalf("root relations = %d, want 2", len(rels))
	}

	if rels[0].PersonID != father || rels[0].Type != kinship.Father {
		t.Errorf("first relation = %+v, want father", rels[0])
	}

	if rels[1].PersonID != mother || rels[1].Type != kinship.Mother || !rels[1].Derived {
		t.Errorf("second relation = %+v, want derived mother", rels[1])
	}

	snap, err = rs.Neighborhood(ctx, root, 2)
	if err != nil {
		t.Fatalf("Neighborhood(2): %v", err)
	}

	if _, ok := snap.Person(grandfather); !ok {
		t.Error("grandfather should be inside a 2-hop neighborhood")
	}
}

func TestNeighborhood_MissingRoot(t *testing.T) {
	f, base := newFixture(t)
	rs := store.NewRelationshipStore(base)

	_, err := rs.Neighborhood(context.Background(), f.id("ghost"), 2)
	if !errors.Is(err, kinship.ErrPersonNotFound) {
		t.Errorf("expected ErrPersonNotFound, got %v", err)
	}
}

func TestNeighborhood_UnknownType(t *testing.T) {
	f, base := newFixture(t)
	rs := store.NewRelationshipStore(base)

	root := f.person("root", 1)
	other := f.person("other", 1)
	f.relate(root, other, "Cousin")

	_, err := rs.Neighborhood(context.Background(), root, 1)
	if !errors.Is(err, kinship.ErrUnknownRelationshipType) {
		t.Errorf("expected ErrUnknownRelationshipType, got %v", err)
	}
}

func TestNeighborhood_DanglingEdge(t *testing.T) {
	f, base := newFixture(t)
	rs := store.NewRelationshipStore(base)

	root := f.person("root", 2)
	f.relate(root, f.id("unloaded"), "Husband")

	snap, err := rs.Neighborhood(context.Background(), root, 2)
	if err != nil {
		t.Fatalf("Neighborhood: %v", err)
	}

	if _, ok := snap.Person(f.id("unloaded")); ok {
		t.Error("unloaded person should have no attributes")
	}

	if got := len(snap.Relations(root)); got != 1 {
		t.Errorf("root relations = %d, want 1", got)
	}
}

func TestNeighborhood_InvalidHops(t *testing.T) {
	_, base := newFixture(t)
	rs := store.NewRelationshipStore(base)

	_, err := rs.Neighborhood(context.Background(), "x", 0)
	if !errors.Is(err, kinship.ErrInvalidMaxDepth) {
		t.Errorf("expected ErrInvalidMaxDepth, got %v", err)
	}
}

func TestGetPerson(t *testing.T) {
	f, base := newFixture(t)
	rs := store.NewRelationshipStore(base)
	ctx := context.Background()

	id := f.person("alice", 2)

	p, err := rs.GetPerson(ctx, id)
	if err != nil {
		t.Fatalf("GetPerson: %v", err)
	}

	if p.FirstName != "alice" || p.Gender() != kinship.GenderFemale {
		t.Errorf("unexpected person: %+v", p)
	}

	if _, err := rs.GetPerson(ctx, f.id("nobody")); !errors.Is(err, kinship.ErrPersonNotFound) {
		t.Errorf("expected ErrPersonNotFound, got %v", err)
	}
}
