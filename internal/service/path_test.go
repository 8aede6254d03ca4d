package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/kindredgraph/kindred/internal/kinship"
	"github.com/kindredgraph/kindred/internal/models"
)

func TestPathService_FindPath(t *testing.T) {
	svc := NewPathService(&mockLoader{snap: familySnapshot(t)}, kinship.DefaultLayoutConfig(), testLogger())

	tests := []struct {
		name      string
		to        string
		depth     int
		connected bool
		wantIDs   []string
	}{
		{name: "cousin through maternal line", to: "x", depth: 6, connected: true, wantIDs: []string{"root", "m", "gm", "a", "x"}},
		{name: "direct relation", to: "w", depth: 1, connected: true, wantIDs: []string{"root", "w"}},
		{name: "beyond depth", to: "x", depth: 3, connected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.FindPath(context.Background(), "root", tc.to, tc.depth)
			if err != nil {
				t.Fatalf("FindPath: %v", err)
			}

			if res.Connected != tc.connected {
				t.Fatalf("connected = %v, want %v", res.Connected, tc.connected)
			}

			if !tc.connected {
				if len(res.Path) != 0 || res.Layout != nil {
					t.Errorf("unconnected result should carry no path or layout: %+v", res)
				}

				return
			}

			if got := res.Path.PersonIDs(); !slices.Equal(got, tc.wantIDs) {
				t.Errorf("path = %v, want %v", got, tc.wantIDs)
			}

			if res.Layout == nil || len(res.Layout.Nodes) != len(tc.wantIDs) {
				t.Errorf("layout = %+v, want %d nodes", res.Layout, len(tc.wantIDs))
			}
		})
	}
}

func TestPathService_Errors(t *testing.T) {
	svc := NewPathService(&mockLoader{snap: familySnapshot(t)}, kinship.DefaultLayoutConfig(), testLogger())
	ctx := context.Background()

	if _, err := svc.FindPath(ctx, "root", "root", 3); !errors.Is(err, models.ErrSamePerson) {
		t.Errorf("expected ErrSamePerson, got %v", err)
	}

	if _, err := svc.FindPath(ctx, "root", "nobody", 3); !errors.Is(err, kinship.ErrPersonNotFound) {
		t.Errorf("expected ErrPersonNotFound for target, got %v", err)
	}

	if _, err := svc.FindPath(ctx, "nobody", "root", 3); !errors.Is(err, kinship.ErrPersonNotFound) {
		t.Errorf("expected ErrPersonNotFound for source, got %v", err)
	}
}
