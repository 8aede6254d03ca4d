package api_test

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kindredgraph/kindred/internal/models"
)

var errTest = errors.New("test error")

type mockFamilyService struct {
	familyViewFn func(ctx context.Context, personID string) (*models.FamilyView, error)
	calls        int
}

func (m *mockFamilyService) FamilyView(ctx context.Context, personID string) (*models.FamilyView, error) {
	m.calls++
	if m.familyViewFn != nil {
		return m.familyViewFn(ctx, personID)
	}

	return &models.FamilyView{}, nil
}

type mockPathService struct {
	findPathFn func(ctx context.Context, from, to string, depth int) (*models.PathResult, error)
	lastDepth  int
	calls      int
}

func (m *mockPathService) FindPath(ctx context.Context, from, to string, depth int) (*models.PathResult, error) {
	m.calls++
	m.lastDepth = depth

	if m.findPathFn != nil {
		return m.findPathFn(ctx, from, to, depth)
	}

	return &models.PathResult{From: from, To: to, Depth: depth}, nil
}

type mockMatchService struct {
	searchFn func(ctx context.Context, req models.MatchSearchRequest) (*models.MatchResult, error)
	lastReq  models.MatchSearchRequest
	calls    int
}

func (m *mockMatchService) Search(ctx context.Context, req models.MatchSearchRequest) (*models.MatchResult, error) {
	m.calls++
	m.lastReq = req

	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}

	return &models.MatchResult{RootID: req.RootID}, nil
}

// mockRow satisfies pgx.Row.
type mockRow struct {
	value int64
	err   error
}

func (r mockRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}

	if p, ok := dest[0].(*int64); ok {
		*p = r.value
	}

	return nil
}

type mockDB struct {
	healthErr error
	row       mockRow
}

func (m *mockDB) HealthCheck(context.Context) error { return m.healthErr }

func (m *mockDB) QueryRow(context.Context, string, ...any) pgx.Row { return m.row }

func (m *mockDB) Stat() (acquired, total int32) { return 1, 10 }

type mockClients int

func (m mockClients) ClientCount() int { return int(m) }
