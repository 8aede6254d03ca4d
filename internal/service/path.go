package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kindredgraph/kindred/internal/domain"
	"github.com/kindredgraph/kindred/internal/kinship"
	"github.com/kindredgraph/kindred/internal/models"
)

// Compile-time check: *PathService must satisfy domain.PathService.
var _ domain.PathService = (*PathService)(nil)

// PathService finds relationship paths between two persons.
type PathService struct {
	loader SnapshotLoader
	layout kinship.LayoutConfig
	log    *logrus.Logger
}

// NewPathService creates a PathService.
func NewPathService(loader SnapshotLoader, layout kinship.LayoutConfig, log *logrus.Logger) *PathService {
	return &PathService{loader: loader, layout: layout, log: log}
}

// FindPath returns the shortest path from fromID to toID within depth
// relations. Both persons must exist.
func (s *PathService) FindPath(ctx context.Context, fromID, toID string, depth int) (*models.PathResult, error) {
	s.log.WithFields(logrus.Fields{
		"from_id": fromID,
		"to_id":   toID,
		"depth":   depth,
	}).Debug("path.find")

	if fromID == toID {
		return nil, models.ErrSamePerson
	}

	var snap *kinship.Snapshot

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap, err = s.loader.Load(gctx, fromID, depth)

		return err
	})

	g.Go(func() error {
		_, err := s.loader.Person(gctx, toID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	start := time.Now()

	graph, err := kinship.Explore(fromID, snap, kinship.ExploreOptions{MaxDepth: depth})
	if err != nil {
		return nil, err
	}

	result := &models.PathResult{
		From:     fromID,
		To:       toID,
		Depth:    depth,
		Path:     kinship.Path{},
		Warnings: graph.Warnings(),
	}

	reportMissing(s.log, featurePath, result.Warnings)

	path, err := kinship.ExtractPath(graph, fromID, toID)

	observe(featurePath, start, graph.Len())

	if errors.Is(err, kinship.ErrNotConnected) {
		return result, nil
	}

	if err != nil {
		return nil, err
	}

	result.Connected = true
	result.Path = path

	result.Layout, result.LayoutError, err = layoutOrFallback(s.log, featurePath, fromID, kinship.PathSteps(path), s.layout)
	if err != nil {
		return nil, err
	}

	return result, nil
}
