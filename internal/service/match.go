package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/domain"
	"github.com/kindredgraph/kindred/internal/kinship"
	"github.com/kindredgraph/kindred/internal/models"
)

// lineageHops reaches the root's maternal grandmother.
const lineageHops = 2

// LineageLookup resolves sub-category names.
type LineageLookup interface {
	SubCategories(ctx context.Context, ids []int) ([]models.SubCategory, error)
}

// Compile-time check: *MatchService must satisfy domain.MatchService.
var _ domain.MatchService = (*MatchService)(nil)

// MatchService runs partner-match searches.
type MatchService struct {
	loader SnapshotLoader
	lookup LineageLookup
	log    *logrus.Logger
}

// NewMatchService creates a MatchService.
func NewMatchService(loader SnapshotLoader, lookup LineageLookup, log *logrus.Logger) *MatchService {
	return &MatchService{loader: loader, lookup: lookup, log: log}
}

// Search explores from the root and returns every reached person admitted by
// the filters and not sharing a sub-category with the root's maternal line.
func (s *MatchService) Search(ctx context.Context, req models.MatchSearchRequest) (*models.MatchResult, error) {
	s.log.WithFields(logrus.Fields{
		"root_id":   req.RootID,
		"max_depth": req.MaxDepth,
	}).Debug("match.search")

	snap, err := s.loader.Load(ctx, req.RootID, max(req.MaxDepth, lineageHops))
	if err != nil {
		return nil, err
	}

	start := time.Now()

	exclusions := kinship.ExogamyExclusions(req.RootID, snap)

	graph, err := kinship.Explore(req.RootID, snap, kinship.ExploreOptions{
		MaxDepth: req.MaxDepth,
		Admit:    kinship.MatchPredicate(req.Filters, exclusions),
	})
	if err != nil {
		return nil, err
	}

	observe(featureMatch, start, graph.Len())

	candidates := graph.Candidates()
	matches := make([]models.CandidateMatch, 0, len(candidates))

	for _, c := range candidates {
		node, _ := graph.Node(c.PersonID)
		matches = append(matches, models.CandidateMatch{PersonID: c.PersonID, Depth: c.Depth, Person: node.Person})
	}

	excluded, err := s.excludedSubCategories(ctx, exclusions)
	if err != nil {
		return nil, err
	}

	result := &models.MatchResult{
		RootID:                req.RootID,
		ExplorationGraph:      graph,
		CandidateMatches:      matches,
		ExcludedSubCategories: excluded,
		Warnings:              graph.Warnings(),
	}

	reportMissing(s.log, featureMatch, result.Warnings)

	s.log.WithFields(logrus.Fields{
		"root_id":    req.RootID,
		"explored":   graph.Len(),
		"candidates": len(matches),
		"excluded":   exclusions,
	}).Debug("match.search done")

	return result, nil
}

// excludedSubCategories names every excluded id. Ids missing from the lookup
// table are still reported, without a name.
func (s *MatchService) excludedSubCategories(ctx context.Context, ids []int) ([]models.SubCategory, error) {
	named, err := s.lookup.SubCategories(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]models.SubCategory, len(named))
	for _, sc := range named {
		byID[sc.ID] = sc
	}

	out := make([]models.SubCategory, 0, len(ids))

	for _, id := range ids {
		if sc, ok := byID[id]; ok {
			out = append(out, sc)
		} else {
			out = append(out, models.SubCategory{ID: id})
		}
	}

	return out, nil
}
