package service

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/kinship"
	"github.com/kindredgraph/kindred/internal/metrics"
)

// Feature labels for metrics and logs.
const (
	featureFamily = "family"
	featurePath   = "path"
	featureMatch  = "match"
)

func observe(feature string, start time.Time, nodes int) {
	metrics.ExploreDuration.WithLabelValues(feature).Observe(time.Since(start).Seconds())
	metrics.ExploredNodes.WithLabelValues(feature).Observe(float64(nodes))
}

func reportMissing(log *logrus.Logger, feature string, warnings []kinship.MissingPersonWarning) {
	if len(warnings) == 0 {
		return
	}

	metrics.MissingPersons.Add(float64(len(warnings)))

	for _, w := range warnings {
		log.WithFields(logrus.Fields{
			"feature": feature,
			"from":    w.FromPersonID,
			"person":  w.PersonID,
			"type":    w.Type.String(),
		}).Warn("relationship points to unknown person")
	}
}

// layoutOrFallback runs the layout pipeline. Inconsistent generations are
// reported as a message and a nil layout so the caller still gets its data.
func layoutOrFallback(log *logrus.Logger, feature, rootID string, steps []kinship.Step, cfg kinship.LayoutConfig) (*kinship.Layout, string, error) {
	layout, err := kinship.LayoutSteps(rootID, steps, 0, cfg)
	if err == nil {
		return layout, "", nil
	}

	if errors.Is(err, kinship.ErrInconsistentGeneration) {
		metrics.LayoutFallbacks.Inc()
		log.WithError(err).WithFields(logrus.Fields{
			"feature": feature,
			"root":    rootID,
		}).Warn("layout skipped")

		return nil, err.Error(), nil
	}

	return nil, "", err
}
